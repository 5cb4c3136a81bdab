package dashboard

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/dto/responses"
	"clinica-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	upcomingWindowDays     = 7
	recentSubmissionsDays  = 30
	defaultFollowUpsLimit  = 10
	defaultUpcomingWindow  = 7
	maxUpcomingWindowDays  = 60
	summaryCacheScopeParam = "doctor_id"
)

type dashboardUsecase struct {
	PatientBackendClient      contracts.PatientBackendClient
	AppointmentBackendClient  contracts.AppointmentBackendClient
	SurveyAnswerBackendClient contracts.SurveyAnswerBackendClient
	AppointmentUsecase        contracts.AppointmentUsecase
	QueryCache                contracts.QueryCache
	InternalConfig            *config.InternalConfig
	Log                       *zap.Logger
	now                       func() time.Time
}

func NewDashboardUsecase(
	patientBackendClient contracts.PatientBackendClient,
	appointmentBackendClient contracts.AppointmentBackendClient,
	surveyAnswerBackendClient contracts.SurveyAnswerBackendClient,
	appointmentUsecase contracts.AppointmentUsecase,
	queryCache contracts.QueryCache,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DashboardUsecase {
	return &dashboardUsecase{
		PatientBackendClient:      patientBackendClient,
		AppointmentBackendClient:  appointmentBackendClient,
		SurveyAnswerBackendClient: surveyAnswerBackendClient,
		AppointmentUsecase:        appointmentUsecase,
		QueryCache:                queryCache,
		InternalConfig:            internalConfig,
		Log:                       logger,
		now:                       time.Now,
	}
}

// GetSummary returns the dashboard counters, optionally scoped to one
// doctor. Results are cached until a write invalidates the dashboard.
func (uc *dashboardUsecase) GetSummary(ctx context.Context, doctorID string) (*responses.DashboardSummary, error) {
	summary := &responses.DashboardSummary{}
	ttl := time.Duration(uc.InternalConfig.Cache.DashboardTTLInSeconds) * time.Second
	err := uc.QueryCache.Fetch(ctx, constvars.CacheNamespaceDashboard, map[string]string{summaryCacheScopeParam: doctorID}, ttl, summary,
		func(ctx context.Context) error {
			built, err := uc.buildSummary(ctx, doctorID)
			if err != nil {
				return err
			}
			*summary = *built
			return nil
		})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (uc *dashboardUsecase) buildSummary(ctx context.Context, doctorID string) (*responses.DashboardSummary, error) {
	requestID := utils.GetRequestID(ctx)
	now := uc.now().In(uc.location())

	totalPatients, err := uc.PatientBackendClient.CountPatients(ctx, "", doctorID)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int, len(constvars.PatientStatuses))
	for _, status := range constvars.PatientStatuses {
		count, err := uc.PatientBackendClient.CountPatients(ctx, status, doctorID)
		if err != nil {
			return nil, err
		}
		byStatus[status] = count
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)
	today, err := uc.AppointmentBackendClient.CountAppointments(ctx, &requests.AppointmentFilter{
		DoctorID: doctorID,
		From:     &startOfDay,
		To:       &endOfDay,
		Statuses: []string{
			constvars.AppointmentStatusScheduled,
			constvars.AppointmentStatusConfirmed,
			constvars.AppointmentStatusCompleted,
			constvars.AppointmentStatusNoShow,
		},
	})
	if err != nil {
		return nil, err
	}

	upcomingEnd := now.AddDate(0, 0, upcomingWindowDays)
	upcoming, err := uc.AppointmentBackendClient.CountAppointments(ctx, &requests.AppointmentFilter{
		DoctorID: doctorID,
		From:     &now,
		To:       &upcomingEnd,
		Statuses: []string{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusConfirmed},
	})
	if err != nil {
		return nil, err
	}

	submissions, err := uc.SurveyAnswerBackendClient.CountSubmissionsSince(ctx, now.AddDate(0, 0, -recentSubmissionsDays), doctorID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("dashboardUsecase.GetSummary built summary",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingTotalKey, totalPatients),
	)

	return &responses.DashboardSummary{
		TotalPatients:           totalPatients,
		PatientsByStatus:        byStatus,
		FollowUpsPending:        byStatus[constvars.PatientStatusFollowUp],
		AppointmentsToday:       today,
		UpcomingAppointments:    upcoming,
		SurveySubmissionsRecent: submissions,
		GeneratedAt:             now.UTC().Format(time.RFC3339),
	}, nil
}

// GetFollowUps lists patients in follow-up, longest waiting first.
func (uc *dashboardUsecase) GetFollowUps(ctx context.Context, limit int) ([]responses.Patient, error) {
	if limit <= 0 {
		limit = defaultFollowUpsLimit
	}
	if limit > constvars.MaxPageSize {
		limit = constvars.MaxPageSize
	}

	patients, err := uc.PatientBackendClient.FindPatientsByStatus(ctx, constvars.PatientStatusFollowUp, limit)
	if err != nil {
		return nil, err
	}
	return utils.BuildPatientResponses(patients), nil
}

func (uc *dashboardUsecase) GetUpcoming(ctx context.Context, days int) ([]responses.Appointment, error) {
	if days <= 0 {
		days = defaultUpcomingWindow
	}
	if days > maxUpcomingWindowDays {
		days = maxUpcomingWindowDays
	}

	from := uc.now().UTC()
	to := from.AddDate(0, 0, days)
	list, err := uc.AppointmentUsecase.ListAppointments(ctx, &requests.AppointmentFilter{
		From:       &from,
		To:         &to,
		Statuses:   []string{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusConfirmed},
		Pagination: &requests.Pagination{Page: constvars.DefaultPage, PageSize: constvars.MaxPageSize},
	})
	if err != nil {
		return nil, err
	}
	return list.Appointments, nil
}

func (uc *dashboardUsecase) location() *time.Location {
	if uc.InternalConfig.App.Timezone == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(uc.InternalConfig.App.Timezone)
	if err != nil {
		uc.Log.Warn("dashboardUsecase unknown timezone, using UTC",
			zap.String("timezone", uc.InternalConfig.App.Timezone),
			zap.Error(err),
		)
		return time.UTC
	}
	return location
}
