package reminders

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/app/models"
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/dto/requests"
	"clinica-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	fallbackCronSpec = "@daily"
	sentMarkerTTL    = 72 * time.Hour
)

// Worker publishes reminder events for upcoming appointments. Only the
// instance holding the leader lock does work on each tick.
type Worker struct {
	log          *zap.Logger
	cfg          *config.InternalConfig
	locker       contracts.LockerService
	redisRepo    contracts.RedisRepository
	appointments contracts.AppointmentBackendClient
	patients     contracts.PatientBackendClient
	notifier     contracts.Notifier
	cron         *cron.Cron
	runCtx       context.Context
	cancel       context.CancelFunc
	now          func() time.Time
}

func NewWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	redisRepo contracts.RedisRepository,
	appointmentsClient contracts.AppointmentBackendClient,
	patientsClient contracts.PatientBackendClient,
	notifier contracts.Notifier,
) *Worker {
	return &Worker{
		log:          log,
		cfg:          cfg,
		locker:       lockerSvc,
		redisRepo:    redisRepo,
		appointments: appointmentsClient,
		patients:     patientsClient,
		notifier:     notifier,
		now:          time.Now,
	}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New(cron.WithLocation(w.location()))
	spec := w.cfg.Reminders.CronSpec
	if _, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) }); err != nil {
		w.log.Warn("reminders.worker: invalid cron spec, falling back to @daily",
			zap.String("cron_spec", spec),
			zap.Error(err),
		)
		c = cron.New(cron.WithLocation(w.location()))
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
	w.log.Info("reminders.worker: started", zap.String("cron_spec", spec))
}

// Stop cancels in-flight runs and waits for the running job to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) int {
	ttl := time.Duration(w.cfg.Reminders.LockTTLInMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReminderLeader, ttl)
	if err != nil {
		w.log.Warn("reminders.worker: leader lock attempt failed", zap.Error(err))
		return 0
	}
	if !acquired {
		w.log.Info("reminders.worker: leader lock held by another instance")
		return 0
	}
	defer func() {
		if err := w.locker.Unlock(context.Background(), constvars.RedisKeyReminderLeader, token); err != nil {
			w.log.Warn("reminders.worker: unlock failed", zap.Error(err))
		}
	}()

	from, to := w.window()
	appointments, err := w.findAppointments(ctx, from, to)
	if err != nil {
		w.log.Warn("reminders.worker: appointments lookup failed", zap.Error(err))
		return 0
	}

	names := w.patientNames(ctx, appointments)
	sent := 0
	for _, appointment := range appointments {
		if ctx.Err() != nil {
			break
		}
		if w.remind(ctx, appointment, names[appointment.PatientID]) {
			sent++
		}
	}

	w.log.Info("reminders.worker: run finished",
		zap.Time(constvars.LoggingWindowStartKey, from),
		zap.Time(constvars.LoggingWindowEndKey, to),
		zap.Int(constvars.LoggingResultCountKey, len(appointments)),
		zap.Int(constvars.LoggingReminderCountKey, sent),
	)
	return sent
}

// window is tomorrow in the clinic's timezone, or the next LeadTimeInHours
// hours when a lead time is configured.
func (w *Worker) window() (time.Time, time.Time) {
	now := w.now().In(w.location())
	if lead := w.cfg.Reminders.LeadTimeInHours; lead > 0 {
		return now, now.Add(time.Duration(lead) * time.Hour)
	}
	tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	return tomorrow, tomorrow.AddDate(0, 0, 1)
}

func (w *Worker) findAppointments(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var all []models.Appointment
	for page := constvars.DefaultPage; ; page++ {
		batch, total, err := w.appointments.FindAppointments(ctx, &requests.AppointmentFilter{
			From:       &from,
			To:         &to,
			Statuses:   []string{constvars.AppointmentStatusScheduled, constvars.AppointmentStatusConfirmed},
			Pagination: &requests.Pagination{Page: page, PageSize: constvars.MaxPageSize},
		})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < constvars.MaxPageSize || len(all) >= total {
			return all, nil
		}
	}
}

// remind publishes one reminder unless it was already sent. The sent marker
// is removed again when publishing fails so the next run retries.
func (w *Worker) remind(ctx context.Context, appointment models.Appointment, patientName string) bool {
	key := fmt.Sprintf(constvars.RedisKeyReminderSent, appointment.ID)
	first, err := w.redisRepo.TrySetNX(ctx, key, w.now().UTC().Format(time.RFC3339), sentMarkerTTL)
	if err != nil {
		w.log.Warn("reminders.worker: sent marker failed",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return false
	}
	if !first {
		return false
	}

	err = w.notifier.Publish(ctx, constvars.EventAppointmentReminder, map[string]interface{}{
		"appointment_id": appointment.ID,
		"patient_id":     appointment.PatientID,
		"patient_name":   patientName,
		"doctor_id":      appointment.DoctorID,
		"scheduled_at":   appointment.ScheduledAt,
		"type":           appointment.Type,
	})
	if err != nil {
		w.log.Warn("reminders.worker: publish failed",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		if err := w.redisRepo.Delete(ctx, key); err != nil {
			w.log.Warn("reminders.worker: sent marker cleanup failed",
				zap.String(constvars.LoggingRedisKey, key),
				zap.Error(err),
			)
		}
		return false
	}
	return true
}

func (w *Worker) patientNames(ctx context.Context, appointments []models.Appointment) map[string]string {
	names := map[string]string{}
	var patientIDs []string
	for _, appointment := range appointments {
		if _, ok := names[appointment.PatientID]; ok {
			continue
		}
		names[appointment.PatientID] = ""
		patientIDs = append(patientIDs, appointment.PatientID)
	}
	if len(patientIDs) == 0 {
		return names
	}

	patients, err := w.patients.FindPatientsByIDs(ctx, patientIDs)
	if err != nil {
		w.log.Warn("reminders.worker: patient lookup failed", zap.Error(err))
		return names
	}
	for _, patient := range patients {
		names[patient.ID] = utils.FormatFullName(patient.FirstName, patient.LastName)
	}
	return names
}

func (w *Worker) location() *time.Location {
	if w.cfg.App.Timezone == "" {
		return time.UTC
	}
	location, err := time.LoadLocation(w.cfg.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}
