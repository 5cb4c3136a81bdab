package main

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/delivery/http/controllers"
	"clinica-service/internal/app/delivery/http/middlewares"
	"clinica-service/internal/app/delivery/http/routers"
	"clinica-service/internal/app/drivers/database"
	"clinica-service/internal/app/drivers/logger"
	"clinica-service/internal/app/drivers/messaging"
	"clinica-service/internal/app/drivers/storage"
	"clinica-service/internal/app/services/backend"
	appointmentHistoryBackend "clinica-service/internal/app/services/backend/appointment_history"
	appointmentsBackend "clinica-service/internal/app/services/backend/appointments"
	patientsBackend "clinica-service/internal/app/services/backend/patients"
	profilesBackend "clinica-service/internal/app/services/backend/profiles"
	surveyAnswersBackend "clinica-service/internal/app/services/backend/survey_answers"
	surveysBackend "clinica-service/internal/app/services/backend/surveys"
	"clinica-service/internal/app/services/core/appointments"
	"clinica-service/internal/app/services/core/dashboard"
	"clinica-service/internal/app/services/core/patients"
	"clinica-service/internal/app/services/core/profiles"
	"clinica-service/internal/app/services/core/reminders"
	"clinica-service/internal/app/services/core/surveys"
	"clinica-service/internal/app/services/shared/audit"
	"clinica-service/internal/app/services/shared/locker"
	"clinica-service/internal/app/services/shared/notifier"
	"clinica-service/internal/app/services/shared/querycache"
	"clinica-service/internal/app/services/shared/ratelimiter"
	"clinica-service/internal/app/services/shared/redis"
	minioStorage "clinica-service/internal/app/services/shared/storage"
	"clinica-service/internal/pkg/monitoring"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serviceName = "clinica-service"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	redis := database.NewRedisClient(driverConfig)
	mongoDB := database.NewMongoDB(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minio := storage.NewMinio(driverConfig, internalConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		Redis:          redis,
		MongoDB:        mongoDB,
		RabbitMQ:       rabbitMQ,
		Minio:          minio,
		Logger:         logger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapingTheApp(&bootstrap); err != nil {
		log.Fatalf("Error bootstraping the app: %v", err)
	}

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second,
	}

	go func() {
		logger.Info("Server is starting", zap.String("addr", internalConfig.App.Port), zap.String("env", internalConfig.App.Env))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error while closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	cfg := bootstrap.InternalConfig
	metrics := monitoring.NewMetricsCollector(serviceName)

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	queryCache := querycache.NewQueryCache(redisRepository, metrics, bootstrap.Logger)
	auditRepository := audit.NewAuditMongoRepository(bootstrap.MongoDB.Database(cfg.MongoDB.DBName), bootstrap.Logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)
	storageService := minioStorage.NewMinioStorage(bootstrap.Minio, bootstrap.Logger)

	channel, err := bootstrap.RabbitMQ.Channel()
	if err != nil {
		return err
	}
	eventNotifier, err := notifier.NewRabbitMQNotifier(channel, cfg.RabbitMQ.EventsQueue, metrics, bootstrap.Logger)
	if err != nil {
		return err
	}

	// Backend clients
	backendClient := backend.NewClient(cfg, bootstrap.Logger, metrics)
	patientBackendClient := patientsBackend.NewPatientBackendClient(backendClient, bootstrap.Logger)
	appointmentBackendClient := appointmentsBackend.NewAppointmentBackendClient(backendClient, bootstrap.Logger)
	appointmentHistoryBackendClient := appointmentHistoryBackend.NewAppointmentHistoryBackendClient(backendClient, bootstrap.Logger)
	surveyBackendClient := surveysBackend.NewSurveyBackendClient(backendClient, bootstrap.Logger)
	surveyAnswerBackendClient := surveyAnswersBackend.NewSurveyAnswerBackendClient(backendClient, bootstrap.Logger)
	profileBackendClient := profilesBackend.NewProfileBackendClient(backendClient, bootstrap.Logger)

	// Usecases
	patientUsecase := patients.NewPatientUsecase(patientBackendClient, auditRepository, eventNotifier, queryCache, bootstrap.Logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentBackendClient,
		appointmentHistoryBackendClient,
		patientBackendClient,
		auditRepository,
		eventNotifier,
		queryCache,
		bootstrap.Logger,
	)
	surveyUsecase := surveys.NewSurveyUsecase(
		surveyBackendClient,
		surveyAnswerBackendClient,
		eventNotifier,
		queryCache,
		resourceLimiter,
		cfg,
		bootstrap.Logger,
	)
	dashboardUsecase := dashboard.NewDashboardUsecase(
		patientBackendClient,
		appointmentBackendClient,
		surveyAnswerBackendClient,
		appointmentUsecase,
		queryCache,
		cfg,
		bootstrap.Logger,
	)
	profileUsecase := profiles.NewProfileUsecase(profileBackendClient, storageService, queryCache, cfg, bootstrap.Logger)

	// Reminders
	if cfg.Reminders.Enabled {
		worker := reminders.NewWorker(
			bootstrap.Logger,
			cfg,
			lockService,
			redisRepository,
			appointmentBackendClient,
			patientBackendClient,
			eventNotifier,
		)
		worker.Start(context.Background())
		bootstrap.WorkerStop = worker.Stop
	}

	// Middlewares
	enforcer, err := casbin.NewEnforcer(cfg.RBAC.ModelPath, cfg.RBAC.PolicyPath)
	if err != nil {
		return err
	}
	middlewareInstance := middlewares.NewMiddlewares(bootstrap.Logger, cfg, profileUsecase, enforcer, metrics)
	avatarLimiter := middlewares.NewRateLimiter(5, time.Minute, 5*time.Minute, bootstrap.Logger)

	// Controllers
	patientController := controllers.NewPatientController(bootstrap.Logger, patientUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)
	surveyController := controllers.NewSurveyController(bootstrap.Logger, surveyUsecase)
	dashboardController := controllers.NewDashboardController(bootstrap.Logger, dashboardUsecase)
	profileController := controllers.NewProfileController(bootstrap.Logger, profileUsecase, cfg)

	routers.SetupRoutes(
		bootstrap.Router,
		cfg,
		middlewareInstance,
		avatarLimiter,
		patientController,
		appointmentController,
		surveyController,
		dashboardController,
		profileController,
	)
	return nil
}
