package config

import (
	"clinica-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		MongoDB: MongoDB{
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Postgres: Postgres{
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "postgres"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
		},
		RabbitMQ: RabbitMQ{
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "America/Santiago"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:             utils.GetEnvList("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			SessionExpiredTimeInMinute: utils.GetEnvInt("APP_SESSION_EXPIRED_TIME_IN_MINUTE", 15),
		},
		Backend: Backend{
			BaseUrl:               utils.GetEnvString("BACKEND_URL", "http://localhost:54321"),
			ServiceKey:            utils.GetEnvString("BACKEND_SERVICE_KEY", ""),
			RequestTimeoutSeconds: utils.GetEnvInt("BACKEND_REQUEST_TIMEOUT_IN_SECONDS", 8),
			MaxRequestsPerSecond:  utils.GetEnvInt("BACKEND_MAX_REQUESTS_PER_SECOND", 50),
			Burst:                 utils.GetEnvInt("BACKEND_BURST", 20),
		},
		JWT: JWT{
			Secret:   utils.GetEnvString("BACKEND_JWT_SECRET", "anyjwt"),
			Audience: utils.GetEnvString("BACKEND_JWT_AUDIENCE", "authenticated"),
		},
		Cache: Cache{
			DashboardTTLInSeconds: utils.GetEnvInt("CACHE_DASHBOARD_TTL_IN_SECONDS", 60),
			SurveyTTLInSeconds:    utils.GetEnvInt("CACHE_SURVEY_TTL_IN_SECONDS", 600),
			AnswersTTLInSeconds:   utils.GetEnvInt("CACHE_ANSWERS_TTL_IN_SECONDS", 120),
		},
		Surveys: Surveys{
			SubmissionWindowInMinutes: utils.GetEnvInt("SURVEY_SUBMISSION_WINDOW_IN_MINUTES", 60),
			MaxSubmissionsPerWindow:   utils.GetEnvInt("SURVEY_MAX_SUBMISSIONS_PER_WINDOW", 5),
		},
		Reminders: Reminders{
			Enabled:          utils.GetEnvBool("REMINDER_ENABLED", true),
			CronSpec:         utils.GetEnvString("REMINDER_CRON_SPEC", "0 18 * * *"),
			LeadTimeInHours:  utils.GetEnvInt("REMINDER_LEAD_TIME_IN_HOURS", 24),
			LockTTLInMinutes: utils.GetEnvInt("REMINDER_LOCK_TTL_IN_MINUTES", 5),
		},
		Minio: AppMinio{
			BucketName:                      utils.GetEnvString("APP_MINIO_BUCKET_NAME", "clinica"),
			AvatarMaxUploadSizeInMB:         utils.GetEnvInt64("APP_MINIO_AVATAR_UPLOAD_MAX_SIZE_IN_MB", 2),
			PreSignedUrlExpiryTimeInMinutes: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_EXPIRY_TIME_IN_MINUTES", 60),
		},
		RabbitMQ: AppRabbitMQ{
			EventsQueue: utils.GetEnvString("APP_RABBITMQ_EVENTS_QUEUE", "clinica.events"),
		},
		MongoDB: AppMongoDB{
			DBName: utils.GetEnvString("APP_MONGODB_DB_NAME", "clinica"),
		},
		RBAC: RBAC{
			ModelPath:  utils.GetEnvString("RBAC_MODEL_PATH", "resources/rbac_model.conf"),
			PolicyPath: utils.GetEnvString("RBAC_POLICY_PATH", "resources/rbac_policy.csv"),
		},
	}
}
