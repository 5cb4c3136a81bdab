package config

type (
	DriverConfig struct {
		Redis    Redis
		MongoDB  MongoDB
		Postgres Postgres
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	MongoDB struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Postgres struct {
		Host     string
		Port     string
		Username string
		Password string
		DBName   string
		SSLMode  string
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Host     string
		Port     string
		Username string
		Password string
		UseSSL   bool
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

type (
	InternalConfig struct {
		App       App
		Backend   Backend
		JWT       JWT
		Cache     Cache
		Reminders Reminders
		Surveys   Surveys
		Minio     AppMinio
		RabbitMQ  AppRabbitMQ
		MongoDB   AppMongoDB
		RBAC      RBAC
	}

	App struct {
		Env                        string
		Port                       string
		Version                    string
		Timezone                   string
		EndpointPrefix             string
		AllowedOrigins             []string
		MaxRequests                int
		RequestTimeoutInSeconds    int
		ShutdownTimeoutInSeconds   int
		RequestBodyLimitInMegabyte int
		SessionExpiredTimeInMinute int
	}

	// Backend describes the hosted backend-as-a-service REST API.
	Backend struct {
		BaseUrl               string
		ServiceKey            string
		RequestTimeoutSeconds int
		MaxRequestsPerSecond  int
		Burst                 int
	}

	JWT struct {
		Secret   string
		Audience string
	}

	Cache struct {
		DashboardTTLInSeconds int
		SurveyTTLInSeconds    int
		AnswersTTLInSeconds   int
	}

	Surveys struct {
		SubmissionWindowInMinutes int
		MaxSubmissionsPerWindow   int
	}

	Reminders struct {
		Enabled          bool
		CronSpec         string
		LeadTimeInHours  int
		LockTTLInMinutes int
	}

	AppMinio struct {
		BucketName                      string
		AvatarMaxUploadSizeInMB         int64
		PreSignedUrlExpiryTimeInMinutes int
	}

	AppRabbitMQ struct {
		EventsQueue string
	}

	AppMongoDB struct {
		DBName string
	}

	RBAC struct {
		ModelPath  string
		PolicyPath string
	}
)
