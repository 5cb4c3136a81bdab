package middlewares

import (
	"clinica-service/internal/app/config"
	"clinica-service/internal/app/contracts"
	"clinica-service/internal/pkg/monitoring"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	ProfileUsecase contracts.ProfileUsecase
	Enforcer       *casbin.Enforcer
	Metrics        *monitoring.MetricsCollector
}

func NewMiddlewares(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	profileUsecase contracts.ProfileUsecase,
	enforcer *casbin.Enforcer,
	metrics *monitoring.MetricsCollector,
) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		ProfileUsecase: profileUsecase,
		Enforcer:       enforcer,
		Metrics:        metrics,
	}
}
