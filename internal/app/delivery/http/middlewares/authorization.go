package middlewares

import (
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authorize checks the caller's role against the casbin policy for the
// request path and method. It must run after Authenticate.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())
		role := utils.GetRole(r.Context())

		object := policyObject(r.URL.Path, m.InternalConfig.App.EndpointPrefix)
		allowed, err := m.Enforcer.Enforce(role, object, r.Method)
		if err != nil {
			m.Log.Error("Authorize enforcer error",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerProcess(err))
			return
		}
		if !allowed {
			utils.LogSecurityEvent(m.Log, "access_denied", requestID, "low",
				zap.String(constvars.LoggingUIDKey, utils.GetUID(r.Context())),
				zap.String(constvars.LoggingRoleKey, role),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotPermitted(nil, role, r.Method, r.URL.Path))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// policyObject strips the endpoint prefix so policies are written against
// paths such as /patients/:id.
func policyObject(path, endpointPrefix string) string {
	if endpointPrefix != "" {
		path = strings.TrimPrefix(path, "/"+strings.Trim(endpointPrefix, "/"))
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}
