package middlewares

import (
	"clinica-service/internal/pkg/constvars"
	"clinica-service/internal/pkg/exceptions"
	"clinica-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

var errMissingSubject = errors.New("token has no subject")

// BackendClaims are the claims of an access token issued by the backend's
// auth service.
type BackendClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate verifies the bearer token, resolves the caller's profile and
// stores uid, email and role in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := ParseBackendToken(token, m.InternalConfig.JWT.Secret, m.InternalConfig.JWT.Audience)
		if err != nil {
			utils.LogSecurityEvent(m.Log, "invalid_token", requestID, "medium",
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		profile, err := m.ProfileUsecase.ResolveSessionProfile(ctx, claims.Subject)
		if err != nil {
			var customErr *exceptions.CustomError
			if errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusNotFound {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrProfileMissing(err))
				return
			}
			if errors.Is(err, context.DeadlineExceeded) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerDeadlineExceeded(err))
				return
			}
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		authCtx := context.WithValue(r.Context(), constvars.CONTEXT_UID_KEY, profile.ID)
		authCtx = context.WithValue(authCtx, constvars.CONTEXT_ROLE_KEY, profile.Role)
		authCtx = context.WithValue(authCtx, constvars.CONTEXT_EMAIL_KEY, claims.Email)

		m.Log.Debug("Authenticate resolved caller",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUIDKey, profile.ID),
			zap.String(constvars.LoggingRoleKey, profile.Role),
		)
		next.ServeHTTP(w, r.WithContext(authCtx))
	})
}

// ParseBackendToken validates an HS256 token and its audience.
func ParseBackendToken(token, secret, audience string) (*BackendClaims, error) {
	claims := &BackendClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if audience != "" && !claims.VerifyAudience(audience, true) {
		return nil, jwt.ErrTokenInvalidAudience
	}
	if claims.Subject == "" {
		return nil, errMissingSubject
	}
	return claims, nil
}
