package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pizza-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/models"
	"github.com/aaravmahajanofficial/pizza-storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
)

type staffContextKey struct{}

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtKey: jwtKey}
}

// Authenticate admits requests with a valid staff bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		claims := &models.StaffClaims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
				return nil, errors.BadRequestError("unexpected signing method")
			}
			return m.jwtKey, nil
		})

		if err != nil || !token.Valid {
			logger.Warn("JWT parsing failed", slog.Any("error", err))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if claims.Role != models.RoleStaff {
			logger.Warn("Token without staff role", slog.String("staffId", claims.StaffID))
			response.Error(w, errors.ForbiddenError("Staff access required"))
			return
		}

		ctx := context.WithValue(r.Context(), staffContextKey{}, claims)
		staffLogger := logger.With(slog.String("staffId", claims.StaffID))
		ctx = WithLogger(ctx, staffLogger)

		staffLogger.Info("Staff authenticated")

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func StaffFromContext(ctx context.Context) (*models.StaffClaims, bool) {
	claims, ok := ctx.Value(staffContextKey{}).(*models.StaffClaims)
	return claims, ok
}

// NewStaffToken signs a staff token valid for ttl.
func NewStaffToken(jwtKey []byte, staffID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.StaffClaims{
		StaffID: staffID,
		Role:    models.RoleStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staffID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtKey)
}
