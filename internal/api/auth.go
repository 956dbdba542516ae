package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const authKey contextKey = "auth"

// Auth is the verified caller identity the token layer hands to handlers.
// Handlers trust these values; clinic scoping always comes from here, never
// from the request body.
type Auth struct {
	ClinicID uuid.UUID
	UserID   uuid.UUID
	Role     string
}

type authClaims struct {
	ClinicID string `json:"clinic_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and stores the caller identity
// in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing_token", "Authorization bearer token required")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			claims := &authClaims{}
			parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid {
				writeError(w, http.StatusUnauthorized, "invalid_token", "token is invalid or expired")
				return
			}

			clinicID, err := uuid.Parse(claims.ClinicID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token", "token carries no clinic")
				return
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid_token", "token carries no subject")
				return
			}

			auth := Auth{ClinicID: clinicID, UserID: userID, Role: claims.Role}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authKey, auth)))
		})
	}
}

// GetAuth retrieves the caller identity stored by AuthMiddleware.
func GetAuth(ctx context.Context) (Auth, bool) {
	a, ok := ctx.Value(authKey).(Auth)
	return a, ok
}
