package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const pmIDKey contextKey = "pm_id"

// generateSessionToken mints an HS256 session JWT for a PM login.
func (a *API) generateSessionToken(user User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(a.config.SessionTTL)
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.config.JWTSigningKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (a *API) parseSessionToken(raw string) (uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.config.JWTSigningKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid session claims")
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("invalid session subject")
	}
	return id, nil
}

// requirePM authenticates the Authorization bearer header and stores the PM
// id on the request context.
func (a *API) requirePM(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			respondError(w, http.StatusUnauthorized, errors.New("authentication required"))
			return
		}

		pmID, err := a.parseSessionToken(strings.TrimSpace(raw))
		if err != nil {
			respondError(w, http.StatusUnauthorized, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), pmIDKey, pmID)))
	})
}

// pmFromContext returns the authenticated PM id set by requirePM.
func pmFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(pmIDKey).(uuid.UUID)
	return id, ok
}
