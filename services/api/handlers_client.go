package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// resolveClientToken runs the shared validation path for the public portal
// endpoints: lookup, expiry gate, best-effort touch. It writes the error
// response itself on failure. Invalid and expired tokens produce an identical
// 401 body so callers cannot tell which gate failed.
func (a *API) resolveClientToken(w http.ResponseWriter, r *http.Request, value string) (AccessToken, bool) {
	if value == "" {
		tokenValidations.WithLabelValues("missing").Inc()
		respondError(w, http.StatusUnauthorized, errors.New(clientTokenMessage))
		return AccessToken{}, false
	}

	token, err := a.tokens.Lookup(r.Context(), value)
	switch {
	case errors.Is(err, ErrTokenNotFound):
		tokenValidations.WithLabelValues("invalid").Inc()
		respondError(w, http.StatusUnauthorized, errors.New(clientTokenMessage))
		return AccessToken{}, false
	case errors.Is(err, ErrTokenExpired):
		tokenValidations.WithLabelValues("expired").Inc()
		respondError(w, http.StatusUnauthorized, errors.New(clientTokenMessage))
		return AccessToken{}, false
	case err != nil:
		tokenValidations.WithLabelValues("error").Inc()
		respondError(w, http.StatusInternalServerError, err)
		return AccessToken{}, false
	}

	// Access is already granted for this request; a failed touch only costs
	// the last-used bookkeeping.
	if err := a.tokens.Touch(r.Context(), token.ID); err != nil {
		log.Warn().Err(err).Msg("touch access token")
	}

	tokenValidations.WithLabelValues("ok").Inc()
	return token, true
}

func (a *API) handleClientValidate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	token, ok := a.resolveClientToken(w, r, strings.TrimSpace(req.Token))
	if !ok {
		return
	}

	project, err := a.fetchProjectByID(r.Context(), token.ProjectID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errProjectNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token_data": clientTokenData(token),
		"project":    project,
	})
}

func (a *API) handleClientOverview(w http.ResponseWriter, r *http.Request) {
	token, ok := a.resolveClientToken(w, r, strings.TrimSpace(r.URL.Query().Get("token")))
	if !ok {
		return
	}

	project, err := a.fetchProjectByID(r.Context(), token.ProjectID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errProjectNotFound)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	tasks, err := a.listTasks(r.Context(), project.ID, nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	pulses, err := a.listPulses(r.Context(), project.ID, 12)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token_data": clientTokenData(token),
		"project":    project,
		"tasks":      tasks,
		"pulses":     pulses,
	})
}

func clientTokenData(token AccessToken) map[string]any {
	return map[string]any{
		"project_id":   token.ProjectID,
		"client_email": token.ClientEmail,
		"expires_at":   token.ExpiresAt.Format(time.RFC3339),
	}
}
