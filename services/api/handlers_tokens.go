package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pulsed/pkg/bus"
)

func (a *API) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}

	var req struct {
		ClientEmail   string `json:"client_email"`
		ExpiresInDays int    `json:"expires_in_days"`
		SendEmail     bool   `json:"send_email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.ClientEmail = strings.TrimSpace(req.ClientEmail)
	if req.ClientEmail == "" {
		respondError(w, http.StatusBadRequest, errors.New("client_email is required"))
		return
	}
	if req.ExpiresInDays == 0 {
		req.ExpiresInDays = a.config.TokenTTLDays
	}

	token, err := a.tokens.Issue(r.Context(), project.ID, req.ClientEmail, req.ExpiresInDays)
	switch {
	case errors.Is(err, ErrInvalidTTL):
		respondError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	tokensIssued.Inc()
	clientURL := a.clientPortalURL(token)

	a.publishEvent(bus.SubjectTokenIssued, map[string]any{
		"token_id":   token.ID,
		"project_id": project.ID,
		"expires_at": token.ExpiresAt.Format(time.RFC3339),
	})
	if req.SendEmail {
		a.notifyTokenIssued(project, token, clientURL, a.pmName(r))
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"token":      token.Value,
		"client_url": clientURL,
		"expires_at": token.ExpiresAt.Format(time.RFC3339),
		"project": map[string]any{
			"id":          project.ID,
			"name":        project.Name,
			"client_name": project.ClientName,
		},
	})
}

func (a *API) handleListTokens(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}

	tokens, err := a.tokens.ListByProject(r.Context(), project.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	// Raw values never leave issuance; listings show a prefix only.
	out := make([]map[string]any, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, map[string]any{
			"id":           token.ID,
			"client_email": token.ClientEmail,
			"token_prefix": token.Redacted(),
			"expires_at":   token.ExpiresAt.Format(time.RFC3339),
			"last_used_at": token.LastUsedAt,
			"is_active":    token.IsActive,
			"created_at":   token.CreatedAt.Format(time.RFC3339),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"access_tokens": out})
}

func (a *API) handleRevokeToken(w http.ResponseWriter, r *http.Request) {
	pmID, ok := pmFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	tokenID, err := uuid.Parse(chi.URLParam(r, "tokenID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("valid token id is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var model tokenModel
	err = a.store.ORM.WithContext(ctx).First(&model, "id = ?", tokenID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errors.New("access token not found"))
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	project, err := a.fetchProjectByID(r.Context(), model.ProjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	if project.PMID != pmID {
		respondError(w, http.StatusForbidden, errNotProjectAdmin)
		return
	}

	if err := a.tokens.Revoke(r.Context(), tokenID); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	a.publishEvent(bus.SubjectTokenRevoked, map[string]any{
		"token_id":   tokenID,
		"project_id": project.ID,
	})
	respondJSON(w, http.StatusOK, map[string]any{"revoked": tokenID})
}

// pmName looks up the display name of the authenticated PM for email copy.
func (a *API) pmName(r *http.Request) string {
	pmID, ok := pmFromContext(r.Context())
	if !ok {
		return ""
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var model userModel
	if err := a.store.ORM.WithContext(ctx).First(&model, "id = ?", pmID).Error; err != nil {
		return ""
	}
	return model.Name
}
