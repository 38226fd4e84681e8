package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"pulsed/pkg/bus"
)

func (a *API) handlePublishPulse(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}

	pmID, _ := pmFromContext(r.Context())

	var req struct {
		WeekOf  string         `json:"week_of"`
		Health  string         `json:"health"`
		Summary string         `json:"summary"`
		Details string         `json:"details"`
		Meta    map[string]any `json:"meta"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Summary = strings.TrimSpace(req.Summary)
	if req.Summary == "" {
		respondError(w, http.StatusBadRequest, errors.New("summary is required"))
		return
	}
	if !validHealth(req.Health) {
		respondError(w, http.StatusBadRequest, errors.New("health must be green, amber, or red"))
		return
	}
	week, err := parseDate(req.WeekOf)
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("week_of must be a YYYY-MM-DD date"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	model := pulseModel{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		AuthorID:    pmID,
		WeekOf:      weekStart(week),
		Health:      req.Health,
		Summary:     req.Summary,
		Details:     req.Details,
		Meta:        toJSONMap(req.Meta),
		PublishedAt: time.Now().UTC(),
	}
	if err := a.store.ORM.WithContext(ctx).Create(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	pulse := model.toAPI()
	pulsesPublished.Inc()

	a.publishEvent(bus.SubjectPulsePublished, map[string]any{
		"pulse_id":   pulse.ID,
		"project_id": project.ID,
		"health":     pulse.Health,
		"week_of":    pulse.WeekOf.Format("2006-01-02"),
	})
	a.notifyPulsePublished(project, pulse)

	respondJSON(w, http.StatusCreated, map[string]any{"pulse": pulse})
}

func (a *API) handleListPulses(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	pulses, err := a.listPulses(r.Context(), project.ID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"pulses": pulses})
}
