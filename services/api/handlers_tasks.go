package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (a *API) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}

	var req struct {
		Title     string `json:"title"`
		Status    string `json:"status"`
		WeekStart string `json:"week_start"`
		Position  int    `json:"position"`
		Notes     string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, errors.New("title is required"))
		return
	}
	if req.Status == "" {
		req.Status = TaskPlanned
	}
	if !validTaskStatus(req.Status) {
		respondError(w, http.StatusBadRequest, errors.New("invalid task status"))
		return
	}
	week, err := parseDate(req.WeekStart)
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("week_start must be a YYYY-MM-DD date"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	now := time.Now().UTC()
	model := taskModel{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Title:     req.Title,
		Status:    req.Status,
		WeekStart: weekStart(week),
		Position:  req.Position,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.ORM.WithContext(ctx).Create(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"task": model.toAPI()})
}

func (a *API) handleListTasks(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}

	var week *time.Time
	if raw := r.URL.Query().Get("week"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, errors.New("week must be a YYYY-MM-DD date"))
			return
		}
		normalized := weekStart(parsed)
		week = &normalized
	}

	tasks, err := a.listTasks(r.Context(), project.ID, week)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (a *API) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := a.ownedTask(w, r)
	if !ok {
		return
	}

	var req struct {
		Title     *string `json:"title"`
		Status    *string `json:"status"`
		WeekStart *string `json:"week_start"`
		Position  *int    `json:"position"`
		Notes     *string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			respondError(w, http.StatusBadRequest, errors.New("title cannot be empty"))
			return
		}
		updates["title"] = title
	}
	if req.Status != nil {
		if !validTaskStatus(*req.Status) {
			respondError(w, http.StatusBadRequest, errors.New("invalid task status"))
			return
		}
		updates["status"] = *req.Status
	}
	if req.WeekStart != nil {
		week, err := parseDate(*req.WeekStart)
		if err != nil {
			respondError(w, http.StatusBadRequest, errors.New("week_start must be a YYYY-MM-DD date"))
			return
		}
		updates["week_start"] = weekStart(week)
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	if err := orm.Model(&taskModel{}).Where("id = ?", task.ID).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	var model taskModel
	if err := orm.First(&model, "id = ?", task.ID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"task": model.toAPI()})
}

func (a *API) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := a.ownedTask(w, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	if err := a.store.ORM.WithContext(ctx).Delete(&taskModel{}, "id = ?", task.ID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"deleted": task.ID})
}

// ownedTask resolves {taskID} and checks the task's project belongs to the
// authenticated PM.
func (a *API) ownedTask(w http.ResponseWriter, r *http.Request) (Task, bool) {
	pmID, ok := pmFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errors.New("authentication required"))
		return Task{}, false
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("valid task id is required"))
		return Task{}, false
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	var model taskModel
	err = a.store.ORM.WithContext(ctx).First(&model, "id = ?", taskID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errors.New("task not found"))
		return Task{}, false
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return Task{}, false
	}

	project, err := a.fetchProjectByID(r.Context(), model.ProjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return Task{}, false
	}
	if project.PMID != pmID {
		respondError(w, http.StatusForbidden, errNotProjectAdmin)
		return Task{}, false
	}
	return model.toAPI(), true
}
