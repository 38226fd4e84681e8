package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pulsed/pkg/bus"
)

var errProjectNotFound = errors.New("project not found")
var errNotProjectAdmin = errors.New("not authorized for this project")

func (a *API) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	pmID, ok := pmFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var req struct {
		Name        string `json:"name"`
		ClientName  string `json:"client_name"`
		ClientEmail string `json:"client_email"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	now := time.Now().UTC()
	model := projectModel{
		ID:          uuid.New(),
		PMID:        pmID,
		Name:        req.Name,
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		Status:      ProjectActive,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.ORM.WithContext(ctx).Create(&model).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	project := model.toAPI()
	a.publishEvent(bus.SubjectProjectCreated, map[string]any{
		"project_id": project.ID,
		"pm_id":      project.PMID,
		"name":       project.Name,
	})
	respondJSON(w, http.StatusCreated, map[string]any{"project": project})
}

func (a *API) handleListProjects(w http.ResponseWriter, r *http.Request) {
	pmID, ok := pmFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	projects, err := a.listProjectsByPM(r.Context(), pmID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (a *API) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"project": project})
}

func (a *API) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		ClientName  *string `json:"client_name"`
		ClientEmail *string `json:"client_email"`
		Status      *string `json:"status"`
		Description *string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(w, http.StatusBadRequest, errors.New("name cannot be empty"))
			return
		}
		updates["name"] = name
	}
	if req.ClientName != nil {
		updates["client_name"] = strings.TrimSpace(*req.ClientName)
	}
	if req.ClientEmail != nil {
		updates["client_email"] = strings.TrimSpace(*req.ClientEmail)
	}
	if req.Status != nil {
		if !validProjectStatus(*req.Status) {
			respondError(w, http.StatusBadRequest, errors.New("invalid project status"))
			return
		}
		updates["status"] = *req.Status
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()
	orm := a.store.ORM.WithContext(ctx)

	if err := orm.Model(&projectModel{}).Where("id = ?", project.ID).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	var model projectModel
	if err := orm.First(&model, "id = ?", project.ID).Error; err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"project": model.toAPI()})
}

func (a *API) handleArchiveProject(w http.ResponseWriter, r *http.Request) {
	project, ok := a.ownedProject(w, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context())
	defer cancel()

	err := a.store.ORM.WithContext(ctx).
		Model(&projectModel{}).
		Where("id = ?", project.ID).
		Updates(map[string]any{"status": ProjectArchived, "updated_at": time.Now().UTC()}).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	project.Status = ProjectArchived
	respondJSON(w, http.StatusOK, map[string]any{"project": project})
}

// ownedProject resolves the {projectID} route param and enforces that the
// authenticated PM administers it, writing the error response itself when not.
func (a *API) ownedProject(w http.ResponseWriter, r *http.Request) (Project, bool) {
	pmID, ok := pmFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, errors.New("authentication required"))
		return Project{}, false
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, errors.New("valid project id is required"))
		return Project{}, false
	}

	project, err := a.fetchProjectByID(r.Context(), projectID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		respondError(w, http.StatusNotFound, errProjectNotFound)
		return Project{}, false
	case err != nil:
		respondError(w, http.StatusInternalServerError, err)
		return Project{}, false
	}

	if project.PMID != pmID {
		respondError(w, http.StatusForbidden, errNotProjectAdmin)
		return Project{}, false
	}
	return project, true
}

func (a *API) fetchProjectByID(ctx context.Context, id uuid.UUID) (Project, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var model projectModel
	if err := a.store.ORM.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return Project{}, err
	}
	return model.toAPI(), nil
}
