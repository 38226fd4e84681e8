package api

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pulsed/pkg/db"
)

// List queries run against the pgx pool so large reads stay off the ORM
// session used by the write path.

func (a *API) listProjectsByPM(ctx context.Context, pmID uuid.UUID) ([]Project, error) {
	if a.store.DB == nil {
		return nil, errors.New("query pool not configured")
	}

	projects := []Project{}
	err := db.Select(ctx, a.store.DB, &projects, `
		SELECT id, pm_id, name, client_name, client_email, status, description, created_at, updated_at
		FROM projects
		WHERE pm_id = $1
		ORDER BY created_at DESC`, pmID)
	return projects, err
}

func (a *API) listTasks(ctx context.Context, projectID uuid.UUID, week *time.Time) ([]Task, error) {
	if a.store.DB == nil {
		return nil, errors.New("query pool not configured")
	}

	tasks := []Task{}
	if week != nil {
		err := db.Select(ctx, a.store.DB, &tasks, `
			SELECT id, project_id, title, status, week_start, position, notes, created_at, updated_at
			FROM tasks
			WHERE project_id = $1 AND week_start = $2
			ORDER BY position, created_at`, projectID, *week)
		return tasks, err
	}

	err := db.Select(ctx, a.store.DB, &tasks, `
		SELECT id, project_id, title, status, week_start, position, notes, created_at, updated_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY week_start, position, created_at`, projectID)
	return tasks, err
}

func (a *API) listPulses(ctx context.Context, projectID uuid.UUID, limit int) ([]Pulse, error) {
	if a.store.DB == nil {
		return nil, errors.New("query pool not configured")
	}
	if limit <= 0 {
		limit = 50
	}

	pulses := []Pulse{}
	err := db.Select(ctx, a.store.DB, &pulses, `
		SELECT id, project_id, author_id, week_of, health, summary, details, meta, published_at
		FROM pulses
		WHERE project_id = $1
		ORDER BY published_at DESC
		LIMIT $2`, projectID, limit)
	return pulses, err
}
