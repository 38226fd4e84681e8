package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Notification mail is best-effort: a disabled sender, template failure, or
// SMTP failure is logged and otherwise ignored.

func (a *API) notifyTokenIssued(project Project, token AccessToken, clientURL, pmName string) {
	if !a.store.Mail.Enabled() {
		return
	}

	body, err := a.renderer.Render("client_invite", map[string]any{
		"ClientName":  project.ClientName,
		"PMName":      pmName,
		"ProjectName": project.Name,
		"ClientURL":   clientURL,
		"ExpiresAt":   token.ExpiresAt,
	})
	if err != nil {
		log.Error().Err(err).Msg("render client invite")
		return
	}

	subject := fmt.Sprintf("Your status page for %s", project.Name)
	if err := a.store.Mail.Send(token.ClientEmail, subject, body); err != nil {
		log.Warn().Err(err).Str("project", project.Name).Msg("send client invite")
		return
	}
	emailsSent.WithLabelValues("client_invite").Inc()
}

func (a *API) notifyPulsePublished(project Project, pulse Pulse) {
	if !a.store.Mail.Enabled() || project.ClientEmail == "" {
		return
	}

	body, err := a.renderer.Render("pulse_published", map[string]any{
		"ClientName":  project.ClientName,
		"ProjectName": project.Name,
		"WeekOf":      pulse.WeekOf,
		"Health":      pulse.Health,
		"Summary":     pulse.Summary,
		"Details":     pulse.Details,
		"ClientURL":   a.portalURLForClient(project),
	})
	if err != nil {
		log.Error().Err(err).Msg("render pulse notification")
		return
	}

	subject := fmt.Sprintf("%s — weekly update for %s", project.Name, pulse.WeekOf.Format("Jan 2"))
	if err := a.store.Mail.Send(project.ClientEmail, subject, body); err != nil {
		log.Warn().Err(err).Str("project", project.Name).Msg("send pulse notification")
		return
	}
	emailsSent.WithLabelValues("pulse_published").Inc()
}

// clientPortalURL is the single artifact a client ever receives.
func (a *API) clientPortalURL(token AccessToken) string {
	return fmt.Sprintf("%s/client?token=%s", a.config.PortalBaseURL, token.Value)
}

// portalURLForClient finds a live token for the project's client contact so
// the notification links straight into the portal. Falls back to the bare
// base URL when no usable token exists.
func (a *API) portalURLForClient(project Project) string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tokens, err := a.tokens.ListByProject(ctx, project.ID)
	if err != nil {
		log.Warn().Err(err).Msg("list tokens for notification")
		return a.config.PortalBaseURL
	}

	now := time.Now().UTC()
	for _, token := range tokens {
		if token.IsActive && !token.ExpiredAt(now) && token.ClientEmail == project.ClientEmail {
			return a.clientPortalURL(token)
		}
	}
	return a.config.PortalBaseURL
}
