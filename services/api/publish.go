package api

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// publishEvent emits a fire-and-forget bus event. A missing bus or publish
// failure never affects the request that triggered it.
func (a *API) publishEvent(subject string, data map[string]any) {
	if a.store.Bus == nil || subject == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := a.store.Bus.Publish(ctx, subject, data); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("publish event")
	}
}
