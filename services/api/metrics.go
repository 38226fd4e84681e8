package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokenValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_token_validations_total",
		Help: "Client access-token validation attempts by result.",
	}, []string{"result"})

	tokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulse_tokens_issued_total",
		Help: "Client access tokens issued.",
	})

	pulsesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pulse_updates_published_total",
		Help: "Weekly pulse updates published.",
	})

	emailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulse_emails_sent_total",
		Help: "Outbound notification emails by template.",
	}, []string{"template"})
)
