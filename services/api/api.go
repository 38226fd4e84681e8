package api

import (
	"errors"
	"time"

	"pulsed/pkg/render"
)

const (
	defaultTokenTTLDays = 30
	defaultSessionTTL   = 24 * time.Hour
)

// Config controls runtime behaviour for the API handlers.
type Config struct {
	PortalBaseURL  string
	JWTSigningKey  []byte
	SessionTTL     time.Duration
	TokenTTLDays   int
	AllowedOrigins []string
}

// API wires dependencies, template renderer, and configuration for HTTP
// handlers.
type API struct {
	store    *Store
	renderer *render.Engine
	config   Config
	tokens   TokenStore
}

// New initialises the API layer with sane defaults applied to the provided
// configuration.
func New(store *Store, renderer *render.Engine, cfg Config) (*API, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if store.ORM == nil {
		return nil, errors.New("store ORM is required")
	}
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if len(cfg.JWTSigningKey) == 0 {
		return nil, errors.New("jwt signing key is required")
	}
	if cfg.PortalBaseURL == "" {
		return nil, errors.New("portal base url is required")
	}

	if cfg.TokenTTLDays <= 0 {
		cfg.TokenTTLDays = defaultTokenTTLDays
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	tokens, err := newDBTokenStore(store.ORM)
	if err != nil {
		return nil, err
	}

	return &API{
		store:    store,
		renderer: renderer,
		config:   cfg,
		tokens:   tokens,
	}, nil
}
