package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime configuration for the pulse service.
type Config struct {
	Addr            string        `env:"ADDR,default=:8080"`
	DBDSN           string        `env:"DB_DSN,required"`
	JWTSigningKey   string        `env:"JWT_SIGNING_KEY,required"`
	PMSessionTTL    time.Duration `env:"PM_SESSION_TTL,default=24h"`
	PortalBaseURL   string        `env:"PORTAL_BASE_URL,default=http://localhost:8080"`
	DefaultTokenTTL int           `env:"DEFAULT_TOKEN_TTL_DAYS,default=30"`
	NATSURL         string        `env:"NATS_URL"`
	SMTPHost        string        `env:"SMTP_HOST"`
	SMTPPort        int           `env:"SMTP_PORT,default=587"`
	SMTPUser        string        `env:"SMTP_USER"`
	SMTPPassword    string        `env:"SMTP_PASS"`
	MailFrom        string        `env:"MAIL_FROM,default=updates@pulse.local"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`
}

// Load returns a Config populated from environment variables.
func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
