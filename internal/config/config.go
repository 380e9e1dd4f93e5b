// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	PolicyTable  = "table"
	PolicyStatic = "static"

	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	// MinJWTSecretLength HS256 密钥最少 32 字节
	MinJWTSecretLength = 32
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	ServerHost string `env:"HOST" envDefault:"0.0.0.0"`
	ServerPort int    `env:"PORT" envDefault:"4000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON    bool   `env:"LOG_JSON" envDefault:"false"`

	DBDriver string `env:"DB_DRIVER" envDefault:"mysql"`
	DBDSN    string `env:"DB_DSN,required,notEmpty"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET,required,notEmpty"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET,required,notEmpty"`
	AccessTTL        time.Duration `env:"JWT_ACCESS_TTL" envDefault:"30m"`
	RefreshTTL       time.Duration `env:"JWT_REFRESH_TTL" envDefault:"24h"`

	// 注册邮箱验证码有效期
	VerificationCodeTTL time.Duration `env:"VERIFICATION_CODE_TTL" envDefault:"5m"`

	// AdminPolicy 管理员判定来源：table（admins 表，默认）或 static（ADMIN_EMAILS）
	AdminPolicy string   `env:"ADMIN_POLICY" envDefault:"table"`
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"EMAIL_USER"`
	SMTPPassword string `env:"EMAIL_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`
	ContactEmail string `env:"CONTACT_EMAIL" envDefault:"radio.la.35@example.com"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"radio.events"`

	CORSOrigins  []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,https://radio-la-35.netlify.app"`
	DefaultImage string   `env:"DEFAULT_IMAGE" envDefault:"/radio_la_35.png"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// KafkaEnabled returns true if at least one broker is configured.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Sender 发件人，未配置 MAIL_FROM 时使用 EMAIL_USER
func (c Config) Sender() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return c.SMTPUsername
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.AdminEmails = normalizeEmails(cfg.AdminEmails)
	cfg.AdminPolicy = strings.ToLower(strings.TrimSpace(cfg.AdminPolicy))
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AdminPolicy {
	case PolicyTable, PolicyStatic:
	default:
		return fmt.Errorf("ADMIN_POLICY must be %q or %q, got %q", PolicyTable, PolicyStatic, c.AdminPolicy)
	}
	if c.AdminPolicy == PolicyStatic && len(c.AdminEmails) == 0 {
		return fmt.Errorf("ADMIN_EMAILS is required when ADMIN_POLICY=%s", PolicyStatic)
	}

	switch c.DBDriver {
	case DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverMySQL, DriverPostgres, c.DBDriver)
	}

	if len(c.JWTAccessSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_ACCESS_SECRET must be at least %d bytes long, got %d bytes",
			MinJWTSecretLength, len(c.JWTAccessSecret))
	}
	if len(c.JWTRefreshSecret) < MinJWTSecretLength {
		return fmt.Errorf("JWT_REFRESH_SECRET must be at least %d bytes long, got %d bytes",
			MinJWTSecretLength, len(c.JWTRefreshSecret))
	}
	if c.JWTAccessSecret == c.JWTRefreshSecret {
		return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return nil
}

func normalizeEmails(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
