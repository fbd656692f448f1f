/**
* Name: 			config.go
* Description: 		Environment configuration shared by every HealPrint service
* Workflow: 		.env load, env struct parsing, validation
 */

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultJWTSecret = "default_secret_key"

type ServerConfig struct {
	GatewayAddr    string `env:"GATEWAY_ADDR" envDefault:":8000"`
	UserAddr       string `env:"USER_SERVICE_ADDR" envDefault:":8001"`
	ChatAddr       string `env:"CHAT_SERVICE_ADDR" envDefault:":8002"`
	DiagnosticAddr string `env:"DIAGNOSTIC_SERVICE_ADDR" envDefault:":8003"`

	UserServiceURL       string `env:"USER_SERVICE_URL" envDefault:"http://localhost:8001"`
	ChatServiceURL       string `env:"CHAT_SERVICE_URL" envDefault:"http://localhost:8002"`
	DiagnosticServiceURL string `env:"DIAGNOSTIC_SERVICE_URL" envDefault:"http://localhost:8003"`

	CORSOrigins    []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:8080,http://127.0.0.1:5173"`
	InternalAPIKey string   `env:"INTERNAL_API_KEY"`
}

type DatabaseConfig struct {
	Driver       string `env:"DATABASE_DRIVER" envDefault:"sqlite"` // sqlite | mysql
	UserDBPath   string `env:"USER_DB_PATH" envDefault:"./data/users.db"`
	ChatDBPath   string `env:"CHAT_DB_PATH" envDefault:"./data/chat.db"`
	MySQLDSN     string `env:"MYSQL_DSN"`
	GormLogLevel string `env:"GORM_LOG_LEVEL" envDefault:"warn"`
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET_KEY"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"30m"`
	Issuer string        `env:"JWT_ISSUER" envDefault:"healprint-user-service"`
}

type CookieConfig struct {
	Name   string        `env:"COOKIE_NAME" envDefault:"access_token"`
	Domain string        `env:"COOKIE_DOMAIN"`
	Secure bool          `env:"COOKIE_SECURE" envDefault:"true"`
	MaxAge time.Duration `env:"COOKIE_MAX_AGE" envDefault:"30m"`
}

type GoogleConfig struct {
	ClientID     string   `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string   `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURI  string   `env:"GOOGLE_REDIRECT_URI"`
	RedirectURIs []string `env:"GOOGLE_ALLOWED_REDIRECT_URIS" envSeparator:","`
	Scopes       []string `env:"GOOGLE_SCOPES" envSeparator:"," envDefault:"openid,email,profile"`
}

// Enabled reports whether the code flow can be served.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// AllowedRedirect reports whether uri may be used as an OAuth redirect.
func (g GoogleConfig) AllowedRedirect(uri string) bool {
	if uri == "" || uri == g.RedirectURI {
		return true
	}
	for _, allowed := range g.RedirectURIs {
		if allowed == uri {
			return true
		}
	}
	return false
}

type LLMConfig struct {
	APIKey        string        `env:"OPENROUTER_API_KEY"`
	BaseURL       string        `env:"LLM_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	ChatModel     string        `env:"LLM_CHAT_MODEL" envDefault:"openai/gpt-4o-mini"`
	AnalysisModel string        `env:"LLM_ANALYSIS_MODEL" envDefault:"openai/gpt-4o"`
	SiteURL       string        `env:"SITE_URL" envDefault:"https://healprint.xyz"`
	SiteName      string        `env:"SITE_NAME" envDefault:"HealPrint AI"`
	Timeout       time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
}

// Configured is false for an empty key or the placeholder from the sample .env.
func (l LLMConfig) Configured() bool {
	return l.APIKey != "" && l.APIKey != "your_openrouter_api_key_here"
}

type ChatConfig struct {
	MaxConversationLength int           `env:"MAX_CONVERSATION_LENGTH" envDefault:"50"`
	HistoryWindow         int           `env:"CHAT_HISTORY_WINDOW" envDefault:"10"`
	CacheTTL              time.Duration `env:"CONVERSATION_CACHE_TTL" envDefault:"24h"`
	ListLimit             int           `env:"CONVERSATION_LIST_LIMIT" envDefault:"50"`
	CatalogFile           string        `env:"DIAGNOSTIC_CATALOG_FILE"`
}

type VoiceConfig struct {
	Enabled         bool   `env:"VOICE_ENABLED" envDefault:"false"`
	CredentialsFile string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	LanguageCode    string `env:"VOICE_LANGUAGE_CODE" envDefault:"en-US"`
	VoiceName       string `env:"VOICE_NAME" envDefault:"en-US-Wavenet-F"`
	SampleRateHertz int32  `env:"VOICE_SAMPLE_RATE" envDefault:"16000"`
	ArchiveDir      string `env:"VOICE_ARCHIVE_DIR" envDefault:"./data/records"`
	MaxUploadBytes  int64  `env:"VOICE_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

type DiagnosticConfig struct {
	Threshold    float64 `env:"DIAGNOSTIC_THRESHOLD" envDefault:"0.7"`
	PatternsFile string  `env:"DIAGNOSTIC_PATTERNS_FILE"`
}

type RateLimitConfig struct {
	AuthEvery time.Duration `env:"RATE_LIMIT_AUTH_EVERY" envDefault:"200ms"`
	AuthBurst int           `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"`
	ChatEvery time.Duration `env:"RATE_LIMIT_CHAT_EVERY" envDefault:"500ms"`
	ChatBurst int           `env:"RATE_LIMIT_CHAT_BURST" envDefault:"5"`
}

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Cookie     CookieConfig
	Google     GoogleConfig
	LLM        LLMConfig
	Chat       ChatConfig
	Voice      VoiceConfig
	Diagnostic DiagnosticConfig
	RateLimit  RateLimitConfig
}

func (c *Config) IsProd() bool {
	return c.Env == "production"
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Debug("no .env file found, using process environment")
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWT.Secret == "" && !cfg.IsProd() {
		cfg.JWT.Secret = defaultJWTSecret
		slog.Warn("JWT_SECRET_KEY is not set, using the development default")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.IsProd() && (c.JWT.Secret == "" || c.JWT.Secret == defaultJWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be set in production"))
	}
	switch c.Database.Driver {
	case "sqlite":
	case "mysql":
		if c.Database.MySQLDSN == "" {
			errs = append(errs, errors.New("MYSQL_DSN is required when DATABASE_DRIVER=mysql"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}
	if len(c.Server.CORSOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ORIGINS must list at least one origin"))
	}
	if c.Cookie.MaxAge <= 0 {
		errs = append(errs, errors.New("COOKIE_MAX_AGE must be positive"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Chat.MaxConversationLength <= 0 {
		errs = append(errs, errors.New("MAX_CONVERSATION_LENGTH must be positive"))
	}
	if c.Voice.Enabled && c.Voice.CredentialsFile == "" {
		errs = append(errs, errors.New("GOOGLE_APPLICATION_CREDENTIALS is required when VOICE_ENABLED=true"))
	}
	return errors.Join(errs...)
}
