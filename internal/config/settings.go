package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Environment variables
const (
	EnvBotToken      = "BOT_TOKEN"
	EnvLogLevel      = "TGRAB_LOG_LEVEL"
	EnvSessionTTL    = "TGRAB_SESSION_TTL"
	EnvMaxSessions   = "TGRAB_MAX_SESSIONS"
	EnvUploadLimitMB = "TGRAB_UPLOAD_LIMIT_MB"
)

// Default values
const (
	DefaultSessionTTL    = time.Hour
	DefaultMaxSessions   = 512
	DefaultUploadLimitMB = 49

	// Bot accounts cannot upload more than ~50 MB regardless of settings.
	MaxUploadLimitMB = 49
	MinUploadLimitMB = 1
)

// ErrMissingToken means the required transport credential is absent.
var ErrMissingToken = errors.New("BOT_TOKEN is not set")

// Settings is the process configuration, sourced from the environment.
type Settings struct {
	BotToken       string
	SessionTTL     time.Duration
	MaxSessions    int
	MaxUploadBytes int64
}

// Load reads settings from the environment. The bot token is required and
// its absence is a startup failure; everything else falls back to defaults,
// with the upload limit clamped to what the transport accepts.
func Load() (*Settings, error) {
	token := os.Getenv(EnvBotToken)
	if token == "" {
		return nil, ErrMissingToken
	}

	s := &Settings{
		BotToken:       token,
		SessionTTL:     DefaultSessionTTL,
		MaxSessions:    DefaultMaxSessions,
		MaxUploadBytes: DefaultUploadLimitMB * 1024 * 1024,
	}

	if raw := os.Getenv(EnvSessionTTL); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil && ttl > 0 {
			s.SessionTTL = ttl
		}
	}

	if raw := os.Getenv(EnvMaxSessions); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			s.MaxSessions = n
		}
	}

	if raw := os.Getenv(EnvUploadLimitMB); raw != "" {
		if mb, err := strconv.Atoi(raw); err == nil {
			if mb < MinUploadLimitMB {
				mb = MinUploadLimitMB
			}
			if mb > MaxUploadLimitMB {
				mb = MaxUploadLimitMB
			}
			s.MaxUploadBytes = int64(mb) * 1024 * 1024
		}
	}

	return s, nil
}
