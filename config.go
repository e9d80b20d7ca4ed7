package authcore

import (
	"errors"
	"time"
)

// Config defines all tunable behavior of the engine.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	// Pepper is the deployment-wide secret mixed into every password hash
	// and session token signature. It is mandatory: there is no fallback
	// value, and rotating it invalidates all outstanding tokens.
	Pepper string

	Password PasswordConfig
	Token    TokenConfig
	Reset    ResetConfig
	Audit    AuditConfig
	Metrics  MetricsConfig

	// Development enables diagnostic surfaces (reset-code listing) that
	// must stay off in production.
	Development bool
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines hashing parameters.
type PasswordConfig struct {
	// Cost is the bcrypt cost factor. Defaults to 12.
	Cost int
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenCodecType selects the session-token encoding.
type TokenCodecType string

const (
	// CodecHMAC is the 4-field colon-joined HMAC-signed string format.
	CodecHMAC TokenCodecType = "hmac"
	// CodecJWT is an HS256 JWT carrying the same identity claims.
	CodecJWT TokenCodecType = "jwt"
)

// TokenConfig defines session-token parameters.
type TokenConfig struct {
	// TTL is the fixed token lifetime. Defaults to 24h.
	TTL time.Duration
	// Codec selects the token encoding. Defaults to [CodecHMAC].
	Codec TokenCodecType
	// Issuer is embedded in JWT tokens. Ignored by the HMAC codec.
	Issuer string
}

/*
====================================
RESET CONFIG
====================================
*/

// ResetConfig defines the password-reset-code lifecycle parameters.
type ResetConfig struct {
	// TTL bounds the lifetime of an issued code. Defaults to 15m.
	// An unbounded guessable 6-digit code is a security defect, so a
	// zero TTL is rejected at Build time.
	TTL time.Duration
	// MaxRequests caps reset requests per email (and per IP when
	// EnableIPThrottle is set) within TTL. Zero disables throttling.
	// Throttling requires a Redis client.
	MaxRequests      int
	EnableIPThrottle bool
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Password: PasswordConfig{
			Cost: 12,
		},
		Token: TokenConfig{
			TTL:   24 * time.Hour,
			Codec: CodecHMAC,
		},
		Reset: ResetConfig{
			TTL:              15 * time.Minute,
			MaxRequests:      5,
			EnableIPThrottle: true,
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.Pepper == "" {
		return errors.New("pepper is required and has no default")
	}
	if cfg.Password.Cost < 4 || cfg.Password.Cost > 31 {
		return errors.New("invalid bcrypt cost")
	}
	if cfg.Token.TTL <= 0 {
		return errors.New("invalid token TTL")
	}
	switch cfg.Token.Codec {
	case CodecHMAC, CodecJWT:
	default:
		return errors.New("unsupported token codec")
	}
	if cfg.Reset.TTL <= 0 {
		return errors.New("invalid reset code TTL")
	}
	if cfg.Reset.MaxRequests < 0 {
		return errors.New("invalid reset request budget")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	// Config holds only value fields; a shallow copy is a deep copy.
	return cfg
}
