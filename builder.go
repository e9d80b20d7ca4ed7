package authcore

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/quartzsec/authcore/access"
	"github.com/quartzsec/authcore/internal/rate"
	"github.com/quartzsec/authcore/password"
	"github.com/quartzsec/authcore/token"
)

// Builder assembles an [Engine]. Collaborators default where sensible: the
// reset store falls back to an in-memory map (or Redis when a client is
// supplied), the policy to [access.DefaultPolicy], the notifier to a no-op.
// The pepper and the user repository have no defaults.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	users      UserRepository
	resetStore ResetCodeStore
	notifier   Notifier
	auditSink  AuditSink
	policy     *access.Policy
	codec      token.Codec

	built bool
}

// New creates a [Builder] seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithPepper sets the deployment secret mixed into hashing and signing.
func (b *Builder) WithPepper(pepper string) *Builder {
	b.config.Pepper = pepper
	return b
}

// WithDevelopment toggles diagnostic surfaces (reset-code listing).
func (b *Builder) WithDevelopment(enabled bool) *Builder {
	b.config.Development = enabled
	return b
}

// WithRedis supplies a Redis client, enabling the durable reset store and
// request throttling.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserRepository supplies the external record store. Required.
func (b *Builder) WithUserRepository(users UserRepository) *Builder {
	b.users = users
	return b
}

// WithResetStore overrides the reset-code store.
func (b *Builder) WithResetStore(store ResetCodeStore) *Builder {
	b.resetStore = store
	return b
}

// WithNotifier supplies the fire-and-forget reset-code dispatcher.
func (b *Builder) WithNotifier(notifier Notifier) *Builder {
	b.notifier = notifier
	return b
}

// WithAuditSink supplies the diagnostic sink for security events.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithPolicy overrides the role→resource policy table. The policy must be
// frozen before Build.
func (b *Builder) WithPolicy(policy *access.Policy) *Builder {
	b.policy = policy
	return b
}

// WithTokenCodec overrides the session-token codec, bypassing the
// Config.Token selection entirely.
func (b *Builder) WithTokenCodec(codec token.Codec) *Builder {
	b.codec = codec
	return b
}

// Build validates the configuration, wires defaults, and returns the
// engine. A builder builds at most once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already built")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}
	if b.users == nil {
		return nil, errors.New("user repository is required")
	}

	hasher, err := password.NewHasher(password.Config{
		Cost:   b.config.Password.Cost,
		Pepper: b.config.Pepper,
	})
	if err != nil {
		return nil, err
	}

	codec := b.codec
	if codec == nil {
		switch b.config.Token.Codec {
		case CodecJWT:
			codec, err = token.NewJWTCodec(token.JWTConfig{
				Secret: b.config.Pepper,
				TTL:    b.config.Token.TTL,
				Issuer: b.config.Token.Issuer,
			})
		default:
			codec, err = token.NewHMACCodec(token.HMACConfig{
				Secret: b.config.Pepper,
				TTL:    b.config.Token.TTL,
			})
		}
		if err != nil {
			return nil, err
		}
	}

	resetStore := b.resetStore
	if resetStore == nil {
		if b.redis != nil {
			resetStore = NewRedisResetStore(b.redis)
		} else {
			resetStore = NewMemoryResetStore()
		}
	}

	var resetLimiter *rate.Limiter
	if b.redis != nil && b.config.Reset.MaxRequests > 0 {
		resetLimiter = rate.New(b.redis, rate.Config{
			MaxRequests:      b.config.Reset.MaxRequests,
			Window:           b.config.Reset.TTL,
			EnableIPThrottle: b.config.Reset.EnableIPThrottle,
		})
	}

	policy := b.policy
	if policy == nil {
		policy = access.DefaultPolicy()
	}

	notifier := b.notifier
	if notifier == nil {
		notifier = NoOpNotifier{}
	}

	b.built = true

	return &Engine{
		config:       b.config,
		hasher:       hasher,
		codec:        codec,
		policy:       policy,
		resetStore:   resetStore,
		resetLimiter: resetLimiter,
		users:        b.users,
		notifier:     notifier,
		audit:        newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics:      newMetrics(b.config.Metrics),
	}, nil
}
