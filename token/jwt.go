package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig defines [JWTCodec] parameters.
type JWTConfig struct {
	// Secret keys the HS256 signature. Required.
	Secret string
	// TTL is the fixed token lifetime. Defaults to [DefaultTTL].
	TTL time.Duration
	// Issuer is embedded in and required from every token when set.
	Issuer string
	// Now overrides the clock. Defaults to [time.Now].
	Now func() time.Time
}

type sessionClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTCodec carries the session identity as HS256 JWT claims. It implements
// the same valid/invalid contract as [HMACCodec]; the two are swappable
// behind [Codec] without touching calling code.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// NewJWTCodec validates cfg and returns a [JWTCodec].
func NewJWTCodec(cfg JWTConfig) (*JWTCodec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt codec requires a secret")
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.TTL < 0 {
		return nil, errors.New("invalid token TTL")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(cfg.Now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &JWTCodec{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		issuer: cfg.Issuer,
		now:    cfg.Now,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Encode builds a signed token for the identity. A zero IssuedAt is stamped
// with the current time.
func (c *JWTCodec) Encode(identity Identity) (string, error) {
	if identity.UserID == "" {
		return "", errors.New("identity requires a user id")
	}

	issuedAt := identity.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = c.now()
	}

	claims := sessionClaims{
		UID:   identity.UserID,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode validates the token and returns its identity, or nil for any
// malformed, tampered, or expired input.
func (c *JWTCodec) Decode(raw string) *Identity {
	claims := &sessionClaims{}

	parsed, err := c.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	if claims.UID == "" || claims.IssuedAt == nil {
		return nil
	}

	return &Identity{
		UserID:   claims.UID,
		Email:    claims.Email,
		IssuedAt: claims.IssuedAt.Time,
	}
}
