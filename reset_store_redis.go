package authcore

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quartzsec/authcore/internal"
)

const (
	resetKeyPrefix       = "arc"
	resetRecordVersionV1 = 1
)

// RedisResetStore is a durable, TTL-aware [ResetCodeStore] backed by Redis.
// Records are stored under one key per normalized email with a Redis expiry
// matching the code's, so replacement and eviction fall out of SET and TTL
// semantics. Per-key linearizability comes from Redis itself.
type RedisResetStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisResetStore creates a [RedisResetStore] on the given client.
func NewRedisResetStore(redisClient redis.UniversalClient) *RedisResetStore {
	return &RedisResetStore{
		redis:  redisClient,
		prefix: resetKeyPrefix,
	}
}

func (s *RedisResetStore) key(email string) string {
	return s.prefix + ":" + internal.NormalizeEmail(email)
}

// Put stores the code, replacing any prior one for the email. The Redis
// expiry is set to the code's remaining lifetime; already-expired codes are
// rejected.
func (s *RedisResetStore) Put(ctx context.Context, code ResetCode) error {
	ttl := time.Until(code.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: reset code already expired", ErrResetStoreUnavailable)
	}

	encoded, err := encodeResetCode(&code)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResetStoreUnavailable, err)
	}

	if err := s.redis.Set(ctx, s.key(code.Email), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrResetStoreUnavailable, err)
	}

	return nil
}

// Get returns the live code for the email, or nil when none exists.
func (s *RedisResetStore) Get(ctx context.Context, email string) (*ResetCode, error) {
	data, err := s.redis.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrResetStoreUnavailable, err)
	}

	code, err := decodeResetCode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResetStoreUnavailable, err)
	}
	// Redis expiry is authoritative, but guard against clock drift between
	// the writer and this reader.
	if !code.ExpiresAt.After(time.Now()) {
		return nil, nil
	}

	return code, nil
}

// Delete removes the email's code. Removing an absent code is not an error.
func (s *RedisResetStore) Delete(ctx context.Context, email string) error {
	if err := s.redis.Del(ctx, s.key(email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrResetStoreUnavailable, err)
	}
	return nil
}

// List scans every live code. Diagnostic use only.
func (s *RedisResetStore) List(ctx context.Context) ([]ResetCode, error) {
	var out []ResetCode

	iter := s.redis.Scan(ctx, 0, s.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.redis.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrResetStoreUnavailable, err)
		}
		code, err := decodeResetCode(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrResetStoreUnavailable, err)
		}
		out = append(out, *code)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResetStoreUnavailable, err)
	}

	return out, nil
}

func encodeResetCode(code *ResetCode) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte(resetRecordVersionV1)

	if err := binary.Write(&buf, binary.BigEndian, code.CreatedAt.UnixMilli()); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, code.ExpiresAt.UnixMilli()); err != nil {
		return nil, err
	}

	for _, field := range []string{code.Email, code.UserID, code.Code} {
		if len(field) > 65535 {
			return nil, errors.New("reset record field too long")
		}
		if err := binary.Write(&buf, binary.BigEndian, uint16(len(field))); err != nil {
			return nil, err
		}
		buf.WriteString(field)
	}

	return buf.Bytes(), nil
}

func decodeResetCode(data []byte) (*ResetCode, error) {
	reader := bytes.NewReader(data)

	version, err := reader.ReadByte()
	if err != nil {
		return nil, err
	}
	if version != resetRecordVersionV1 {
		return nil, errors.New("invalid reset record version")
	}

	var createdAt, expiresAt int64
	if err := binary.Read(reader, binary.BigEndian, &createdAt); err != nil {
		return nil, err
	}
	if err := binary.Read(reader, binary.BigEndian, &expiresAt); err != nil {
		return nil, err
	}

	fields := make([]string, 3)
	for i := range fields {
		var length uint16
		if err := binary.Read(reader, binary.BigEndian, &length); err != nil {
			return nil, err
		}
		raw := make([]byte, length)
		if _, err := io.ReadFull(reader, raw); err != nil {
			return nil, err
		}
		fields[i] = string(raw)
	}

	return &ResetCode{
		Email:     fields[0],
		UserID:    fields[1],
		Code:      fields[2],
		CreatedAt: time.UnixMilli(createdAt),
		ExpiresAt: time.UnixMilli(expiresAt),
	}, nil
}
