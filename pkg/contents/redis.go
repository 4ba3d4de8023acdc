package contents

import (
	"context"
	"encoding/json"
	stderrors "errors"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/jsongraph/pkg/cache"
	"github.com/matzehuels/jsongraph/pkg/errors"
)

// DefaultRedisPrefix is prepended to document IDs to form Redis keys.
const DefaultRedisPrefix = "jsongraph:doc:"

// RedisSink stores the contents of one document as a JSON record.
type RedisSink struct {
	client redis.UniversalClient
	key    string
}

// NewRedisSink creates a sink for document id. An empty prefix uses
// DefaultRedisPrefix.
//
// Errors:
//   - INVALID_CONFIG: id is not a valid document ID
func NewRedisSink(client redis.UniversalClient, prefix, id string) (*RedisSink, error) {
	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisSink{client: client, key: prefix + id}, nil
}

// Key returns the Redis key.
func (s *RedisSink) Key() string { return s.key }

// SetContents implements Sink. Network failures are retried with backoff.
func (s *RedisSink) SetContents(ctx context.Context, c Contents) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode contents")
	}
	err = cache.RetryWithBackoff(ctx, func() error {
		if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "redis set %s", s.key)
	}
	return nil
}

// Load implements Source.
func (s *RedisSink) Load(ctx context.Context) (*Contents, error) {
	var data []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, err = s.client.Get(ctx, s.key).Bytes()
		if err != nil && !stderrors.Is(err, redis.Nil) {
			return cache.Retryable(err)
		}
		return err
	})
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.New(errors.ErrCodeNotFound, "no contents at %s", s.key)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "redis get %s", s.key)
	}

	var c Contents
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode contents at %s", s.key)
	}
	return &c, nil
}

// Close closes the client.
func (s *RedisSink) Close() error { return s.client.Close() }

func (s *RedisSink) String() string { return "redis:" + s.key }

var _ Store = (*RedisSink)(nil)
