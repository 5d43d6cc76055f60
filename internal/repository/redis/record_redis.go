package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"medsumm/internal/repository"
)

const maxUpdateAttempts = 10

// ErrConflict is returned when an update keeps losing its optimistic lock.
var ErrConflict = errors.New("record changed concurrently, update aborted")

// RecordRedis is a Redis implementation of repository.RecordStore. Records
// live under prefix+patientID; Update uses WATCH/MULTI.
type RecordRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Connect parses url, creates a client and verifies connectivity.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// NewRecordRedis creates a store on client. A positive ttl is applied on every write.
func NewRecordRedis(client *redis.Client, prefix string, ttl time.Duration) *RecordRedis {
	return &RecordRedis{client: client, prefix: prefix, ttl: ttl}
}

var _ repository.RecordStore = (*RecordRedis)(nil)

func (r *RecordRedis) key(patientID string) string {
	return r.prefix + patientID
}

// Get returns the record text for patientID.
func (r *RecordRedis) Get(ctx context.Context, patientID string) (string, bool, error) {
	if patientID == "" {
		return "", false, repository.ErrPatientIDRequired
	}
	val, err := r.client.Get(ctx, r.key(patientID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Put stores text for patientID.
func (r *RecordRedis) Put(ctx context.Context, patientID, text string) error {
	if patientID == "" {
		return repository.ErrPatientIDRequired
	}
	if err := r.client.Set(ctx, r.key(patientID), text, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the record for patientID.
func (r *RecordRedis) Delete(ctx context.Context, patientID string) error {
	if patientID == "" {
		return repository.ErrPatientIDRequired
	}
	if err := r.client.Del(ctx, r.key(patientID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Update retries fn while other writers modify the same key.
func (r *RecordRedis) Update(ctx context.Context, patientID string, fn repository.UpdateFunc) (string, error) {
	if patientID == "" {
		return "", repository.ErrPatientIDRequired
	}
	key := r.key(patientID)

	var stored string
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Result()
		ok := true
		if errors.Is(err, redis.Nil) {
			current, ok = "", false
		} else if err != nil {
			return err
		}

		next, err := fn(current, ok)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, r.ttl)
			return nil
		})
		if err == nil {
			stored = next
		}
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return stored, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return "", err
	}
	return "", ErrConflict
}

// Len counts keys under the store prefix.
func (r *RecordRedis) Len(ctx context.Context) (int, error) {
	var (
		cursor uint64
		n      int
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("redis scan: %w", err)
		}
		n += len(keys)
		cursor = next
		if cursor == 0 {
			return n, nil
		}
	}
}
