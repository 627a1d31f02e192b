package progress

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/streamhive/videos-ms-go/internal/db"
	"github.com/streamhive/videos-ms-go/internal/port"
)

// ttl keeps progress entries around long enough for operators to inspect
// finished jobs, without growing Redis forever.
const ttl = 24 * time.Hour

// Store keeps the last known percent-complete of each pipeline run in Redis.
type Store struct {
	client *redis.Client
}

// compile-time check: *Store must satisfy port.ProgressStore
var _ port.ProgressStore = (*Store)(nil)

func NewStore(addr, password string) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Store{client: rdb}
}

func (s *Store) Set(ctx context.Context, videoID db.UUID, stage string, percent float64) {
	key := progressKey(videoID.String())

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "stage", stage, "percent", strconv.FormatFloat(percent, 'f', 2, 64))
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		// progress is advisory; never fail the pipeline over it
		log.Printf("warning: could not record progress for video #%s: %v", videoID, err)
	}
}

func (s *Store) Get(ctx context.Context, videoID db.UUID) (*port.Progress, error) {
	vals, err := s.client.HGetAll(ctx, progressKey(videoID.String())).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil // no progress recorded yet
	}

	p := &port.Progress{Stage: vals["stage"]}
	if raw, ok := vals["percent"]; ok {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			p.Percent = f
		}
	}
	return p, nil
}

func progressKey(id string) string {
	return "videos:progress:" + id
}
