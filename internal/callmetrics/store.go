package callmetrics

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const metricsTTL = 7 * 24 * time.Hour

type Store struct {
	redis *redis.Client
	now   func() time.Time
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient, now: time.Now}
}

func (s *Store) Record(ctx context.Context, metric Metric) error {
	return s.Add(ctx, metric, 1)
}

func (s *Store) Add(ctx context.Context, metric Metric, value int64) error {
	now := s.now().UTC()
	key := RedisKey(now.Format("2006-01-02"), now.Hour())

	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, string(metric), value)
	pipe.Expire(ctx, key, metricsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// GetMetrics returns one entry per hour with recorded activity, newest first.
func (s *Store) GetMetrics(ctx context.Context, hours int) ([]*Metrics, error) {
	now := s.now().UTC()
	var metrics []*Metrics

	for i := 0; i < hours; i++ {
		t := now.Add(-time.Duration(i) * time.Hour)
		key := RedisKey(t.Format("2006-01-02"), t.Hour())

		data, err := s.redis.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}

		metrics = append(metrics, &Metrics{
			Date:          t.Format("2006-01-02"),
			Hour:          t.Hour(),
			Starts:        parseCount(data, MetricStarts),
			StartFailures: parseCount(data, MetricStartFailures),
			CallsEnded:    parseCount(data, MetricCallsEnded),
			ResultsReady:  parseCount(data, MetricResultsReady),
			PollAttempts:  parseCount(data, MetricPollAttempts),
			PollFailures:  parseCount(data, MetricPollFailures),
		})
	}

	return metrics, nil
}

func parseCount(data map[string]string, m Metric) int64 {
	v, ok := data[string(m)]
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}
