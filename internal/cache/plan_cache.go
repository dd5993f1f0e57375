package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/segyhp/finance-tracker/internal/domain"
)

// ErrMiss is returned when no snapshot is stored for a plan
var ErrMiss = errors.New("cache miss")

// ErrStale is returned by Set when the plan was invalidated after the generation was read
var ErrStale = errors.New("cache generation changed")

// generationTTL bounds how long an idle generation counter is kept
const generationTTL = 24 * time.Hour

// PlanSnapshot is a plan together with its installments as read from the database
type PlanSnapshot struct {
	Plan         *domain.InstallmentPlan `json:"plan"`
	Installments []*domain.Installment   `json:"installments"`
}

// PlanCache stores plan snapshots between reads.
//
// Readers call Generation before loading from the database and hand the value
// to Set. Delete bumps the generation, so a snapshot loaded before a write
// is dropped instead of stored.
type PlanCache interface {
	Get(ctx context.Context, planID uuid.UUID) (*PlanSnapshot, error)
	Generation(ctx context.Context, planID uuid.UUID) (int64, error)
	Set(ctx context.Context, snapshot *PlanSnapshot, generation int64) error
	Delete(ctx context.Context, planID uuid.UUID) error
}

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1]
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2])
if not current then
	current = '0'
end
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

type RedisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlanCache(client *redis.Client, ttl time.Duration) *RedisPlanCache {
	return &RedisPlanCache{
		client: client,
		ttl:    ttl,
	}
}

func planKey(planID uuid.UUID) string {
	return fmt.Sprintf("installment_plan:%s", planID)
}

func generationKey(planID uuid.UUID) string {
	return fmt.Sprintf("installment_plan_gen:%s", planID)
}

func (c *RedisPlanCache) Get(ctx context.Context, planID uuid.UUID) (*PlanSnapshot, error) {
	data, err := c.client.Get(ctx, planKey(planID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var snapshot PlanSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode plan snapshot: %w", err)
	}
	if snapshot.Plan == nil {
		return nil, ErrMiss
	}

	return &snapshot, nil
}

// Generation returns the invalidation counter of a plan, zero when none was recorded
func (c *RedisPlanCache) Generation(ctx context.Context, planID uuid.UUID) (int64, error) {
	generation, err := c.client.Get(ctx, generationKey(planID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

func (c *RedisPlanCache) Set(ctx context.Context, snapshot *PlanSnapshot, generation int64) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode plan snapshot: %w", err)
	}

	keys := []string{planKey(snapshot.Plan.ID), generationKey(snapshot.Plan.ID)}
	stored, err := setIfGeneration.Run(ctx, c.client, keys, generation, data, c.ttl.Milliseconds()).Int()
	if err != nil {
		return err
	}
	if stored == 0 {
		return ErrStale
	}

	return nil
}

func (c *RedisPlanCache) Delete(ctx context.Context, planID uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, planKey(planID))
		pipe.Incr(ctx, generationKey(planID))
		pipe.Expire(ctx, generationKey(planID), max(generationTTL, 2*c.ttl))
		return nil
	})
	return err
}

// NoopPlanCache never stores anything. It stands in when Redis is not configured.
type NoopPlanCache struct{}

func (NoopPlanCache) Get(context.Context, uuid.UUID) (*PlanSnapshot, error) { return nil, ErrMiss }

func (NoopPlanCache) Generation(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (NoopPlanCache) Set(context.Context, *PlanSnapshot, int64) error { return nil }

func (NoopPlanCache) Delete(context.Context, uuid.UUID) error { return nil }
