package uploader

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter enforces a per-requester cooldown. Allow records now and returns
// true when the previous accepted request of id is at least one interval
// old; otherwise it returns false and leaves the state untouched.
type Limiter interface {
	Allow(ctx context.Context, id int64, now time.Time) (bool, error)
}

// pruneThreshold bounds how many identities MemoryLimiter keeps before it
// drops entries whose cooldown has already elapsed.
const pruneThreshold = 1024

type MemoryLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[int64]time.Time
}

func NewMemoryLimiter(interval time.Duration) *MemoryLimiter {
	return &MemoryLimiter{interval: interval, last: make(map[int64]time.Time)}
}

func (l *MemoryLimiter) Allow(_ context.Context, id int64, now time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.last[id]; ok && now.Sub(prev) < l.interval {
		return false, nil
	}

	if len(l.last) >= pruneThreshold {
		for k, t := range l.last {
			if now.Sub(t) >= l.interval {
				delete(l.last, k)
			}
		}
	}

	l.last[id] = now
	return true, nil
}

// allowScript compares and records in one round trip. The key expires with
// the cooldown so idle identities do not accumulate.
var allowScript = redis.NewScript(`
local last = redis.call('GET', KEYS[1])
if last and (tonumber(ARGV[1]) - tonumber(last)) < tonumber(ARGV[2]) then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// RedisLimiter shares cooldown state between processes.
type RedisLimiter struct {
	rdb      redis.Scripter
	interval time.Duration
	prefix   string
}

func NewRedisLimiter(rdb redis.Scripter, interval time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, interval: interval, prefix: "gitdrop:ratelimit:"}
}

func (l *RedisLimiter) Allow(ctx context.Context, id int64, now time.Time) (bool, error) {
	ttl := l.interval.Milliseconds()
	if ttl < 1 {
		ttl = 1
	}

	key := l.prefix + strconv.FormatInt(id, 10)
	res, err := allowScript.Run(ctx, l.rdb, []string{key}, now.UnixMilli(), l.interval.Milliseconds(), ttl).Int()
	if err != nil {
		return false, fmt.Errorf("rate limiter: %w", err)
	}
	return res == 1, nil
}
