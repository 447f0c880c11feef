package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheTTL keeps dashboard numbers fresh enough while sparing the database
// the aggregate queries on every page load.
const cacheTTL = 60 * time.Second

var cache *redis.Client

// Init wires the optional redis cache. Without REDIS_ADDR the dashboard
// simply computes every request.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("redis ping failed, dashboard cache disabled:", err)
		return
	}

	cache = client
	log.Println("Dashboard cache enabled")
}

func cacheGet(ctx context.Context, key string, out any) bool {
	if cache == nil {
		return false
	}
	raw, err := cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func cacheSet(ctx context.Context, key string, value any) {
	if cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	cache.Set(ctx, key, raw, cacheTTL)
}
