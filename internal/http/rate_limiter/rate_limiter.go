package rate_limiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	clients = make(map[string]*clientLimiter)
	mu      sync.Mutex
)

// GetClient returns the limiter for a remote client, creating it on first
// sight. Search queries are cheap but cacheable, so the bucket is small.
func GetClient(key string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	c, exists := clients[key]
	if !exists {
		limiter := rate.NewLimiter(5, 10) // 5 requests/sec, burst of 10
		clients[key] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	c.lastSeen = time.Now()
	return c.limiter
}

func StartClientCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for key, c := range clients {
			if time.Since(c.lastSeen) > 5*time.Minute {
				delete(clients, key)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllClients() {
	mu.Lock()
	defer mu.Unlock()
	clients = make(map[string]*clientLimiter)
}
