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
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex

	limitRate  rate.Limit = 5
	limitBurst            = 10
)

// Configure overrides the per-client rate before the server starts.
func Configure(rps float64, burst int) {
	mu.Lock()
	defer mu.Unlock()
	limitRate = rate.Limit(rps)
	limitBurst = burst
}

func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(limitRate, limitBurst)
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func StartVisitorCleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for ip, v := range visitors {
			if time.Since(v.lastSeen) > 5*time.Minute {
				delete(visitors, ip)
			}
		}
		mu.Unlock()
	}
}

func CleanupAllVisitors() {
	mu.Lock()
	defer mu.Unlock()
	visitors = make(map[string]*clientLimiter)
}
