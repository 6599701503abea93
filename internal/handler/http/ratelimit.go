package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterIdleTTL через сколько неактивный лимитер клиента удаляется
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter ограничивает частоту запросов с одного IP адреса
type IPRateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	trustProxy bool // адрес из заголовков прокси, иначе из RemoteAddr
	now        func() time.Time
}

// NewIPRateLimiter создает лимитер. rps <= 0 отключает ограничение.
// trustProxy включается только за прокси, который перезаписывает X-Forwarded-For
func NewIPRateLimiter(rps float64, burst int, trustProxy bool) *IPRateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		clients:    make(map[string]*clientLimiter),
		limit:      limit,
		burst:      burst,
		trustProxy: trustProxy,
		now:        time.Now,
	}
}

// Allow сообщает, можно ли обслужить очередной запрос с адреса ip
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[ip]
	if !ok {
		l.evictIdle(now)
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

func (l *IPRateLimiter) evictIdle(now time.Time) {
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(l.clients, ip)
		}
	}
}

// Limit оборачивает обработчик, отвечая 429 при превышении лимита
func (l *IPRateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(l.clientKey(r)) {
			w.Header().Set("Retry-After", "1")
			writeError(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// clientKey адрес клиента для лимита. Заголовки прокси задает сам клиент,
// поэтому без trustProxy используется только адрес соединения
func (l *IPRateLimiter) clientKey(r *http.Request) string {
	if l.trustProxy {
		return extractIPAddress(r)
	}
	return remoteIP(r)
}
