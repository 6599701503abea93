package http

import (
	"Dealbies-Backend/internal/service"
	"context"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Resolver разрешает slug в адрес перехода
type Resolver interface {
	Resolve(ctx context.Context, slug string, meta service.RequestMeta) (service.Resolution, error)
}

// RedirectHandler обработчик редиректов
type RedirectHandler struct {
	resolver Resolver
	log      *zap.Logger
}

// NewRedirectHandler создает новый обработчик редиректов
func NewRedirectHandler(resolver Resolver, log *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		resolver: resolver,
		log:      log,
	}
}

// HandleRedirect переводит посетителя на сайт магазина
//
//	@Summary		Visit an offer
//	@Description	Redirects to the merchant URL with affiliate parameters and records the click. Expired offers redirect to their detail page, unknown slugs to /not-found, internal errors to /.
//	@Tags			Redirect
//	@Param			slug	path	string	true	"Deal or coupon slug"
//	@Success		302		"Redirect"
//	@Router			/visit/{slug} [get]
func (h *RedirectHandler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	meta := service.RequestMeta{
		UserAgent: r.UserAgent(),
		IPAddress: extractIPAddress(r),
		Referer:   r.Referer(),
	}

	res, err := h.resolver.Resolve(r.Context(), slug, meta)
	if err != nil {
		// клиент никогда не видит 500, только переход на главную
		h.log.Error("failed to resolve slug", zap.String("slug", slug), zap.Error(err))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.log.Info("redirect",
		zap.String("slug", slug),
		zap.String("kind", string(res.Kind)),
		zap.String("location", res.Location),
		zap.Bool("tracked", res.Tracked),
		zap.String("ip", meta.IPAddress))

	http.Redirect(w, r, res.Location, http.StatusFound)
}

// extractIPAddress извлекает IP адрес из запроса с учетом прокси
func extractIPAddress(r *http.Request) string {
	// Проверяем заголовки прокси в порядке приоритета
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For может содержать список IP через запятую
		first, _, _ := strings.Cut(ip, ",")
		return strings.TrimSpace(first)
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	if ip := r.Header.Get("X-Client-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	// Fallback к RemoteAddr
	return remoteIP(r)
}

// remoteIP адрес TCP соединения без порта
func remoteIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
