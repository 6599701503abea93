package http

import (
	"Dealbies-Backend/internal/auth"
	"Dealbies-Backend/internal/validator"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Dependencies сервисы, которые обслуживает HTTP слой
type Dependencies struct {
	Redirector Resolver
	Offers     OfferService
	Votes      VoteService
	Analytics  AnalyticsService
	Settings   SettingsReader
	Storage    Pinger
	Stats      StatsProvider // может быть nil
}

// Server HTTP сервер с обработчиками
type Server struct {
	redirectHandler  *RedirectHandler
	offersHandler    *OffersHandler
	votesHandler     *VotesHandler
	analyticsHandler *AnalyticsHandler
	settingsHandler  *SettingsHandler
	healthHandler    *HealthHandler
	authMiddleware   *auth.Middleware
	ingestLimiter    *IPRateLimiter
	log              *zap.Logger
}

// NewServer создает новый HTTP сервер
func NewServer(
	deps Dependencies,
	authMiddleware *auth.Middleware,
	ingestLimiter *IPRateLimiter,
	log *zap.Logger,
) *Server {
	v := validator.New()

	return &Server{
		redirectHandler:  NewRedirectHandler(deps.Redirector, log),
		offersHandler:    NewOffersHandler(deps.Offers, v, log),
		votesHandler:     NewVotesHandler(deps.Votes, v, log),
		analyticsHandler: NewAnalyticsHandler(deps.Analytics, v, log),
		settingsHandler:  NewSettingsHandler(deps.Settings, log),
		healthHandler:    NewHealthHandler(deps.Storage, deps.Stats, log),
		authMiddleware:   authMiddleware,
		ingestLimiter:    ingestLimiter,
		log:              log,
	}
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()
	m := s.authMiddleware

	// Health checks (без аутентификации)
	mux.HandleFunc("GET /health", s.healthHandler.Health)
	mux.HandleFunc("GET /ready", s.healthHandler.Ready)
	mux.HandleFunc("GET /metrics", s.healthHandler.Metrics)

	// Swagger документация
	mux.Handle("/api/v1/", httpSwagger.WrapHandler)

	// Партнерский редирект
	mux.HandleFunc("GET /visit/{slug}", s.redirectHandler.HandleRedirect)

	// Листинги доступны анонимно, голос пользователя виден при наличии токена
	mux.HandleFunc("GET /api/deals", m.OptionalAuth(s.offersHandler.ListDeals))
	mux.HandleFunc("GET /api/coupons", m.OptionalAuth(s.offersHandler.ListCoupons))
	mux.HandleFunc("POST /api/deals", m.RequireAuth(s.offersHandler.CreateDeal))
	mux.HandleFunc("POST /api/coupons", m.RequireAuth(s.offersHandler.CreateCoupon))

	mux.HandleFunc("POST /api/deals/{id}/vote", m.RequireAuth(s.votesHandler.VoteDeal))
	mux.HandleFunc("POST /api/coupons/{id}/vote", m.RequireAuth(s.votesHandler.VoteCoupon))

	mux.HandleFunc("POST /api/analytics/clicks", s.ingestLimiter.Limit(s.analyticsHandler.RecordClick))
	mux.HandleFunc("GET /api/analytics/clicks", m.RequireAdmin(s.analyticsHandler.ListClicks))

	mux.HandleFunc("GET /api/settings", s.settingsHandler.GetSettings)

	// CORS оборачивает весь mux, чтобы preflight не получал 405
	return m.CORS(mux)
}
