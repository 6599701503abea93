package http

import (
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"Dealbies-Backend/internal/service"
	"Dealbies-Backend/internal/validator"
	"context"
	"net/http"

	"go.uber.org/zap"
)

// AnalyticsService запись и отчеты по кликам
type AnalyticsService interface {
	RecordClick(ctx context.Context, in service.ClickInput) (*domain.ClickTracking, error)
	Summary(ctx context.Context, filter repository.ClickFilter) (*service.ClickSummary, error)
}

// AnalyticsHandler обработчик аналитики кликов
type AnalyticsHandler struct {
	analytics AnalyticsService
	validator *validator.Validator
	log       *zap.Logger
}

// NewAnalyticsHandler создает новый обработчик аналитики
func NewAnalyticsHandler(analytics AnalyticsService, v *validator.Validator, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		validator: v,
		log:       log,
	}
}

// RecordClick сохраняет клик, отправленный клиентом
//
//	@Summary		Record a click
//	@Description	Stores a click event. Missing userAgent and ipAddress are taken from the request.
//	@Tags			Analytics
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.ClickInput	true	"Click"
//	@Success		201		{object}	domain.ClickTracking
//	@Failure		400		{object}	ErrorResponse
//	@Failure		429		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/analytics/clicks [post]
func (h *AnalyticsHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	var in service.ClickInput
	if !decodeAndValidate(w, r, h.validator, &in) {
		return
	}

	if in.IPAddress == "" {
		in.IPAddress = extractIPAddress(r)
	}
	if in.UserAgent == "" {
		in.UserAgent = r.UserAgent()
	}

	click, err := h.analytics.RecordClick(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.log, err, "failed to record click", zap.String("slug", in.Slug))
		return
	}

	writeJSON(w, click, http.StatusCreated)
}

// ListClicks отчет по кликам для администраторов
//
//	@Summary		Click analytics
//	@Description	Paged click log with per-merchant, per-type and 30 day rollups
//	@Tags			Analytics
//	@Produce		json
//	@Security		BearerAuth
//	@Param			merchant	query		string	false	"Merchant filter"
//	@Param			type		query		string	false	"deal | coupon"
//	@Param			startDate	query		string	false	"RFC3339 or YYYY-MM-DD, inclusive"
//	@Param			endDate		query		string	false	"RFC3339 (exclusive) or YYYY-MM-DD (whole day included)"
//	@Param			limit		query		int		false	"Page size (default 50, max 500)"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{object}	service.ClickSummary
//	@Failure		400			{object}	ErrorResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Router			/api/analytics/clicks [get]
func (h *AnalyticsHandler) ListClicks(w http.ResponseWriter, r *http.Request) {
	filter, err := service.ParseClickFilter(r.URL.Query())
	if err != nil {
		writeServiceError(w, h.log, err, "failed to parse click filter")
		return
	}

	summary, err := h.analytics.Summary(r.Context(), filter)
	if err != nil {
		writeServiceError(w, h.log, err, "failed to build click summary")
		return
	}

	writeJSON(w, summary, http.StatusOK)
}
