package http

import (
	"Dealbies-Backend/internal/auth"
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/scoring"
	"Dealbies-Backend/internal/service"
	"Dealbies-Backend/internal/validator"
	"context"
	"net/http"

	"go.uber.org/zap"
)

// OfferService листинг и публикация скидок и купонов
type OfferService interface {
	ListDeals(ctx context.Context, category string, mode scoring.SortMode, viewerID string) ([]scoring.DealView, error)
	ListCoupons(ctx context.Context, category string, mode scoring.SortMode, viewerID string) ([]scoring.CouponView, error)
	CreateDeal(ctx context.Context, author *domain.User, in service.DealInput) (*scoring.DealView, error)
	CreateCoupon(ctx context.Context, author *domain.User, in service.CouponInput) (*scoring.CouponView, error)
}

// OffersHandler обработчик скидок и купонов
type OffersHandler struct {
	offers    OfferService
	validator *validator.Validator
	log       *zap.Logger
}

// NewOffersHandler создает новый обработчик скидок и купонов
func NewOffersHandler(offers OfferService, v *validator.Validator, log *zap.Logger) *OffersHandler {
	return &OffersHandler{
		offers:    offers,
		validator: v,
		log:       log,
	}
}

// ListDeals возвращает список скидок
//
//	@Summary		List deals
//	@Description	Lists deals, optionally filtered by category, ordered by the requested sort mode
//	@Tags			Deals
//	@Produce		json
//	@Param			category	query		string	false	"Category filter"
//	@Param			sort		query		string	false	"newest | hottest | comments"
//	@Success		200			{array}		scoring.DealView
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/api/deals [get]
func (h *OffersHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseSort(w, r)
	if !ok {
		return
	}

	deals, err := h.offers.ListDeals(r.Context(), r.URL.Query().Get("category"), mode, auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err, "failed to list deals")
		return
	}

	if deals == nil {
		deals = []scoring.DealView{}
	}
	writeJSON(w, deals, http.StatusOK)
}

// ListCoupons возвращает список купонов
//
//	@Summary		List coupons
//	@Description	Lists coupons, optionally filtered by category, ordered by the requested sort mode
//	@Tags			Coupons
//	@Produce		json
//	@Param			category	query		string	false	"Category filter"
//	@Param			sort		query		string	false	"newest | hottest | comments"
//	@Success		200			{array}		scoring.CouponView
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/api/coupons [get]
func (h *OffersHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseSort(w, r)
	if !ok {
		return
	}

	coupons, err := h.offers.ListCoupons(r.Context(), r.URL.Query().Get("category"), mode, auth.UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err, "failed to list coupons")
		return
	}

	if coupons == nil {
		coupons = []scoring.CouponView{}
	}
	writeJSON(w, coupons, http.StatusOK)
}

// CreateDeal публикует новую скидку
//
//	@Summary		Create deal
//	@Tags			Deals
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		service.DealInput	true	"Deal"
//	@Success		201		{object}	scoring.DealView
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/api/deals [post]
func (h *OffersHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var in service.DealInput
	if !decodeAndValidate(w, r, h.validator, &in) {
		return
	}

	deal, err := h.offers.CreateDeal(r.Context(), claims.User(), in)
	if err != nil {
		writeServiceError(w, h.log, err, "failed to create deal", zap.String("user_id", claims.UserID()))
		return
	}

	writeJSON(w, deal, http.StatusCreated)
}

// CreateCoupon публикует новый купон
//
//	@Summary		Create coupon
//	@Tags			Coupons
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		service.CouponInput	true	"Coupon"
//	@Success		201		{object}	scoring.CouponView
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/api/coupons [post]
func (h *OffersHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var in service.CouponInput
	if !decodeAndValidate(w, r, h.validator, &in) {
		return
	}

	coupon, err := h.offers.CreateCoupon(r.Context(), claims.User(), in)
	if err != nil {
		writeServiceError(w, h.log, err, "failed to create coupon", zap.String("user_id", claims.UserID()))
		return
	}

	writeJSON(w, coupon, http.StatusCreated)
}

func parseSort(w http.ResponseWriter, r *http.Request) (scoring.SortMode, bool) {
	mode, err := scoring.ParseSortMode(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return mode, true
}
