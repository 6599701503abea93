package http

import (
	"Dealbies-Backend/internal/auth"
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/service"
	"Dealbies-Backend/internal/validator"
	"context"
	"net/http"

	"go.uber.org/zap"
)

// VoteService переключение голосов
type VoteService interface {
	Vote(ctx context.Context, voter *domain.User, targetType, targetID string, dir domain.VoteDirection) (*service.VoteResult, error)
}

// VotesHandler обработчик голосования
type VotesHandler struct {
	votes     VoteService
	validator *validator.Validator
	log       *zap.Logger
}

// NewVotesHandler создает новый обработчик голосования
func NewVotesHandler(votes VoteService, v *validator.Validator, log *zap.Logger) *VotesHandler {
	return &VotesHandler{
		votes:     votes,
		validator: v,
		log:       log,
	}
}

// VoteDeal голос за скидку
//
//	@Summary		Vote on a deal
//	@Description	Repeating the same direction removes the vote, the opposite direction flips it
//	@Tags			Votes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Deal ID"
//	@Param			request	body		service.VoteInput	true	"Direction"
//	@Success		200		{object}	service.VoteResult
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/deals/{id}/vote [post]
func (h *VotesHandler) VoteDeal(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, domain.TargetDeal)
}

// VoteCoupon голос за купон
//
//	@Summary		Vote on a coupon
//	@Tags			Votes
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Coupon ID"
//	@Param			request	body		service.VoteInput	true	"Direction"
//	@Success		200		{object}	service.VoteResult
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/coupons/{id}/vote [post]
func (h *VotesHandler) VoteCoupon(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, domain.TargetCoupon)
}

func (h *VotesHandler) vote(w http.ResponseWriter, r *http.Request, targetType string) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var in service.VoteInput
	if !decodeAndValidate(w, r, h.validator, &in) {
		return
	}

	targetID := r.PathValue("id")
	res, err := h.votes.Vote(r.Context(), claims.User(), targetType, targetID, in.Direction)
	if err != nil {
		writeServiceError(w, h.log, err, "failed to vote",
			zap.String("target_type", targetType),
			zap.String("target_id", targetID))
		return
	}

	writeJSON(w, res, http.StatusOK)
}
