package service

import (
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"Dealbies-Backend/internal/scoring"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// VoteInput контракт запроса голосования
type VoteInput struct {
	Direction domain.VoteDirection `json:"direction" validate:"required,oneof=UP DOWN"`
}

// VoteResult состояние цели после голосования
type VoteResult struct {
	Score    int                   `json:"score"`
	UserVote *domain.VoteDirection `json:"userVote"`
}

// VoteService применяет голоса к скидкам и купонам
type VoteService struct {
	storage repository.Storage
	log     *zap.Logger
}

func NewVoteService(storage repository.Storage, log *zap.Logger) *VoteService {
	return &VoteService{
		storage: storage,
		log:     log,
	}
}

// Vote переключает голос: нет голоса - создаем, то же направление - снимаем,
// противоположное - меняем.
func (s *VoteService) Vote(ctx context.Context, voter *domain.User, targetType, targetID string, dir domain.VoteDirection) (*VoteResult, error) {
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: direction must be UP or DOWN", ErrInvalidRequest)
	}
	if err := s.ensureTarget(ctx, targetType, targetID); err != nil {
		return nil, err
	}

	user, err := s.storage.FindOrCreateUser(ctx, voter)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve voter: %w", err)
	}

	existing, err := s.storage.GetVote(ctx, user.ID, targetType, targetID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		err = s.storage.UpsertVote(ctx, &domain.Vote{UserID: user.ID, TargetType: targetType, TargetID: targetID, Direction: dir})
	case err != nil:
		return nil, fmt.Errorf("failed to get vote: %w", err)
	case existing.Direction == dir:
		err = s.storage.DeleteVote(ctx, user.ID, targetType, targetID)
		if errors.Is(err, repository.ErrNotFound) {
			// параллельный запрос уже снял голос
			err = nil
		}
	default:
		existing.Direction = dir
		err = s.storage.UpsertVote(ctx, existing)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to apply vote: %w", err)
	}

	votes, err := s.storage.ListVotes(ctx, targetType, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	result := &VoteResult{
		Score:    scoring.Score(votes),
		UserVote: scoring.ViewerVote(votes, user.ID),
	}

	s.log.Debug("vote applied",
		zap.String("user_id", user.ID),
		zap.String("target_type", targetType),
		zap.String("target_id", targetID),
		zap.Int("score", result.Score))

	return result, nil
}

func (s *VoteService) ensureTarget(ctx context.Context, targetType, targetID string) error {
	var err error
	switch targetType {
	case domain.TargetDeal:
		_, err = s.storage.GetDealByID(ctx, targetID)
	case domain.TargetCoupon:
		_, err = s.storage.GetCouponByID(ctx, targetID)
	default:
		return fmt.Errorf("%w: cannot vote on %q", ErrInvalidRequest, targetType)
	}

	if errors.Is(err, repository.ErrNotFound) {
		return ErrOfferNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", targetType, err)
	}
	return nil
}
