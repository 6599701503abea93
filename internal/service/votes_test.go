package service

import (
	"context"
	"testing"

	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestVoteService_Toggle(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.CreateDeal(ctx, &domain.Deal{ID: "d1", Slug: "d1", UserID: "owner"}))
	svc := NewVoteService(store, zap.NewNop())

	alice := &domain.User{ID: "alice"}
	up, down := domain.VoteUp, domain.VoteDown

	steps := []struct {
		name      string
		dir       domain.VoteDirection
		wantScore int
		wantVote  *domain.VoteDirection
	}{
		{"first vote creates", domain.VoteUp, 1, &up},
		{"same direction removes", domain.VoteUp, 0, nil},
		{"vote again", domain.VoteDown, -1, &down},
		{"other direction flips", domain.VoteUp, 1, &up},
	}

	for _, step := range steps {
		res, err := svc.Vote(ctx, alice, domain.TargetDeal, "d1", step.dir)
		require.NoError(t, err, step.name)
		assert.Equal(t, step.wantScore, res.Score, step.name)
		assert.Equal(t, step.wantVote, res.UserVote, step.name)
	}

	votes, err := store.ListVotes(ctx, domain.TargetDeal, "d1")
	require.NoError(t, err)
	assert.Len(t, votes, 1)
}

func TestVoteService_ScoreCountsOtherVoters(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.CreateCoupon(ctx, &domain.Coupon{ID: "c1", Slug: "c1", UserID: "owner"}))
	svc := NewVoteService(store, zap.NewNop())

	for _, id := range []string{"a", "b", "c"} {
		_, err := svc.Vote(ctx, &domain.User{ID: id}, domain.TargetCoupon, "c1", domain.VoteUp)
		require.NoError(t, err)
	}

	res, err := svc.Vote(ctx, &domain.User{ID: "d"}, domain.TargetCoupon, "c1", domain.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	require.NotNil(t, res.UserVote)
	assert.Equal(t, domain.VoteDown, *res.UserVote)
}

func TestVoteService_Errors(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.CreateDeal(ctx, &domain.Deal{ID: "d1", Slug: "d1", UserID: "owner"}))
	svc := NewVoteService(store, zap.NewNop())
	user := &domain.User{ID: "u"}

	_, err := svc.Vote(ctx, user, domain.TargetDeal, "missing", domain.VoteUp)
	assert.ErrorIs(t, err, ErrOfferNotFound)

	_, err = svc.Vote(ctx, user, domain.TargetCoupon, "d1", domain.VoteUp)
	assert.ErrorIs(t, err, ErrOfferNotFound)

	_, err = svc.Vote(ctx, user, domain.TargetDeal, "d1", "SIDEWAYS")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Vote(ctx, user, "user", "d1", domain.VoteUp)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
