// Package scoring derives vote scores for deals and coupons and orders
// listings by the supported sort modes.
package scoring

import (
	"fmt"
	"sort"
	"time"

	"Dealbies-Backend/internal/domain"
)

// SortMode selects the listing order.
type SortMode string

const (
	SortNewest   SortMode = "newest"
	SortHottest  SortMode = "hottest"
	SortComments SortMode = "comments"
)

// ParseSortMode maps a query value to a SortMode. An empty value means newest.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "", SortNewest:
		return SortNewest, nil
	case SortHottest:
		return SortHottest, nil
	case SortComments:
		return SortComments, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Score returns the number of up votes minus the number of down votes.
func Score(votes []domain.Vote) int {
	score := 0
	for _, v := range votes {
		switch v.Direction {
		case domain.VoteUp:
			score++
		case domain.VoteDown:
			score--
		}
	}
	return score
}

// ViewerVote returns the direction of the first vote owned by userID,
// or nil for anonymous viewers and viewers who have not voted.
func ViewerVote(votes []domain.Vote, userID string) *domain.VoteDirection {
	if userID == "" {
		return nil
	}
	for _, v := range votes {
		if v.UserID == userID {
			dir := v.Direction
			return &dir
		}
	}
	return nil
}

// Ranked is implemented by listing items that can be ordered.
type Ranked interface {
	RankScore() int
	RankComments() int64
	RankCreatedAt() time.Time
}

// Sort orders items in place. Every mode falls back to newest first;
// items that compare equal keep their input order.
func Sort[T Ranked](items []T, mode SortMode) {
	newer := func(a, b T) bool {
		return a.RankCreatedAt().After(b.RankCreatedAt())
	}

	var less func(a, b T) bool
	switch mode {
	case SortHottest:
		less = func(a, b T) bool {
			if a.RankScore() != b.RankScore() {
				return a.RankScore() > b.RankScore()
			}
			return newer(a, b)
		}
	case SortComments:
		less = func(a, b T) bool {
			if a.RankComments() != b.RankComments() {
				return a.RankComments() > b.RankComments()
			}
			return newer(a, b)
		}
	default:
		less = newer
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
