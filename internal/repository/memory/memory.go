package memory

import (
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStorage хранилище в памяти, используется в тестах и локальной разработке
type MemStorage struct {
	mu       sync.RWMutex
	users    map[string]*domain.User
	deals    map[string]*domain.Deal
	coupons  map[string]*domain.Coupon
	slugs    map[string]domain.OfferSlug
	votes    []*domain.Vote
	comments []*domain.Comment
	clicks   []*domain.ClickTracking
	settings *domain.SiteSettings

	voteCounter  int64
	clickCounter int64
}

func New() *MemStorage {
	return &MemStorage{
		users:   make(map[string]*domain.User),
		deals:   make(map[string]*domain.Deal),
		coupons: make(map[string]*domain.Coupon),
		slugs:   make(map[string]domain.OfferSlug),
	}
}

// --- User Methods ---

func (s *MemStorage) FindOrCreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[user.ID]; ok {
		return existing, nil
	}

	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *MemStorage) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

// --- Offer Methods ---

func (s *MemStorage) CreateDeal(_ context.Context, deal *domain.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Проверяем, свободен ли slug
	if _, exists := s.slugs[deal.Slug]; exists {
		return repository.ErrSlugExists
	}
	if deal.ID == "" {
		deal.ID = uuid.NewString()
	}
	if deal.CreatedAt.IsZero() {
		deal.CreatedAt = time.Now().UTC()
	}

	stored := *deal
	stored.User, stored.Votes, stored.Comments = nil, nil, nil
	s.deals[deal.ID] = &stored
	s.slugs[deal.Slug] = domain.OfferSlug{Slug: deal.Slug, Kind: domain.KindDeal, OfferID: deal.ID, CreatedAt: deal.CreatedAt}
	return nil
}

func (s *MemStorage) CreateCoupon(_ context.Context, coupon *domain.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.slugs[coupon.Slug]; exists {
		return repository.ErrSlugExists
	}
	if coupon.ID == "" {
		coupon.ID = uuid.NewString()
	}
	if coupon.CreatedAt.IsZero() {
		coupon.CreatedAt = time.Now().UTC()
	}
	for i := range coupon.Images {
		coupon.Images[i].CouponID = coupon.ID
	}

	stored := *coupon
	stored.User, stored.Votes, stored.Comments = nil, nil, nil
	stored.Images = append([]domain.CouponImage(nil), coupon.Images...)
	s.coupons[coupon.ID] = &stored
	s.slugs[coupon.Slug] = domain.OfferSlug{Slug: coupon.Slug, Kind: domain.KindCoupon, OfferID: coupon.ID, CreatedAt: coupon.CreatedAt}
	return nil
}

func (s *MemStorage) GetDealBySlug(_ context.Context, slug string) (*domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.slugs[slug]
	if !ok || ref.Kind != domain.KindDeal {
		return nil, repository.ErrNotFound
	}
	d := *s.deals[ref.OfferID]
	return &d, nil
}

func (s *MemStorage) GetCouponBySlug(_ context.Context, slug string) (*domain.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, ok := s.slugs[slug]
	if !ok || ref.Kind != domain.KindCoupon {
		return nil, repository.ErrNotFound
	}
	c := *s.coupons[ref.OfferID]
	return &c, nil
}

func (s *MemStorage) GetDealByID(_ context.Context, id string) (*domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *MemStorage) GetCouponByID(_ context.Context, id string) (*domain.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.coupons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemStorage) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.slugs[slug]
	return exists, nil
}

func (s *MemStorage) ListDeals(_ context.Context, filter repository.OfferFilter) ([]*domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deals := make([]*domain.Deal, 0, len(s.deals))
	for _, d := range s.deals {
		if filter.Category != "" && d.Category != filter.Category {
			continue
		}
		cp := *d
		cp.User = s.users[d.UserID]
		cp.Votes = s.votesFor(domain.TargetDeal, d.ID)
		cp.CommentCount = s.commentCount(domain.TargetDeal, d.ID)
		deals = append(deals, &cp)
	}

	sort.Slice(deals, func(i, j int) bool {
		return deals[i].CreatedAt.After(deals[j].CreatedAt)
	})
	return deals, nil
}

func (s *MemStorage) ListCoupons(_ context.Context, filter repository.OfferFilter) ([]*domain.Coupon, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coupons := make([]*domain.Coupon, 0, len(s.coupons))
	for _, c := range s.coupons {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		cp := *c
		cp.User = s.users[c.UserID]
		cp.Votes = s.votesFor(domain.TargetCoupon, c.ID)
		cp.CommentCount = s.commentCount(domain.TargetCoupon, c.ID)
		coupons = append(coupons, &cp)
	}

	sort.Slice(coupons, func(i, j int) bool {
		return coupons[i].CreatedAt.After(coupons[j].CreatedAt)
	})
	return coupons, nil
}

// AddComment добавляет комментарий, чтобы тесты могли проверить сортировку по обсуждаемости
func (s *MemStorage) AddComment(comment *domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	s.comments = append(s.comments, comment)
}

// --- Vote Methods ---

func (s *MemStorage) GetVote(_ context.Context, userID, targetType, targetID string) (*domain.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.findVote(userID, targetType, targetID); i >= 0 {
		v := *s.votes[i]
		return &v, nil
	}
	return nil, repository.ErrNotFound
}

func (s *MemStorage) UpsertVote(_ context.Context, vote *domain.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if i := s.findVote(vote.UserID, vote.TargetType, vote.TargetID); i >= 0 {
		s.votes[i].Direction = vote.Direction
		s.votes[i].UpdatedAt = now
		vote.ID = s.votes[i].ID
		return nil
	}

	s.voteCounter++
	stored := *vote
	stored.ID = s.voteCounter
	stored.CreatedAt, stored.UpdatedAt = now, now
	stored.User = nil
	s.votes = append(s.votes, &stored)
	vote.ID = stored.ID
	return nil
}

func (s *MemStorage) DeleteVote(_ context.Context, userID, targetType, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findVote(userID, targetType, targetID)
	if i < 0 {
		return repository.ErrNotFound
	}
	s.votes = append(s.votes[:i], s.votes[i+1:]...)
	return nil
}

func (s *MemStorage) ListVotes(_ context.Context, targetType, targetID string) ([]domain.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.votesFor(targetType, targetID), nil
}

// --- Click Tracking Methods ---

func (s *MemStorage) SaveClick(_ context.Context, click *domain.ClickTracking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clickCounter++
	click.ID = s.clickCounter
	if click.CreatedAt.IsZero() {
		click.CreatedAt = time.Now().UTC()
	}
	stored := *click
	s.clicks = append(s.clicks, &stored)
	return nil
}

func (s *MemStorage) ListClicks(_ context.Context, filter repository.ClickFilter) ([]*domain.ClickTracking, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.filterClicks(filter)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*domain.ClickTracking{}, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (s *MemStorage) CountClicksBy(_ context.Context, filter repository.ClickFilter, column string) ([]repository.GroupCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keyOf func(c *domain.ClickTracking) string
	switch column {
	case "merchant":
		keyOf = func(c *domain.ClickTracking) string { return c.Merchant }
	case "type":
		keyOf = func(c *domain.ClickTracking) string { return string(c.Type) }
	case "device_type":
		keyOf = func(c *domain.ClickTracking) string { return c.GetDeviceType() }
	default:
		return nil, fmt.Errorf("cannot group clicks by %q", column)
	}

	counts := make(map[string]int64)
	for _, c := range s.filterClicks(filter) {
		key := keyOf(c)
		if key == "" {
			key = "unknown"
		}
		counts[key]++
	}

	result := make([]repository.GroupCount, 0, len(counts))
	for k, n := range counts {
		result = append(result, repository.GroupCount{Key: k, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Key < result[j].Key
	})
	return result, nil
}

func (s *MemStorage) ClickTimes(_ context.Context, since time.Time) ([]time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var times []time.Time
	for _, c := range s.clicks {
		if !c.CreatedAt.Before(since) {
			times = append(times, c.CreatedAt)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times, nil
}

// --- Settings ---

func (s *MemStorage) GetSiteSettings(_ context.Context) (*domain.SiteSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return nil, repository.ErrNotFound
	}
	cp := *s.settings
	return &cp, nil
}

// SetSiteSettings заменяет строку настроек
func (s *MemStorage) SetSiteSettings(settings *domain.SiteSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

func (s *MemStorage) Ping(_ context.Context) error {
	return nil
}

// --- Helper Methods (вызываются под блокировкой) ---

func (s *MemStorage) findVote(userID, targetType, targetID string) int {
	for i, v := range s.votes {
		if v.UserID == userID && v.TargetType == targetType && v.TargetID == targetID {
			return i
		}
	}
	return -1
}

func (s *MemStorage) votesFor(targetType, targetID string) []domain.Vote {
	var votes []domain.Vote
	for _, v := range s.votes {
		if v.TargetType == targetType && v.TargetID == targetID {
			votes = append(votes, *v)
		}
	}
	return votes
}

func (s *MemStorage) commentCount(targetType, targetID string) int64 {
	var n int64
	for _, c := range s.comments {
		if c.TargetType == targetType && c.TargetID == targetID {
			n++
		}
	}
	return n
}

func (s *MemStorage) filterClicks(filter repository.ClickFilter) []*domain.ClickTracking {
	var out []*domain.ClickTracking
	for _, c := range s.clicks {
		if filter.Merchant != "" && c.Merchant != filter.Merchant {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.Start != nil && c.CreatedAt.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && !c.CreatedAt.Before(*filter.End) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out
}
