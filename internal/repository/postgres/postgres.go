package postgres

import (
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStorage реализует интерфейс Storage поверх GORM
type PostgresStorage struct {
	db  *gorm.DB
	log *zap.Logger
}

// New создает новый экземпляр PostgreSQL storage
func New(db *gorm.DB, log *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:  db,
		log: log,
	}
}

// --- User Methods ---

// FindOrCreateUser находит пользователя по ID или создает его из данных токена
func (s *PostgresStorage) FindOrCreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	var existing domain.User

	err := s.db.WithContext(ctx).Where("id = ?", user.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error("failed to find user", zap.String("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	err = s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) && user.Username != nil {
		// username занят другим аккаунтом, создаем без него
		s.log.Warn("username taken, creating user without it",
			zap.String("user_id", user.ID), zap.String("username", *user.Username))
		user.Username = nil
		err = s.db.WithContext(ctx).Create(user).Error
	}
	if err != nil {
		s.log.Error("failed to create user", zap.String("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("created new user", zap.String("user_id", user.ID))
	return user, nil
}

// GetUserByID получает пользователя по ID
func (s *PostgresStorage) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		s.log.Error("failed to get user", zap.String("user_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// --- Offer Methods ---

// CreateDeal сохраняет скидку и резервирует ее slug в одной транзакции
func (s *PostgresStorage) CreateDeal(ctx context.Context, deal *domain.Deal) error {
	exists, err := s.SlugExists(ctx, deal.Slug)
	if err != nil {
		return err
	}
	if exists {
		return repository.ErrSlugExists
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(deal).Error; err != nil {
			return err
		}
		return tx.Create(&domain.OfferSlug{Slug: deal.Slug, Kind: domain.KindDeal, OfferID: deal.ID}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrSlugExists
	}
	if err != nil {
		s.log.Error("failed to save deal", zap.String("slug", deal.Slug), zap.Error(err))
		return fmt.Errorf("failed to save deal: %w", err)
	}

	s.log.Info("saved new deal", zap.String("slug", deal.Slug), zap.String("user_id", deal.UserID))
	return nil
}

// CreateCoupon сохраняет купон, его изображения и резервирует slug
func (s *PostgresStorage) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	exists, err := s.SlugExists(ctx, coupon.Slug)
	if err != nil {
		return err
	}
	if exists {
		return repository.ErrSlugExists
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Votes", "Comments").Create(coupon).Error; err != nil {
			return err
		}
		return tx.Create(&domain.OfferSlug{Slug: coupon.Slug, Kind: domain.KindCoupon, OfferID: coupon.ID}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return repository.ErrSlugExists
	}
	if err != nil {
		s.log.Error("failed to save coupon", zap.String("slug", coupon.Slug), zap.Error(err))
		return fmt.Errorf("failed to save coupon: %w", err)
	}

	s.log.Info("saved new coupon", zap.String("slug", coupon.Slug), zap.String("user_id", coupon.UserID))
	return nil
}

// GetDealBySlug получает скидку по slug
func (s *PostgresStorage) GetDealBySlug(ctx context.Context, slug string) (*domain.Deal, error) {
	var deal domain.Deal

	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&deal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get deal", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	return &deal, nil
}

// GetCouponBySlug получает купон по slug
func (s *PostgresStorage) GetCouponBySlug(ctx context.Context, slug string) (*domain.Coupon, error) {
	var coupon domain.Coupon

	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get coupon", zap.String("slug", slug), zap.Error(err))
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

// GetDealByID получает скидку по идентификатору
func (s *PostgresStorage) GetDealByID(ctx context.Context, id string) (*domain.Deal, error) {
	var deal domain.Deal

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&deal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get deal by id", zap.String("deal_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	return &deal, nil
}

// GetCouponByID получает купон по идентификатору
func (s *PostgresStorage) GetCouponByID(ctx context.Context, id string) (*domain.Coupon, error) {
	var coupon domain.Coupon

	err := s.db.WithContext(ctx).Where("id = ?", id).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get coupon by id", zap.String("coupon_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return &coupon, nil
}

// SlugExists проверяет, занят ли slug скидкой или купоном
func (s *PostgresStorage) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.OfferSlug{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		s.log.Error("failed to check slug existence", zap.String("slug", slug), zap.Error(err))
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return count > 0, nil
}

// ListDeals возвращает скидки вместе с авторами, голосами и числом комментариев
func (s *PostgresStorage) ListDeals(ctx context.Context, filter repository.OfferFilter) ([]*domain.Deal, error) {
	var deals []*domain.Deal

	q := s.db.WithContext(ctx).Preload("User").Preload("Votes")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if err := q.Order("created_at DESC").Find(&deals).Error; err != nil {
		s.log.Error("failed to list deals", zap.String("category", filter.Category), zap.Error(err))
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}

	ids := make([]string, len(deals))
	for i, d := range deals {
		ids[i] = d.ID
	}
	counts, err := s.commentCounts(ctx, domain.TargetDeal, ids)
	if err != nil {
		return nil, err
	}
	for _, d := range deals {
		d.CommentCount = counts[d.ID]
	}

	return deals, nil
}

// ListCoupons возвращает купоны вместе с авторами, голосами, изображениями и числом комментариев
func (s *PostgresStorage) ListCoupons(ctx context.Context, filter repository.OfferFilter) ([]*domain.Coupon, error) {
	var coupons []*domain.Coupon

	q := s.db.WithContext(ctx).Preload("User").Preload("Votes").Preload("Images")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if err := q.Order("created_at DESC").Find(&coupons).Error; err != nil {
		s.log.Error("failed to list coupons", zap.String("category", filter.Category), zap.Error(err))
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	ids := make([]string, len(coupons))
	for i, c := range coupons {
		ids[i] = c.ID
	}
	counts, err := s.commentCounts(ctx, domain.TargetCoupon, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range coupons {
		c.CommentCount = counts[c.ID]
	}

	return coupons, nil
}

// --- Vote Methods ---

// GetVote получает голос пользователя за цель
func (s *PostgresStorage) GetVote(ctx context.Context, userID, targetType, targetID string) (*domain.Vote, error) {
	var vote domain.Vote

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get vote", zap.String("user_id", userID), zap.String("target_id", targetID), zap.Error(err))
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	return &vote, nil
}

// UpsertVote создает голос или меняет направление существующего
func (s *PostgresStorage) UpsertVote(ctx context.Context, vote *domain.Vote) error {
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"direction", "updated_at"}),
		}).
		Create(vote).Error
	if err != nil {
		s.log.Error("failed to upsert vote", zap.String("user_id", vote.UserID), zap.String("target_id", vote.TargetID), zap.Error(err))
		return fmt.Errorf("failed to save vote: %w", err)
	}

	return nil
}

// DeleteVote удаляет голос пользователя
func (s *PostgresStorage) DeleteVote(ctx context.Context, userID, targetType, targetID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&domain.Vote{})
	if result.Error != nil {
		s.log.Error("failed to delete vote", zap.String("user_id", userID), zap.String("target_id", targetID), zap.Error(result.Error))
		return fmt.Errorf("failed to delete vote: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListVotes возвращает все голоса за цель
func (s *PostgresStorage) ListVotes(ctx context.Context, targetType, targetID string) ([]domain.Vote, error) {
	var votes []domain.Vote

	err := s.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Order("id ASC").
		Find(&votes).Error
	if err != nil {
		s.log.Error("failed to list votes", zap.String("target_id", targetID), zap.Error(err))
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	return votes, nil
}

// --- Click Tracking Methods ---

// SaveClick добавляет строку в журнал переходов
func (s *PostgresStorage) SaveClick(ctx context.Context, click *domain.ClickTracking) error {
	if err := s.db.WithContext(ctx).Create(click).Error; err != nil {
		s.log.Error("failed to save click", zap.String("slug", click.Slug), zap.Error(err))
		return fmt.Errorf("failed to save click: %w", err)
	}

	return nil
}

// ListClicks возвращает страницу журнала и общее число строк под фильтром
func (s *PostgresStorage) ListClicks(ctx context.Context, filter repository.ClickFilter) ([]*domain.ClickTracking, int64, error) {
	var total int64
	if err := s.clickQuery(ctx, filter).Count(&total).Error; err != nil {
		s.log.Error("failed to count clicks", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	var clicks []*domain.ClickTracking
	q := s.clickQuery(ctx, filter).Order("created_at DESC").Order("id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&clicks).Error; err != nil {
		s.log.Error("failed to list clicks", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list clicks: %w", err)
	}

	return clicks, total, nil
}

// groupableClickColumns колонки, по которым разрешена группировка
var groupableClickColumns = map[string]bool{
	"merchant":    true,
	"type":        true,
	"device_type": true,
}

// CountClicksBy группирует клики по колонке
func (s *PostgresStorage) CountClicksBy(ctx context.Context, filter repository.ClickFilter, column string) ([]repository.GroupCount, error) {
	if !groupableClickColumns[column] {
		return nil, fmt.Errorf("cannot group clicks by %q", column)
	}

	var rows []struct {
		GroupKey *string `gorm:"column:group_key"`
		Cnt      int64   `gorm:"column:cnt"`
	}

	err := s.clickQuery(ctx, filter).
		Select(column + " AS group_key, count(*) AS cnt").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		s.log.Error("failed to group clicks", zap.String("column", column), zap.Error(err))
		return nil, fmt.Errorf("failed to group clicks by %s: %w", column, err)
	}

	result := make([]repository.GroupCount, 0, len(rows))
	for _, r := range rows {
		key := "unknown"
		if r.GroupKey != nil && *r.GroupKey != "" {
			key = *r.GroupKey
		}
		result = append(result, repository.GroupCount{Key: key, Count: r.Cnt})
	}

	// NULL сортируется по-разному в разных СУБД, поэтому порядок задаем здесь
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Key < result[j].Key
	})

	return result, nil
}

// ClickTimes возвращает время всех кликов начиная с since
func (s *PostgresStorage) ClickTimes(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time

	err := s.db.WithContext(ctx).
		Model(&domain.ClickTracking{}).
		Where("created_at >= ?", since.UTC()).
		Order("created_at ASC").
		Pluck("created_at", &times).Error
	if err != nil {
		s.log.Error("failed to load click times", zap.Time("since", since), zap.Error(err))
		return nil, fmt.Errorf("failed to load click times: %w", err)
	}

	return times, nil
}

// --- Settings ---

// GetSiteSettings возвращает строку настроек сайта
func (s *PostgresStorage) GetSiteSettings(ctx context.Context) (*domain.SiteSettings, error) {
	var settings domain.SiteSettings

	err := s.db.WithContext(ctx).Order("id ASC").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		s.log.Error("failed to get site settings", zap.Error(err))
		return nil, fmt.Errorf("failed to get site settings: %w", err)
	}

	return &settings, nil
}

// Ping проверяет доступность базы данных
func (s *PostgresStorage) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// --- Helper Methods ---

// clickQuery применяет фильтр журнала кликов
func (s *PostgresStorage) clickQuery(ctx context.Context, filter repository.ClickFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&domain.ClickTracking{})
	if filter.Merchant != "" {
		q = q.Where("merchant = ?", filter.Merchant)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Start != nil {
		q = q.Where("created_at >= ?", filter.Start.UTC())
	}
	if filter.End != nil {
		q = q.Where("created_at < ?", filter.End.UTC())
	}
	return q
}

// commentCounts считает комментарии для набора целей одним запросом
func (s *PostgresStorage) commentCounts(ctx context.Context, targetType string, ids []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var rows []struct {
		TargetID string `gorm:"column:target_id"`
		Cnt      int64  `gorm:"column:cnt"`
	}

	err := s.db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select("target_id, count(*) AS cnt").
		Where("target_type = ? AND target_id IN ?", targetType, ids).
		Group("target_id").
		Scan(&rows).Error
	if err != nil {
		s.log.Error("failed to count comments", zap.String("target_type", targetType), zap.Error(err))
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	for _, r := range rows {
		counts[r.TargetID] = r.Cnt
	}

	return counts, nil
}
