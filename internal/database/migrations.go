package database

import (
	"Dealbies-Backend/internal/domain"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AutoMigrate выполняет автоматические миграции для всех доменных моделей
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database auto-migration")

	// Порядок миграций важен из-за внешних ключей
	models := []interface{}{
		&domain.User{},                 // Сначала пользователи
		&domain.Deal{},                 // Скидки (зависят от пользователей)
		&domain.Coupon{},               // Купоны (зависят от пользователей)
		&domain.CouponImage{},          // Изображения (зависят от купонов)
		&domain.Comment{},              // Комментарии
		&domain.Vote{},                 // Голоса
		&domain.OfferSlug{},            // Реестр slug
		&domain.ClickTracking{},        // Журнал переходов
		&domain.SiteSettings{},         // Настройки сайта
		&domain.SchemaMarkupSettings{}, // Настройки разметки
	}

	log.Info("migrating database models", zap.Int("total_models", len(models)))

	for i, model := range models {
		modelName := fmt.Sprintf("%T", model)
		log.Debug("migrating model",
			zap.String("model", modelName),
			zap.Int("step", i+1),
			zap.Int("total", len(models)))

		if err := db.AutoMigrate(model); err != nil {
			log.Error("failed to migrate model",
				zap.String("model", modelName),
				zap.Error(err))
			return fmt.Errorf("failed to migrate model %s: %w", modelName, err)
		}
	}

	log.Info("database auto-migration completed successfully", zap.Int("migrated_models", len(models)))
	return nil
}

// SeedData заполняет базу данных начальными настройками сайта
func SeedData(db *gorm.DB, log *zap.Logger) error {
	log.Info("starting database seeding")

	// Проверяем, есть ли уже данные
	var count int64
	if err := db.Model(&domain.SiteSettings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count site settings: %w", err)
	}
	if count > 0 {
		log.Info("site settings already exist, skipping seeding", zap.Int64("existing_count", count))
		return nil
	}

	settings := domain.SiteSettings{
		SiteName:     "Dealbies",
		SiteURL:      "https://dealbies.com",
		Tagline:      "Community-voted deals and coupons",
		ContactEmail: toString("hello@dealbies.com"),
		DealsPerPage: 20,
	}

	schema := domain.SchemaMarkupSettings{
		OrganizationName: "Dealbies",
		EnableOffers:     true,
		EnableBreadcrumb: true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}
		return tx.Create(&schema).Error
	})
	if err != nil {
		log.Error("failed to seed settings", zap.Error(err))
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	log.Info("database seeding completed successfully")
	return nil
}

// toString возвращает указатель на string - хелпер для создания nullable полей
func toString(val string) *string {
	return &val
}
