package service

import (
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"Dealbies-Backend/pkg/useragent"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ClickTracker синхронно записывает клик, дополняя его данными User-Agent
type ClickTracker struct {
	storage repository.Storage
	parser  *useragent.Parser
	log     *zap.Logger
}

// NewClickTracker создает трекер. parser может быть nil, тогда тип устройства
// определяется по ключевым словам.
func NewClickTracker(storage repository.Storage, parser *useragent.Parser, log *zap.Logger) *ClickTracker {
	return &ClickTracker{
		storage: storage,
		parser:  parser,
		log:     log,
	}
}

func (t *ClickTracker) Record(ctx context.Context, click *domain.ClickTracking) error {
	t.enrich(click)

	if err := t.storage.SaveClick(ctx, click); err != nil {
		return fmt.Errorf("failed to save click: %w", err)
	}

	t.log.Debug("click recorded",
		zap.String("slug", click.Slug),
		zap.String("type", string(click.Type)),
		zap.String("device_type", click.GetDeviceType()))
	return nil
}

func (t *ClickTracker) enrich(click *domain.ClickTracking) {
	if click.UserAgent == nil || *click.UserAgent == "" || click.DeviceType != nil {
		return
	}

	if t.parser == nil {
		click.DeviceType = clipped(useragent.GuessDeviceType(*click.UserAgent), domain.MaxDeviceTypeLen)
		return
	}

	info := t.parser.ParseUserAgent(*click.UserAgent)
	click.DeviceType = clipped(info.DeviceType, domain.MaxDeviceTypeLen)
	if info.Browser != useragent.DeviceUnknown {
		click.Browser = clipped(info.Browser, domain.MaxBrowserLen)
	}
	if info.OS != useragent.DeviceUnknown {
		click.OS = clipped(info.OS, domain.MaxOSLen)
	}
}
