package http

import (
	"Dealbies-Backend/internal/domain"
	"Dealbies-Backend/internal/repository"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// SettingsReader источник настроек сайта
type SettingsReader interface {
	GetSiteSettings(ctx context.Context) (*domain.SiteSettings, error)
}

// SettingsHandler обработчик настроек сайта
type SettingsHandler struct {
	settings SettingsReader
	log      *zap.Logger
}

// NewSettingsHandler создает новый обработчик настроек
func NewSettingsHandler(settings SettingsReader, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		log:      log,
	}
}

// GetSettings возвращает публичные настройки сайта
//
//	@Summary	Site settings
//	@Tags		Settings
//	@Produce	json
//	@Success	200	{object}	domain.SiteSettings
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetSiteSettings(r.Context())
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, "settings not configured", http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to load site settings", zap.Error(err))
		writeError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, settings, http.StatusOK)
}
