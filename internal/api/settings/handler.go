package settings

import (
	"context"
	"net/http"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/httpx"
	"ctrlshirt/internal/pkg/logger"
)

type SettingsService interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error)
}

type Handler struct {
	Service SettingsService
	Logger  logger.Logger
}

func NewHandler(svc SettingsService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// GetSettingsHandler lida com a requisição GET /v1/settings.
// A vitrine precisa do nome da loja e do frete, por isso a leitura é pública.
// @Summary Configurações da loja
// @Tags settings
// @Produce json
// @Success 200 {object} domain.Settings
// @Router /v1/settings [get]
func (h *Handler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	httpx.Respond(w, r, h.Logger, settings, err, http.StatusOK)
}

// UpdateSettingsHandler lida com a requisição PUT /v1/admin/settings.
// @Summary Atualiza as configurações da loja
// @Description Apenas administradores.
// @Tags admin-settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param settings body domain.Settings true "Configurações completas"
// @Success 200 {object} domain.Settings
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /v1/admin/settings [put]
func (h *Handler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := httpx.Decode(r, &settings); err != nil {
		httpx.Error(w, r, h.Logger, err)
		return
	}
	updated, err := h.Service.UpdateSettings(r.Context(), settings)
	httpx.Respond(w, r, h.Logger, updated, err, http.StatusOK)
}
