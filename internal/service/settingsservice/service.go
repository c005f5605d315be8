package settingsservice

import (
	"context"
	"net/mail"
	"strings"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
)

// SettingsRepository guarda o registro único de configurações.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, settings domain.Settings) (domain.Settings, error)
}

// Service expõe as configurações da loja.
type Service struct {
	repo   SettingsRepository
	logger logger.Logger
}

// NewService cria o serviço de configurações.
func NewService(repo SettingsRepository, logger logger.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetSettings devolve as configurações atuais.
func (s *Service) GetSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		s.logger.Error("Falha ao ler configurações.", err)
		return domain.Settings{}, apperror.Wrap("Falha interna ao ler configurações.", err)
	}
	return settings, nil
}

// UpdateSettings sobrescreve as configurações por inteiro.
func (s *Service) UpdateSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	settings.StoreName = strings.TrimSpace(settings.StoreName)
	settings.ContactEmail = strings.TrimSpace(settings.ContactEmail)
	if settings.StoreName == "" {
		return domain.Settings{}, apperror.NewValidationError("O nome da loja é obrigatório.")
	}
	if settings.ContactEmail != "" {
		if _, err := mail.ParseAddress(settings.ContactEmail); err != nil {
			return domain.Settings{}, apperror.NewValidationError("O email de contato é inválido.")
		}
	}
	if settings.ShippingCost.IsNegative() {
		return domain.Settings{}, apperror.NewValidationError("O custo de frete não pode ser negativo.")
	}
	settings.ShippingCost = settings.ShippingCost.Round(2)

	updated, err := s.repo.Update(ctx, settings)
	if err != nil {
		s.logger.Error("Falha ao gravar configurações.", err)
		return domain.Settings{}, apperror.Wrap("Falha interna ao gravar configurações.", err)
	}
	s.logger.Info("Configurações atualizadas.", map[string]interface{}{"store_name": updated.StoreName, "shipping": updated.ShippingCost.StringFixed(2)})
	return updated, nil
}
