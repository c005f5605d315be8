package settingsrepo

import (
	"context"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/repository/seed"
)

// SettingsRepository guarda o registro único de configurações.
type SettingsRepository struct {
	settings *kvstore.Document[domain.Settings]
	logger   logger.Logger
}

// NewSettingsRepository cria o repositório de configurações.
func NewSettingsRepository(store kvstore.Store, keyPrefix string, latency kvstore.Latency, logger logger.Logger) *SettingsRepository {
	return &SettingsRepository{
		settings: kvstore.NewDocument(store, kvstore.Key(keyPrefix, kvstore.KeySettings), seed.Settings, latency),
		logger:   logger,
	}
}

// Get devolve as configurações atuais (semeadas na primeira leitura).
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	return r.settings.Load(ctx)
}

// Update sobrescreve as configurações por inteiro; não há histórico.
func (r *SettingsRepository) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	if err := r.settings.Save(ctx, settings); err != nil {
		r.logger.Error("Falha ao gravar configurações.", err)
		return domain.Settings{}, err
	}
	return settings, nil
}
