package settingsrepo_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctrlshirt/internal/domain"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/repository/settingsrepo"
)

func TestSettingsRepository_GetThenOverwrite(t *testing.T) {
	repo := settingsrepo.NewSettingsRepository(kvstore.NewMemoryStore(), "ctrlshirt_", 0, logger.NewLoggerWithWriter("error", &bytes.Buffer{}))
	ctx := context.Background()

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CtrlShirt", s.StoreName)
	assert.True(t, decimal.RequireFromString("15").Equal(s.ShippingCost))

	_, err = repo.Update(ctx, domain.Settings{StoreName: "Loja Nova", ShippingCost: decimal.RequireFromString("9.90")})
	require.NoError(t, err)

	s, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Loja Nova", s.StoreName)
	assert.Empty(t, s.ContactEmail)
}
