package settingsservice_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/service/settingsservice"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Update(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	args := m.Called(ctx, settings)
	return settings, args.Error(0)
}

func TestUpdateSettings_Success(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	svc := settingsservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Settings")).Return(nil)

	updated, err := svc.UpdateSettings(context.Background(), domain.Settings{
		StoreName:    " CtrlShirt ",
		ContactEmail: "contato@ctrlshirt.com",
		ShippingCost: decimal.RequireFromString("19.999"),
	})

	require.NoError(t, err)
	assert.Equal(t, "CtrlShirt", updated.StoreName)
	assert.Equal(t, "20.00", updated.ShippingCost.StringFixed(2))
}

func TestUpdateSettings_Fail_Validation(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	svc := settingsservice.NewService(mockRepo, logger.NewLogger("debug"))
	ctx := context.Background()

	_, err := svc.UpdateSettings(ctx, domain.Settings{StoreName: "", ShippingCost: decimal.Zero})
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.UpdateSettings(ctx, domain.Settings{StoreName: "X", ShippingCost: decimal.NewFromInt(-1)})
	assert.IsType(t, &apperror.ValidationError{}, err)

	_, err = svc.UpdateSettings(ctx, domain.Settings{StoreName: "X", ContactEmail: "sem-arroba"})
	assert.IsType(t, &apperror.ValidationError{}, err)

	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetSettings(t *testing.T) {
	mockRepo := new(MockSettingsRepository)
	svc := settingsservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("Get", mock.Anything).Return(domain.Settings{StoreName: "CtrlShirt", ShippingCost: decimal.RequireFromString("15.00")}, nil)

	settings, err := svc.GetSettings(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "15.00", settings.ShippingCost.StringFixed(2))
}
