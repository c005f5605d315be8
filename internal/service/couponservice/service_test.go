package couponservice_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ctrlshirt/internal/domain"
	apperror "ctrlshirt/internal/errors"
	"ctrlshirt/internal/pkg/kvstore"
	"ctrlshirt/internal/pkg/logger"
	"ctrlshirt/internal/repository/couponrepo"
	"ctrlshirt/internal/service/couponservice"
)

// MockCouponRepository é uma implementação mock da interface CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) List(ctx context.Context) ([]domain.Coupon, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id string) (domain.Coupon, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Coupon), args.Bool(1), args.Error(2)
}

func (m *MockCouponRepository) FindActiveByCode(ctx context.Context, code string) (domain.Coupon, bool, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Coupon), args.Bool(1), args.Error(2)
}

func (m *MockCouponRepository) Save(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	args := m.Called(ctx, coupon)
	if fn, ok := args.Get(0).(func(context.Context, domain.Coupon) domain.Coupon); ok {
		return fn(ctx, coupon), args.Error(1)
	}
	return args.Get(0).(domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Update(ctx context.Context, coupon domain.Coupon) (domain.Coupon, error) {
	args := m.Called(ctx, coupon)
	if fn, ok := args.Get(0).(func(context.Context, domain.Coupon) domain.Coupon); ok {
		return fn(ctx, coupon), args.Error(1)
	}
	return args.Get(0).(domain.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func echo(_ context.Context, c domain.Coupon) domain.Coupon { return c }

// TestValidateCoupon_ActiveCode devolve o cupom ativo.
func TestValidateCoupon_ActiveCode(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	svc := couponservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("FindActiveByCode", mock.Anything, "geek10").Return(domain.Coupon{ID: "1", Code: "GEEK10", DiscountPercentage: 10, IsActive: true}, true, nil)

	coupon, err := svc.ValidateCoupon(context.Background(), " geek10 ")

	require.NoError(t, err)
	require.NotNil(t, coupon)
	assert.Equal(t, 10, coupon.DiscountPercentage)
}

// TestValidateCoupon_MissOrInactive devolve ausência sem erro.
func TestValidateCoupon_MissOrInactive(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	svc := couponservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("FindActiveByCode", mock.Anything, "EXPIRED").Return(domain.Coupon{}, false, nil)

	coupon, err := svc.ValidateCoupon(context.Background(), "EXPIRED")
	assert.NoError(t, err)
	assert.Nil(t, coupon)

	coupon, err = svc.ValidateCoupon(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Nil(t, coupon)
}

// TestValidateCoupon_StorageFault propaga a falha de armazenamento.
func TestValidateCoupon_StorageFault(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	svc := couponservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("FindActiveByCode", mock.Anything, "GEEK10").
		Return(domain.Coupon{}, false, apperror.NewStorageError("ctrlshirt_coupons", "coleção armazenada está malformada", errors.New("bad json")))

	_, err := svc.ValidateCoupon(context.Background(), "GEEK10")

	assert.IsType(t, &apperror.StorageError{}, err)
}

// TestCreateCoupon_NormalizesCode guarda o código em maiúsculas.
func TestCreateCoupon_NormalizesCode(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	svc := couponservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(c domain.Coupon) bool { return c.Code == "NERD15" })).Return(echo, nil)

	created, err := svc.CreateCoupon(context.Background(), domain.CouponCreateRequest{Code: " nerd15 ", DiscountPercentage: 15, IsActive: true})

	require.NoError(t, err)
	assert.Equal(t, "NERD15", created.Code)
	assert.NotEmpty(t, created.ID)
}

// TestCreateCoupon_Fail_DuplicateCode propaga o Conflict do repositório.
func TestCreateCoupon_Fail_DuplicateCode(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	svc := couponservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Coupon")).
		Return(domain.Coupon{}, apperror.NewConflictError("O código 'GEEK10' já está em uso."))

	_, err := svc.CreateCoupon(context.Background(), domain.CouponCreateRequest{Code: "geek10", DiscountPercentage: 5})

	assert.IsType(t, &apperror.ConflictError{}, err)
}

// TestCreateCoupon_ConcurrentSameCode cria o mesmo código em paralelo sobre o
// repositório real; só uma criação vence.
func TestCreateCoupon_ConcurrentSameCode(t *testing.T) {
	repo := couponrepo.NewCouponRepository(kvstore.NewMemoryStore(), "ctrlshirt_", kvstore.Latency(5*time.Millisecond), logger.NewLoggerWithWriter("error", &bytes.Buffer{}))
	svc := couponservice.NewService(repo, logger.NewLoggerWithWriter("error", &bytes.Buffer{}))
	ctx := context.Background()

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateCoupon(ctx, domain.CouponCreateRequest{Code: "nerd15", DiscountPercentage: 15, IsActive: true})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.IsType(t, &apperror.ConflictError{}, err)
	}
	assert.Equal(t, 1, ok)
}

// TestCreateCoupon_ZeroDiscountIsAllowed aceita cupom de 0%.
func TestCreateCoupon_ZeroDiscountIsAllowed(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	svc := couponservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Coupon")).Return(echo, nil)

	created, err := svc.CreateCoupon(context.Background(), domain.CouponCreateRequest{Code: "BRINDE", DiscountPercentage: 0})

	require.NoError(t, err)
	assert.Equal(t, 0, created.DiscountPercentage)
}

// TestCreateCoupon_Fail_Validation cobre percentual e código inválidos.
func TestCreateCoupon_Fail_Validation(t *testing.T) {
	svc := couponservice.NewService(new(MockCouponRepository), logger.NewLogger("debug"))
	ctx := context.Background()

	for _, req := range []domain.CouponCreateRequest{
		{Code: "", DiscountPercentage: 10},
		{Code: "A B", DiscountPercentage: 10},
		{Code: "NEGATIVO", DiscountPercentage: -1},
		{Code: "MUITO", DiscountPercentage: 101},
	} {
		_, err := svc.CreateCoupon(ctx, req)
		assert.IsType(t, &apperror.ValidationError{}, err, req.Code)
	}
}

// TestUpdateCoupon_SameCodeAllowed permite manter o próprio código.
func TestUpdateCoupon_SameCodeAllowed(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	svc := couponservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Coupon")).Return(echo, nil)

	updated, err := svc.UpdateCoupon(context.Background(), domain.Coupon{ID: "1", Code: "GEEK10", DiscountPercentage: 12, IsActive: false})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestDeleteCoupon(t *testing.T) {
	mockRepo := new(MockCouponRepository)
	svc := couponservice.NewService(mockRepo, logger.NewLogger("debug"))
	mockRepo.On("Delete", mock.Anything, "3").Return(nil)

	assert.NoError(t, svc.DeleteCoupon(context.Background(), "3"))
}
