package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusProcessing))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusShipped))
	assert.True(t, StatusProcessing.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusShipped.CanTransitionTo(StatusDelivered))

	assert.False(t, StatusPending.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusShipped.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPending))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusProcessing))

	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, OrderStatus("Perdido").Valid())
}

func TestProduct_Available(t *testing.T) {
	p := Product{Sizes: []ProductSize{{Size: SizeP, Stock: 0}, {Size: SizeM, Stock: 0}}}
	assert.False(t, p.Available())

	p.Sizes[1].Stock = 3
	assert.True(t, p.Available())

	stock, ok := p.StockFor(SizeM)
	assert.True(t, ok)
	assert.Equal(t, 3, stock)

	_, ok = p.StockFor(SizeXG)
	assert.False(t, ok)
}

func TestCoupon_MatchesAndDiscount(t *testing.T) {
	c := Coupon{Code: "GEEK10", DiscountPercentage: 10, IsActive: true}

	assert.True(t, c.Matches("geek10"))
	assert.False(t, c.Matches("geek1"))
	assert.True(t, decimal.RequireFromString("15.98").Equal(c.DiscountOn(decimal.RequireFromString("159.80"))))
}

func TestCartItem_LineTotal(t *testing.T) {
	item := CartItem{Price: decimal.RequireFromString("79.90"), Quantity: 5}
	assert.True(t, decimal.RequireFromString("399.50").Equal(item.LineTotal()))
}

func TestUserRole_Access(t *testing.T) {
	assert.True(t, RoleAdmin.CanAccessAdmin())
	assert.True(t, RoleManager.CanAccessAdmin())
	assert.False(t, RoleCustomer.CanAccessAdmin())
	assert.True(t, RoleAdmin.CanAccessSettings())
	assert.False(t, RoleManager.CanAccessSettings())
}

func TestCreateRequests_MapToRecords(t *testing.T) {
	req := ProductCreateRequest{Name: "Pixel Invader", Price: decimal.RequireFromString("79.90"), CategoryID: "1"}
	p := req.ToProduct("id-1", "pixel-invader")
	assert.Equal(t, "id-1", p.ID)
	assert.Equal(t, "pixel-invader", p.Slug)
	assert.NotNil(t, p.Reviews)
	assert.Empty(t, p.Reviews)

	c := CategoryCreateRequest{Name: "Sci-Fi"}.ToCategory("c1", "sci-fi")
	assert.Equal(t, Category{ID: "c1", Name: "Sci-Fi", Slug: "sci-fi"}, c)

	u := User{ID: "1", Password: "admin"}.WithoutPassword()
	assert.Empty(t, u.Password)
}
