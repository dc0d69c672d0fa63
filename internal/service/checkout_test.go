package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

var testShipping = domain.ShippingDetails{
	FirstName:  "Alice",
	LastName:   "Martin",
	Address:    "1 Rue de Rivoli",
	City:       "Paris",
	PostalCode: "75001",
	Phone:      "0600000000",
}

func TestCheckout(t *testing.T) {
	repo := newFakeRepo()
	lamp := repo.addProduct("Lamp", 1999, 5)
	chair := repo.addProduct("Chair", 4999, 10)
	user := repo.addUser("alice", domain.RoleCustomer)
	carts := NewCartService(repo)
	svc := NewCheckoutService(repo)
	ctx := userCtx(user)

	_, err := carts.AddItem(ctx, repository.FromPgUUID(lamp.ID), 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, repository.FromPgUUID(chair.ID), 1)
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, testShipping)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.Number, "ORD-"))
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.Cents(2*1999+4999), order.Total)
	assert.Equal(t, testShipping, order.Shipping)
	require.Len(t, order.Items, 2)

	// Stock is decremented per line.
	assert.Equal(t, int32(3), repo.products[lamp.ID].Stock)
	assert.Equal(t, int32(9), repo.products[chair.ID].Stock)

	// The cart is emptied.
	count, err := carts.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCheckout_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	repo := newFakeRepo()
	lamp := repo.addProduct("Lamp", 999, 5)
	user := repo.addUser("alice", domain.RoleCustomer)
	carts := NewCartService(repo)
	orders := NewOrderService(repo)
	svc := NewCheckoutService(repo)
	ctx := userCtx(user)

	_, err := carts.AddItem(ctx, repository.FromPgUUID(lamp.ID), 1)
	require.NoError(t, err)

	placed, err := svc.Checkout(ctx, testShipping)
	require.NoError(t, err)

	// The price drops after the order was placed.
	p := repo.products[lamp.ID]
	p.PriceCents = 500
	repo.products[lamp.ID] = p

	order, err := orders.GetOrder(ctx, placed.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, domain.Cents(999), order.Items[0].PriceAtOrder)
	assert.Equal(t, domain.Cents(999), order.Total)
}

func TestCheckout_InsufficientStockAbortsEverything(t *testing.T) {
	repo := newFakeRepo()
	lamp := repo.addProduct("Lamp", 1999, 5)
	chair := repo.addProduct("Chair", 4999, 10)
	user := repo.addUser("alice", domain.RoleCustomer)
	carts := NewCartService(repo)
	svc := NewCheckoutService(repo)
	ctx := userCtx(user)

	_, err := carts.AddItem(ctx, repository.FromPgUUID(chair.ID), 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, repository.FromPgUUID(lamp.ID), 5)
	require.NoError(t, err)

	// Stock shrinks between adding to the cart and checking out.
	p := repo.products[lamp.ID]
	p.Stock = 3
	repo.products[lamp.ID] = p

	_, err = svc.Checkout(ctx, testShipping)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	assert.Contains(t, domain.ErrorMessage(err), "Not enough stock for Lamp")

	// Nothing was created or mutated.
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.orderItems)
	assert.Equal(t, int32(3), repo.products[lamp.ID].Stock)
	assert.Equal(t, int32(10), repo.products[chair.ID].Stock)

	count, err := carts.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestCheckout_EmptyCart(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser("alice", domain.RoleCustomer)
	svc := NewCheckoutService(repo)

	_, err := svc.Checkout(userCtx(user), testShipping)
	assert.ErrorIs(t, err, domain.ErrCartEmpty)
}

func TestCheckout_RequiresAuthentication(t *testing.T) {
	svc := NewCheckoutService(newFakeRepo())

	_, err := svc.Checkout(context.Background(), testShipping)
	assert.Equal(t, domain.EUNAUTHORIZED, domain.ErrorCode(err))
}

func TestCheckout_ValidatesShipping(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser("alice", domain.RoleCustomer)
	svc := NewCheckoutService(repo)

	_, err := svc.Checkout(userCtx(user), domain.ShippingDetails{FirstName: "Alice"})
	require.Error(t, err)
	fields := domain.GetValidationFields(err)
	assert.Contains(t, fields, "last_name")
	assert.Contains(t, fields, "address")
	assert.Contains(t, fields, "city")
	assert.Contains(t, fields, "postal_code")
}

func TestGenerateOrderNumber(t *testing.T) {
	number, err := generateOrderNumber()
	require.NoError(t, err)
	require.Regexp(t, `^ORD-\d{8}-\d{4}$`, number)
}
