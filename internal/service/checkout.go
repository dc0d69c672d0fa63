package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

type checkoutService struct {
	repo repository.Querier
}

// NewCheckoutService creates a new CheckoutService instance
func NewCheckoutService(repo repository.Querier) domain.CheckoutService {
	return &checkoutService{repo: repo}
}

// generateOrderNumber produces a human-readable order number in the form
// ORD-20250107-4821.
func generateOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	return fmt.Sprintf("ORD-%s-%04d", time.Now().Format("20060102"), n.Int64()), nil
}

// Checkout converts the caller's persisted cart into an order. Every line is
// validated against live stock before anything mutates; the order insert,
// per-line price snapshots, guarded stock decrements and the cart wipe then
// run in one transaction. A decrement that finds insufficient stock aborts
// the whole transaction, so a concurrent checkout can never overdraw.
func (s *checkoutService) Checkout(ctx context.Context, shipping domain.ShippingDetails) (*domain.Order, error) {
	const op = "checkout"

	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil, domain.Unauthorized(op, "Authentication required")
	}

	if err := validateStruct(op, shipping); err != nil {
		return nil, err
	}

	cart, err := s.repo.GetCartByUserID(ctx, repository.PgUUID(user.ID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrCartEmpty
		}
		return nil, domain.Internal(err, op, "failed to load cart")
	}

	items, err := s.repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart items")
	}
	if len(items) == 0 {
		return nil, domain.ErrCartEmpty
	}

	// Validate all lines before touching anything. No partial order is ever
	// created.
	var total domain.Cents
	for _, item := range items {
		if int(item.Quantity) > int(item.Stock) {
			return nil, domain.Invalid(op, fmt.Sprintf(
				"Not enough stock for %s: requested %d, available %d",
				item.ProductName, item.Quantity, item.Stock))
		}
		total += domain.Cents(item.PriceCents) * domain.Cents(item.Quantity)
	}

	number, err := generateOrderNumber()
	if err != nil {
		return nil, domain.Internal(err, op, "failed to generate order number")
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to begin transaction")
	}
	defer tx.Rollback(ctx)
	q := tx.Queries()

	orderedAt := pgtype.Timestamptz{Time: time.Now(), Valid: true}
	orderRow, err := q.CreateOrder(ctx, repository.CreateOrderParams{
		OrderNumber: number,
		UserID:      repository.PgUUID(user.ID),
		FirstName:   shipping.FirstName,
		LastName:    shipping.LastName,
		Address:     shipping.Address,
		City:        shipping.City,
		PostalCode:  shipping.PostalCode,
		Phone:       shipping.Phone,
		Status:      domain.OrderStatusPending,
		TotalCents:  int64(total),
		OrderedAt:   orderedAt,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "failed to create order")
	}

	order := &domain.Order{
		ID:        repository.FromPgUUID(orderRow.ID),
		Number:    orderRow.OrderNumber,
		UserID:    user.ID,
		Shipping:  shipping,
		Status:    orderRow.Status,
		Total:     total,
		OrderedAt: orderRow.OrderedAt.Time,
	}

	for _, item := range items {
		// The guard re-checks stock inside the transaction: zero rows means
		// another checkout got there first.
		affected, err := q.DecrementProductStock(ctx, repository.DecrementProductStockParams{
			ID:       item.ProductID,
			Quantity: item.Quantity,
		})
		if err != nil {
			return nil, domain.Internal(err, op, "failed to decrement stock")
		}
		if affected == 0 {
			return nil, domain.Invalid(op, fmt.Sprintf("Not enough stock for %s", item.ProductName))
		}

		itemRow, err := q.CreateOrderItem(ctx, repository.CreateOrderItemParams{
			OrderID:           orderRow.ID,
			ProductID:         item.ProductID,
			Quantity:          item.Quantity,
			PriceAtOrderCents: item.PriceCents,
		})
		if err != nil {
			return nil, domain.Internal(err, op, "failed to create order item")
		}

		order.Items = append(order.Items, domain.OrderItem{
			ID:           repository.FromPgUUID(itemRow.ID),
			ProductID:    repository.FromPgUUID(item.ProductID),
			ProductName:  item.ProductName,
			Quantity:     int(item.Quantity),
			PriceAtOrder: domain.Cents(item.PriceCents),
			Subtotal:     domain.Cents(item.PriceCents) * domain.Cents(item.Quantity),
		})
	}

	if err := q.ClearCartItems(ctx, cart.ID); err != nil {
		return nil, domain.Internal(err, op, "failed to clear cart")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.Internal(err, op, "failed to commit transaction")
	}

	return order, nil
}
