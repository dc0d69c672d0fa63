package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

type orderService struct {
	repo repository.Querier
}

// NewOrderService creates a new OrderService instance
func NewOrderService(repo repository.Querier) domain.OrderService {
	return &orderService{repo: repo}
}

func toOrder(row repository.Order, items []repository.OrderItemRow) domain.Order {
	order := domain.Order{
		ID:     repository.FromPgUUID(row.ID),
		Number: row.OrderNumber,
		UserID: repository.FromPgUUID(row.UserID),
		Shipping: domain.ShippingDetails{
			FirstName:  row.FirstName,
			LastName:   row.LastName,
			Address:    row.Address,
			City:       row.City,
			PostalCode: row.PostalCode,
			Phone:      row.Phone,
		},
		Status:    row.Status,
		Total:     domain.Cents(row.TotalCents),
		OrderedAt: row.OrderedAt.Time,
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:           repository.FromPgUUID(item.ID),
			ProductID:    repository.FromPgUUID(item.ProductID),
			ProductName:  item.ProductName,
			Quantity:     int(item.Quantity),
			PriceAtOrder: domain.Cents(item.PriceAtOrderCents),
			Subtotal:     domain.Cents(item.PriceAtOrderCents) * domain.Cents(item.Quantity),
		})
	}
	return order
}

// visibleOrder loads an order and enforces the visibility rule: owners see
// their own orders, staff see everything, everyone else gets a 404 rather
// than a confirmation the order exists.
func (s *orderService) visibleOrder(ctx context.Context, op string, id uuid.UUID) (repository.Order, error) {
	user := domain.UserFromContext(ctx)
	if user == nil {
		return repository.Order{}, domain.Unauthorized(op, "Authentication required")
	}

	row, err := s.repo.GetOrderByID(ctx, repository.PgUUID(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Order{}, domain.ErrOrderNotFound
		}
		return repository.Order{}, domain.Internal(err, op, "failed to load order")
	}

	if !user.IsStaff() && repository.FromPgUUID(row.UserID) != user.ID {
		return repository.Order{}, domain.ErrOrderNotFound
	}
	return row, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	const op = "order.get"

	row, err := s.visibleOrder(ctx, op, id)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.GetOrderItems(ctx, row.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order items")
	}

	order := toOrder(row, items)
	return &order, nil
}

func (s *orderService) ListOrders(ctx context.Context, page int) (*domain.OrderPage, error) {
	const op = "order.list"

	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil, domain.Unauthorized(op, "Authentication required")
	}

	var (
		total int64
		err   error
	)
	if user.IsStaff() {
		total, err = s.repo.CountOrders(ctx)
	} else {
		total, err = s.repo.CountOrdersByUser(ctx, repository.PgUUID(user.ID))
	}
	if err != nil {
		return nil, domain.Internal(err, op, "failed to count orders")
	}

	totalPages := int((total + domain.OrderPageSize - 1) / domain.OrderPageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	offset := int32((page - 1) * domain.OrderPageSize)

	var rows []repository.Order
	if user.IsStaff() {
		rows, err = s.repo.ListOrders(ctx, repository.ListOrdersParams{
			Limit:  domain.OrderPageSize,
			Offset: offset,
		})
	} else {
		rows, err = s.repo.ListOrdersByUser(ctx, repository.ListOrdersByUserParams{
			UserID: repository.PgUUID(user.ID),
			Limit:  domain.OrderPageSize,
			Offset: offset,
		})
	}
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list orders")
	}

	result := &domain.OrderPage{Orders: make([]domain.Order, 0, len(rows)), Page: page, TotalPages: totalPages}
	for _, row := range rows {
		items, err := s.repo.GetOrderItems(ctx, row.ID)
		if err != nil {
			return nil, domain.Internal(err, op, "failed to load order items")
		}
		result.Orders = append(result.Orders, toOrder(row, items))
	}
	return result, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Order, error) {
	const op = "order.update_status"

	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil, domain.Unauthorized(op, "Authentication required")
	}
	if !user.IsStaff() {
		return nil, domain.Forbidden(op, "Staff role required")
	}

	if !domain.ValidOrderStatus(status) {
		return nil, domain.NewValidationError(op, "status", fmt.Sprintf("%q is not a valid status", status))
	}

	if _, err := s.visibleOrder(ctx, op, id); err != nil {
		return nil, err
	}

	row, err := s.repo.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
		ID:     repository.PgUUID(id),
		Status: status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, domain.Internal(err, op, "failed to update order status")
	}

	items, err := s.repo.GetOrderItems(ctx, row.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load order items")
	}

	order := toOrder(row, items)
	return &order, nil
}

// UpdateItemQuantity edits a purchased line. Managers only, and only while
// the parent order is still PENDING; once the status moves on, every item
// field is read-only. The frozen order total is deliberately left alone.
func (s *orderService) UpdateItemQuantity(ctx context.Context, orderID, itemID uuid.UUID, quantity int) (*domain.Order, error) {
	const op = "order.update_item"

	user := domain.UserFromContext(ctx)
	if user == nil {
		return nil, domain.Unauthorized(op, "Authentication required")
	}
	if !user.IsManager() {
		return nil, domain.Forbidden(op, "Manager role required")
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	row, err := s.visibleOrder(ctx, op, orderID)
	if err != nil {
		return nil, err
	}
	if row.Status != domain.OrderStatusPending {
		return nil, domain.Forbidden(op, "Order items can only be edited while the order is PENDING")
	}

	item, err := s.repo.GetOrderItem(ctx, repository.PgUUID(itemID))
	if err != nil || item.OrderID != row.ID {
		return nil, domain.NotFound(op, "order item", itemID.String())
	}

	if err := s.repo.UpdateOrderItemQuantity(ctx, repository.UpdateOrderItemQuantityParams{
		ID:       item.ID,
		Quantity: int32(quantity),
	}); err != nil {
		return nil, domain.Internal(err, op, "failed to update order item")
	}

	return s.GetOrder(ctx, orderID)
}
