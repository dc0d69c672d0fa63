package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

// cartService serves both cart representations. An authenticated caller works
// against persisted cart rows; an anonymous caller against the product ->
// quantity map stored on its session row. Every method dispatches on the
// identity in ctx.
type cartService struct {
	repo repository.Querier
}

// NewCartService creates a new CartService instance
func NewCartService(repo repository.Querier) domain.CartService {
	return &cartService{repo: repo}
}

// maxStockError is the rejection for a quantity exceeding live stock. The
// message carries the ceiling so clients can display it directly.
func maxStockError(op string, stock int) error {
	return domain.NewValidationError(op, "quantity", fmt.Sprintf("Max stock is %d", stock))
}

func (s *cartService) Summary(ctx context.Context) (*domain.CartSummary, error) {
	if domain.IsAuthenticated(ctx) {
		return s.userSummary(ctx)
	}
	return s.sessionSummary(ctx)
}

func (s *cartService) AddItem(ctx context.Context, productID uuid.UUID, delta int) (*domain.CartSummary, error) {
	const op = "cart.add_item"

	if delta <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	product, err := s.repo.GetProductByID(ctx, repository.PgUUID(productID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, domain.Internal(err, op, "failed to load product")
	}

	if domain.IsAuthenticated(ctx) {
		if err := s.userAddItem(ctx, product, delta); err != nil {
			return nil, err
		}
		return s.userSummary(ctx)
	}

	if err := s.sessionAddItem(ctx, product, delta); err != nil {
		return nil, err
	}
	return s.sessionSummary(ctx)
}

func (s *cartService) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*domain.CartSummary, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	if domain.IsAuthenticated(ctx) {
		if err := s.userSetQuantity(ctx, itemID, quantity); err != nil {
			return nil, err
		}
		return s.userSummary(ctx)
	}

	if err := s.sessionSetQuantity(ctx, itemID, quantity); err != nil {
		return nil, err
	}
	return s.sessionSummary(ctx)
}

func (s *cartService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if domain.IsAuthenticated(ctx) {
		return s.userRemoveItem(ctx, itemID)
	}
	return s.sessionRemoveItem(ctx, itemID)
}

func (s *cartService) Clear(ctx context.Context) error {
	const op = "cart.clear"

	if user := domain.UserFromContext(ctx); user != nil {
		cart, err := s.repo.GetCartByUserID(ctx, repository.PgUUID(user.ID))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return domain.Internal(err, op, "failed to load cart")
		}
		if err := s.repo.ClearCartItems(ctx, cart.ID); err != nil {
			return domain.Internal(err, op, "failed to clear cart")
		}
		return nil
	}

	sess, row, err := s.sessionRow(ctx, op)
	if err != nil {
		return err
	}
	data := decodeSessionData(row.Data)
	if len(data.Cart) == 0 {
		return nil
	}
	data.Cart = map[string]int{}
	return s.writeSessionData(ctx, op, sess, data)
}

func (s *cartService) ItemCount(ctx context.Context) (int, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return 0, err
	}
	return summary.ItemCount, nil
}

// MergeSessionCart folds the session map into the user's persisted cart.
// Quantities add up, clamped to live stock; products that disappeared since
// the anonymous session filled its cart are skipped without complaint. The
// session map is wiped afterwards, so a second merge is a no-op.
func (s *cartService) MergeSessionCart(ctx context.Context) error {
	const op = "cart.merge"

	user := domain.UserFromContext(ctx)
	if user == nil {
		return domain.Unauthorized(op, "Authentication required")
	}

	sess, row, err := s.sessionRow(ctx, op)
	if err != nil {
		return err
	}

	data := decodeSessionData(row.Data)
	lines := data.cartLines()
	if len(lines) == 0 {
		return nil
	}

	cart, err := s.getOrCreateCart(ctx, op, user.ID)
	if err != nil {
		return err
	}

	for _, line := range lines {
		product, err := s.repo.GetProductByID(ctx, repository.PgUUID(line.ProductID))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return domain.Internal(err, op, "failed to load product")
		}

		existing, err := s.repo.GetCartItemByProduct(ctx, repository.GetCartItemByProductParams{
			CartID:    cart.ID,
			ProductID: product.ID,
		})
		switch {
		case err == nil:
			// The clamp also corrects a persisted line downwards when stock
			// dropped while the user was away. Rows cannot hold zero.
			merged := int(existing.Quantity) + line.Quantity
			if merged > int(product.Stock) {
				merged = int(product.Stock)
			}
			if merged <= 0 || merged == int(existing.Quantity) {
				continue
			}
			if err := s.repo.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
				ID:       existing.ID,
				Quantity: int32(merged),
			}); err != nil {
				return domain.Internal(err, op, "failed to update cart item")
			}
		case errors.Is(err, repository.ErrNotFound):
			qty := line.Quantity
			if qty > int(product.Stock) {
				qty = int(product.Stock)
			}
			if qty <= 0 {
				continue
			}
			if _, err := s.repo.CreateCartItem(ctx, repository.CreateCartItemParams{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  int32(qty),
			}); err != nil {
				return domain.Internal(err, op, "failed to create cart item")
			}
		default:
			return domain.Internal(err, op, "failed to load cart item")
		}
	}

	data.Cart = map[string]int{}
	return s.writeSessionData(ctx, op, sess, data)
}

// --- persisted representation ---

func (s *cartService) getOrCreateCart(ctx context.Context, op string, userID uuid.UUID) (repository.Cart, error) {
	cart, err := s.repo.GetCartByUserID(ctx, repository.PgUUID(userID))
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return repository.Cart{}, domain.Internal(err, op, "failed to load cart")
	}

	cart, err = s.repo.CreateCart(ctx, repository.PgUUID(userID))
	if err != nil {
		return repository.Cart{}, domain.Internal(err, op, "failed to create cart")
	}
	return cart, nil
}

func (s *cartService) userSummary(ctx context.Context) (*domain.CartSummary, error) {
	const op = "cart.summary"

	user := domain.UserFromContext(ctx)
	cart, err := s.repo.GetCartByUserID(ctx, repository.PgUUID(user.ID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.CartSummary{Items: []domain.CartItem{}}, nil
		}
		return nil, domain.Internal(err, op, "failed to load cart")
	}

	rows, err := s.repo.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load cart items")
	}

	summary := &domain.CartSummary{Items: make([]domain.CartItem, 0, len(rows))}
	for _, row := range rows {
		item := domain.CartItem{
			ID:          repository.FromPgUUID(row.ID),
			ProductID:   repository.FromPgUUID(row.ProductID),
			ProductName: row.ProductName,
			UnitPrice:   domain.Cents(row.PriceCents),
			Quantity:    int(row.Quantity),
			Stock:       int(row.Stock),
			Subtotal:    domain.Cents(row.PriceCents) * domain.Cents(row.Quantity),
		}
		summary.Items = append(summary.Items, item)
		summary.Total += item.Subtotal
		summary.ItemCount += item.Quantity
	}
	return summary, nil
}

func (s *cartService) userAddItem(ctx context.Context, product repository.ProductRow, delta int) error {
	const op = "cart.add_item"

	user := domain.UserFromContext(ctx)
	cart, err := s.getOrCreateCart(ctx, op, user.ID)
	if err != nil {
		return err
	}

	existing, err := s.repo.GetCartItemByProduct(ctx, repository.GetCartItemByProductParams{
		CartID:    cart.ID,
		ProductID: product.ID,
	})
	switch {
	case err == nil:
		newQty := int(existing.Quantity) + delta
		if newQty > int(product.Stock) {
			return maxStockError(op, int(product.Stock))
		}
		if err := s.repo.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
			ID:       existing.ID,
			Quantity: int32(newQty),
		}); err != nil {
			return domain.Internal(err, op, "failed to update cart item")
		}
	case errors.Is(err, repository.ErrNotFound):
		if delta > int(product.Stock) {
			return maxStockError(op, int(product.Stock))
		}
		if _, err := s.repo.CreateCartItem(ctx, repository.CreateCartItemParams{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  int32(delta),
		}); err != nil {
			return domain.Internal(err, op, "failed to create cart item")
		}
	default:
		return domain.Internal(err, op, "failed to load cart item")
	}
	return nil
}

// userCartItem loads a cart item and verifies it belongs to the caller.
func (s *cartService) userCartItem(ctx context.Context, op string, itemID uuid.UUID) (repository.CartItemRow, error) {
	user := domain.UserFromContext(ctx)

	item, err := s.repo.GetCartItem(ctx, repository.PgUUID(itemID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.CartItemRow{}, domain.ErrCartItemNotFound
		}
		return repository.CartItemRow{}, domain.Internal(err, op, "failed to load cart item")
	}

	cart, err := s.repo.GetCartByUserID(ctx, repository.PgUUID(user.ID))
	if err != nil || cart.ID != item.CartID {
		return repository.CartItemRow{}, domain.ErrCartItemNotFound
	}
	return item, nil
}

func (s *cartService) userSetQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	const op = "cart.set_quantity"

	item, err := s.userCartItem(ctx, op, itemID)
	if err != nil {
		return err
	}
	if quantity > int(item.Stock) {
		return maxStockError(op, int(item.Stock))
	}

	if err := s.repo.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
		ID:       item.ID,
		Quantity: int32(quantity),
	}); err != nil {
		return domain.Internal(err, op, "failed to update cart item")
	}
	return nil
}

func (s *cartService) userRemoveItem(ctx context.Context, itemID uuid.UUID) error {
	const op = "cart.remove_item"

	item, err := s.userCartItem(ctx, op, itemID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCartItem(ctx, item.ID); err != nil {
		return domain.Internal(err, op, "failed to remove cart item")
	}
	return nil
}

// --- session representation ---

// sessionRow loads the caller's session row, which carries the cart map.
func (s *cartService) sessionRow(ctx context.Context, op string) (*domain.Session, repository.Session, error) {
	sess := domain.SessionFromContext(ctx)
	if sess == nil {
		return nil, repository.Session{}, domain.ErrSessionNotFound
	}

	row, err := s.repo.GetSessionByToken(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.Session{}, domain.ErrSessionNotFound
		}
		return nil, repository.Session{}, domain.Internal(err, op, "failed to load session")
	}
	return sess, row, nil
}

func (s *cartService) writeSessionData(ctx context.Context, op string, sess *domain.Session, data sessionData) error {
	if err := s.repo.UpdateSessionData(ctx, repository.UpdateSessionDataParams{
		ID:   repository.PgUUID(sess.ID),
		Data: encodeSessionData(data),
	}); err != nil {
		return domain.Internal(err, op, "failed to update session")
	}
	return nil
}

func (s *cartService) sessionSummary(ctx context.Context) (*domain.CartSummary, error) {
	const op = "cart.summary"

	sess := domain.SessionFromContext(ctx)
	if sess == nil {
		return &domain.CartSummary{Items: []domain.CartItem{}}, nil
	}

	_, row, err := s.sessionRow(ctx, op)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return &domain.CartSummary{Items: []domain.CartItem{}}, nil
		}
		return nil, err
	}

	data := decodeSessionData(row.Data)
	summary := &domain.CartSummary{Items: make([]domain.CartItem, 0, len(data.Cart))}
	for _, line := range data.cartLines() {
		product, err := s.repo.GetProductByID(ctx, repository.PgUUID(line.ProductID))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, domain.Internal(err, op, "failed to load product")
		}

		item := domain.CartItem{
			ID:          line.ProductID,
			ProductID:   line.ProductID,
			ProductName: product.Name,
			UnitPrice:   domain.Cents(product.PriceCents),
			Quantity:    line.Quantity,
			Stock:       int(product.Stock),
			Subtotal:    domain.Cents(product.PriceCents) * domain.Cents(line.Quantity),
		}
		summary.Items = append(summary.Items, item)
		summary.Total += item.Subtotal
		summary.ItemCount += item.Quantity
	}
	return summary, nil
}

func (s *cartService) sessionAddItem(ctx context.Context, product repository.ProductRow, delta int) error {
	const op = "cart.add_item"

	sess, row, err := s.sessionRow(ctx, op)
	if err != nil {
		return err
	}

	data := decodeSessionData(row.Data)
	key := repository.FromPgUUID(product.ID).String()
	newQty := data.Cart[key] + delta
	if newQty > int(product.Stock) {
		return maxStockError(op, int(product.Stock))
	}

	data.Cart[key] = newQty
	return s.writeSessionData(ctx, op, sess, data)
}

func (s *cartService) sessionSetQuantity(ctx context.Context, productID uuid.UUID, quantity int) error {
	const op = "cart.set_quantity"

	sess, row, err := s.sessionRow(ctx, op)
	if err != nil {
		return err
	}

	data := decodeSessionData(row.Data)
	key := productID.String()
	if _, ok := data.Cart[key]; !ok {
		return domain.ErrCartItemNotFound
	}

	product, err := s.repo.GetProductByID(ctx, repository.PgUUID(productID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrProductNotFound
		}
		return domain.Internal(err, op, "failed to load product")
	}
	if quantity > int(product.Stock) {
		return maxStockError(op, int(product.Stock))
	}

	data.Cart[key] = quantity
	return s.writeSessionData(ctx, op, sess, data)
}

func (s *cartService) sessionRemoveItem(ctx context.Context, productID uuid.UUID) error {
	const op = "cart.remove_item"

	sess, row, err := s.sessionRow(ctx, op)
	if err != nil {
		return err
	}

	data := decodeSessionData(row.Data)
	key := productID.String()
	if _, ok := data.Cart[key]; !ok {
		return domain.ErrCartItemNotFound
	}

	delete(data.Cart, key)
	return s.writeSessionData(ctx, op, sess, data)
}
