package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements Querier against PostgreSQL.
type Store struct {
	db   DBTX
	pool *pgxpool.Pool
}

// Compile-time check that Store implements Querier.
var _ Querier = (*Store)(nil)

// NewStore creates a pgx-backed store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool, pool: pool}
}

// BeginTx starts a transaction. Calling BeginTx on a Store that already
// wraps a transaction is an error.
func (s *Store) BeginTx(ctx context.Context) (Tx, error) {
	if s.pool == nil {
		return nil, fmt.Errorf("begin tx: store is already transactional")
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &pgxTx{tx: tx}, nil
}

type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) Queries() Querier {
	return &Store{db: t.tx}
}

func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return err
	}
	return nil
}

// =============================================================================
// Categories
// =============================================================================

const listCategories = `
SELECT id, name, slug FROM categories ORDER BY name
`

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const getCategoryByID = `
SELECT id, name, slug FROM categories WHERE id = $1
`

func (s *Store) GetCategoryByID(ctx context.Context, id pgtype.UUID) (Category, error) {
	var c Category
	err := s.db.QueryRow(ctx, getCategoryByID, id).Scan(&c.ID, &c.Name, &c.Slug)
	return c, err
}

const createCategory = `
INSERT INTO categories (name, slug) VALUES ($1, $2)
RETURNING id, name, slug
`

func (s *Store) CreateCategory(ctx context.Context, arg CreateCategoryParams) (Category, error) {
	var c Category
	err := s.db.QueryRow(ctx, createCategory, arg.Name, arg.Slug).Scan(&c.ID, &c.Name, &c.Slug)
	return c, err
}

const updateCategory = `
UPDATE categories SET name = $2, slug = $3 WHERE id = $1
RETURNING id, name, slug
`

func (s *Store) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) (Category, error) {
	var c Category
	err := s.db.QueryRow(ctx, updateCategory, arg.ID, arg.Name, arg.Slug).Scan(&c.ID, &c.Name, &c.Slug)
	return c, err
}

func (s *Store) DeleteCategory(ctx context.Context, id pgtype.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// Products
// =============================================================================

const productColumns = `p.id, p.category_id, p.name, p.description, p.price_cents, p.stock, p.image_url, p.created_at, p.updated_at, c.name AS category_name`

// productPredicates builds the WHERE clause shared by ListProducts and
// CountProducts.
func productPredicates(query string, categoryID pgtype.UUID, minCents, maxCents int64, inStock bool, args []any) (string, []any) {
	var conds []string

	if query != "" {
		args = append(args, "%"+query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", n, n))
	}
	if categoryID.Valid {
		args = append(args, categoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if minCents >= 0 {
		args = append(args, minCents)
		conds = append(conds, fmt.Sprintf("p.price_cents >= $%d", len(args)))
	}
	if maxCents >= 0 {
		args = append(args, maxCents)
		conds = append(conds, fmt.Sprintf("p.price_cents <= $%d", len(args)))
	}
	if inStock {
		conds = append(conds, "p.stock > 0")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) ListProducts(ctx context.Context, arg ListProductsParams) ([]ProductRow, error) {
	where, args := productPredicates(arg.Query, arg.CategoryID, arg.MinPriceCents, arg.MaxPriceCents, arg.InStockOnly, nil)

	args = append(args, arg.Limit)
	limitPos := len(args)
	args = append(args, arg.Offset)
	offsetPos := len(args)

	q := fmt.Sprintf(
		`SELECT %s FROM products p JOIN categories c ON c.id = p.category_id%s ORDER BY p.name LIMIT $%d OFFSET $%d`,
		productColumns, where, limitPos, offsetPos,
	)

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ProductRow
	for rows.Next() {
		var p ProductRow
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.ImageUrl, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (s *Store) CountProducts(ctx context.Context, arg CountProductsParams) (int64, error) {
	where, args := productPredicates(arg.Query, arg.CategoryID, arg.MinPriceCents, arg.MaxPriceCents, arg.InStockOnly, nil)

	q := `SELECT count(*) FROM products p` + where
	var count int64
	err := s.db.QueryRow(ctx, q, args...).Scan(&count)
	return count, err
}

const getProductByID = `
SELECT p.id, p.category_id, p.name, p.description, p.price_cents, p.stock, p.image_url, p.created_at, p.updated_at, c.name
FROM products p JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`

func (s *Store) GetProductByID(ctx context.Context, id pgtype.UUID) (ProductRow, error) {
	var p ProductRow
	err := s.db.QueryRow(ctx, getProductByID, id).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.ImageUrl, &p.CreatedAt, &p.UpdatedAt, &p.CategoryName,
	)
	return p, err
}

const createProduct = `
INSERT INTO products (category_id, name, description, price_cents, stock, image_url)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, category_id, name, description, price_cents, stock, image_url, created_at, updated_at
`

func (s *Store) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	var p Product
	err := s.db.QueryRow(ctx, createProduct,
		arg.CategoryID, arg.Name, arg.Description, arg.PriceCents, arg.Stock, arg.ImageUrl,
	).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.ImageUrl, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const updateProduct = `
UPDATE products
SET category_id = $2, name = $3, description = $4, price_cents = $5, stock = $6, image_url = $7, updated_at = now()
WHERE id = $1
RETURNING id, category_id, name, description, price_cents, stock, image_url, created_at, updated_at
`

func (s *Store) UpdateProduct(ctx context.Context, arg UpdateProductParams) (Product, error) {
	var p Product
	err := s.db.QueryRow(ctx, updateProduct,
		arg.ID, arg.CategoryID, arg.Name, arg.Description, arg.PriceCents, arg.Stock, arg.ImageUrl,
	).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents, &p.Stock, &p.ImageUrl, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) DeleteProduct(ctx context.Context, id pgtype.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const decrementProductStock = `
UPDATE products SET stock = stock - $2, updated_at = now()
WHERE id = $1 AND stock >= $2
`

func (s *Store) DecrementProductStock(ctx context.Context, arg DecrementProductStockParams) (int64, error) {
	tag, err := s.db.Exec(ctx, decrementProductStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// =============================================================================
// Users
// =============================================================================

const userColumns = `id, username, email, password_hash, role, first_name, last_name, address, city, postal_code, phone, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.FirstName, &u.LastName, &u.Address, &u.City, &u.PostalCode, &u.Phone, &u.CreatedAt)
	return u, err
}

const createUser = `
INSERT INTO users (username, email, password_hash, role)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

func (s *Store) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	return scanUser(s.db.QueryRow(ctx, createUser, arg.Username, arg.Email, arg.PasswordHash, arg.Role))
}

func (s *Store) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

const updateUserProfile = `
UPDATE users
SET first_name = $2, last_name = $3, address = $4, city = $5, postal_code = $6, phone = $7
WHERE id = $1
RETURNING ` + userColumns

func (s *Store) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) (User, error) {
	return scanUser(s.db.QueryRow(ctx, updateUserProfile,
		arg.ID, arg.FirstName, arg.LastName, arg.Address, arg.City, arg.PostalCode, arg.Phone))
}

// =============================================================================
// Sessions
// =============================================================================

const sessionColumns = `id, token, user_id, data, expires_at, created_at`

func scanSession(row pgx.Row) (Session, error) {
	var sess Session
	err := row.Scan(&sess.ID, &sess.Token, &sess.UserID, &sess.Data, &sess.ExpiresAt, &sess.CreatedAt)
	return sess, err
}

const createSession = `
INSERT INTO sessions (token, user_id, data, expires_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + sessionColumns

func (s *Store) CreateSession(ctx context.Context, arg CreateSessionParams) (Session, error) {
	return scanSession(s.db.QueryRow(ctx, createSession, arg.Token, arg.UserID, arg.Data, arg.ExpiresAt))
}

func (s *Store) GetSessionByToken(ctx context.Context, token string) (Session, error) {
	return scanSession(s.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE token = $1 AND expires_at > now()`, token))
}

func (s *Store) UpdateSessionData(ctx context.Context, arg UpdateSessionDataParams) error {
	tag, err := s.db.Exec(ctx, `UPDATE sessions SET data = $2 WHERE id = $1`, arg.ID, arg.Data)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSession(ctx context.Context, id pgtype.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

// =============================================================================
// Carts
// =============================================================================

func (s *Store) GetCartByUserID(ctx context.Context, userID pgtype.UUID) (Cart, error) {
	var c Cart
	err := s.db.QueryRow(ctx, `SELECT id, user_id, created_at FROM carts WHERE user_id = $1`, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

func (s *Store) CreateCart(ctx context.Context, userID pgtype.UUID) (Cart, error) {
	var c Cart
	err := s.db.QueryRow(ctx,
		`INSERT INTO carts (user_id) VALUES ($1) RETURNING id, user_id, created_at`, userID).
		Scan(&c.ID, &c.UserID, &c.CreatedAt)
	return c, err
}

const cartItemRowColumns = `ci.id, ci.cart_id, ci.product_id, ci.quantity, p.name, p.price_cents, p.stock`

const getCartItems = `
SELECT ` + cartItemRowColumns + `
FROM cart_items ci JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY p.name
`

func (s *Store) GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]CartItemRow, error) {
	rows, err := s.db.Query(ctx, getCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartItemRow
	for rows.Next() {
		var it CartItemRow
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.ProductName, &it.PriceCents, &it.Stock); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

const getCartItem = `
SELECT ` + cartItemRowColumns + `
FROM cart_items ci JOIN products p ON p.id = ci.product_id
WHERE ci.id = $1
`

func (s *Store) GetCartItem(ctx context.Context, id pgtype.UUID) (CartItemRow, error) {
	var it CartItemRow
	err := s.db.QueryRow(ctx, getCartItem, id).
		Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.ProductName, &it.PriceCents, &it.Stock)
	return it, err
}

func (s *Store) GetCartItemByProduct(ctx context.Context, arg GetCartItemByProductParams) (CartItem, error) {
	var it CartItem
	err := s.db.QueryRow(ctx,
		`SELECT id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		arg.CartID, arg.ProductID).
		Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity)
	return it, err
}

func (s *Store) CreateCartItem(ctx context.Context, arg CreateCartItemParams) (CartItem, error) {
	var it CartItem
	err := s.db.QueryRow(ctx,
		`INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3)
		 RETURNING id, cart_id, product_id, quantity`,
		arg.CartID, arg.ProductID, arg.Quantity).
		Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity)
	return it, err
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) error {
	tag, err := s.db.Exec(ctx, `UPDATE cart_items SET quantity = $2 WHERE id = $1`, arg.ID, arg.Quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCartItem(ctx context.Context, id pgtype.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ClearCartItems(ctx context.Context, cartID pgtype.UUID) error {
	_, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

// =============================================================================
// Orders
// =============================================================================

const orderColumns = `id, order_number, user_id, first_name, last_name, address, city, postal_code, phone, status, total_cents, ordered_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.FirstName, &o.LastName,
		&o.Address, &o.City, &o.PostalCode, &o.Phone, &o.Status, &o.TotalCents, &o.OrderedAt)
	return o, err
}

const createOrder = `
INSERT INTO orders (order_number, user_id, first_name, last_name, address, city, postal_code, phone, status, total_cents, ordered_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + orderColumns

func (s *Store) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	return scanOrder(s.db.QueryRow(ctx, createOrder,
		arg.OrderNumber, arg.UserID, arg.FirstName, arg.LastName, arg.Address,
		arg.City, arg.PostalCode, arg.Phone, arg.Status, arg.TotalCents, arg.OrderedAt))
}

func (s *Store) GetOrderByID(ctx context.Context, id pgtype.UUID) (Order, error) {
	return scanOrder(s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

func (s *Store) listOrders(ctx context.Context, q string, args ...any) ([]Order, error) {
	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.FirstName, &o.LastName,
			&o.Address, &o.City, &o.PostalCode, &o.Phone, &o.Status, &o.TotalCents, &o.OrderedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) ListOrdersByUser(ctx context.Context, arg ListOrdersByUserParams) ([]Order, error) {
	return s.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY ordered_at DESC LIMIT $2 OFFSET $3`,
		arg.UserID, arg.Limit, arg.Offset)
}

func (s *Store) CountOrdersByUser(ctx context.Context, userID pgtype.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM orders WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (s *Store) ListOrders(ctx context.Context, arg ListOrdersParams) ([]Order, error) {
	return s.listOrders(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY ordered_at DESC LIMIT $1 OFFSET $2`,
		arg.Limit, arg.Offset)
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&count)
	return count, err
}

const updateOrderStatus = `
UPDATE orders SET status = $2 WHERE id = $1
RETURNING ` + orderColumns

func (s *Store) UpdateOrderStatus(ctx context.Context, arg UpdateOrderStatusParams) (Order, error) {
	return scanOrder(s.db.QueryRow(ctx, updateOrderStatus, arg.ID, arg.Status))
}

func (s *Store) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	var it OrderItem
	err := s.db.QueryRow(ctx,
		`INSERT INTO order_items (order_id, product_id, quantity, price_at_order_cents)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, order_id, product_id, quantity, price_at_order_cents`,
		arg.OrderID, arg.ProductID, arg.Quantity, arg.PriceAtOrderCents).
		Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceAtOrderCents)
	return it, err
}

const getOrderItems = `
SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price_at_order_cents, p.name
FROM order_items oi JOIN products p ON p.id = oi.product_id
WHERE oi.order_id = $1
ORDER BY p.name
`

func (s *Store) GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItemRow, error) {
	rows, err := s.db.Query(ctx, getOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItemRow
	for rows.Next() {
		var it OrderItemRow
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceAtOrderCents, &it.ProductName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (s *Store) GetOrderItem(ctx context.Context, id pgtype.UUID) (OrderItem, error) {
	var it OrderItem
	err := s.db.QueryRow(ctx,
		`SELECT id, order_id, product_id, quantity, price_at_order_cents FROM order_items WHERE id = $1`, id).
		Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceAtOrderCents)
	return it, err
}

func (s *Store) UpdateOrderItemQuantity(ctx context.Context, arg UpdateOrderItemQuantityParams) error {
	tag, err := s.db.Exec(ctx, `UPDATE order_items SET quantity = $2 WHERE id = $1`, arg.ID, arg.Quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// =============================================================================
// Refresh tokens
// =============================================================================

const refreshTokenColumns = `id, user_id, token_hash, expires_at, revoked, created_at`

func (s *Store) CreateRefreshToken(ctx context.Context, arg CreateRefreshTokenParams) (RefreshToken, error) {
	var rt RefreshToken
	err := s.db.QueryRow(ctx,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES ($1, $2, $3)
		 RETURNING `+refreshTokenColumns,
		arg.UserID, arg.TokenHash, arg.ExpiresAt).
		Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt)
	return rt, err
}

func (s *Store) GetRefreshTokenByHash(ctx context.Context, hash string) (RefreshToken, error) {
	var rt RefreshToken
	err := s.db.QueryRow(ctx,
		`SELECT `+refreshTokenColumns+` FROM refresh_tokens WHERE token_hash = $1`, hash).
		Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.Revoked, &rt.CreatedAt)
	return rt, err
}

func (s *Store) RevokeRefreshToken(ctx context.Context, id pgtype.UUID) error {
	tag, err := s.db.Exec(ctx, `UPDATE refresh_tokens SET revoked = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
