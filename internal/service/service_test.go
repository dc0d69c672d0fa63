package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/repository"
)

// fakeRepo is an in-memory Querier. Transactions are flat: the fake hands
// back itself, so service tests exercise real business logic against real
// state without a database.
type fakeRepo struct {
	categories    map[pgtype.UUID]repository.Category
	products      map[pgtype.UUID]repository.Product
	users         map[pgtype.UUID]repository.User
	sessions      map[pgtype.UUID]repository.Session
	carts         map[pgtype.UUID]repository.Cart
	cartItems     map[pgtype.UUID]repository.CartItem
	orders        map[pgtype.UUID]repository.Order
	orderItems    map[pgtype.UUID]repository.OrderItem
	refreshTokens map[pgtype.UUID]repository.RefreshToken
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories:    map[pgtype.UUID]repository.Category{},
		products:      map[pgtype.UUID]repository.Product{},
		users:         map[pgtype.UUID]repository.User{},
		sessions:      map[pgtype.UUID]repository.Session{},
		carts:         map[pgtype.UUID]repository.Cart{},
		cartItems:     map[pgtype.UUID]repository.CartItem{},
		orders:        map[pgtype.UUID]repository.Order{},
		orderItems:    map[pgtype.UUID]repository.OrderItem{},
		refreshTokens: map[pgtype.UUID]repository.RefreshToken{},
	}
}

var _ repository.Querier = (*fakeRepo)(nil)

func newID() pgtype.UUID {
	return repository.PgUUID(uuid.New())
}

func now() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now(), Valid: true}
}

// --- fixtures ---

func (f *fakeRepo) addCategory(name string) repository.Category {
	c := repository.Category{ID: newID(), Name: name, Slug: strings.ToLower(name)}
	f.categories[c.ID] = c
	return c
}

func (f *fakeRepo) addProduct(name string, priceCents int64, stock int32) repository.Product {
	var cat repository.Category
	for _, c := range f.categories {
		cat = c
		break
	}
	if !cat.ID.Valid {
		cat = f.addCategory("General")
	}
	p := repository.Product{
		ID:         newID(),
		CategoryID: cat.ID,
		Name:       name,
		PriceCents: priceCents,
		Stock:      stock,
		CreatedAt:  now(),
		UpdatedAt:  now(),
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeRepo) addUser(username, role string) repository.User {
	u := repository.User{
		ID:           newID(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeRepo) addSession(userID pgtype.UUID, data string) repository.Session {
	s := repository.Session{
		ID:        newID(),
		Token:     uuid.NewString(),
		UserID:    userID,
		Data:      []byte(data),
		ExpiresAt: pgtype.Timestamptz{Time: time.Now().Add(time.Hour), Valid: true},
		CreatedAt: now(),
	}
	f.sessions[s.ID] = s
	return s
}

// --- context helpers ---

func userCtx(u repository.User) context.Context {
	return domain.NewContextWithUser(context.Background(), &domain.User{
		ID:       repository.FromPgUUID(u.ID),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	})
}

func sessionCtx(s repository.Session) context.Context {
	return domain.NewContextWithSession(context.Background(), &domain.Session{
		ID:    repository.FromPgUUID(s.ID),
		Token: s.Token,
	})
}

func userSessionCtx(u repository.User, s repository.Session) context.Context {
	ctx := sessionCtx(s)
	return domain.NewContextWithUser(ctx, &domain.User{
		ID:       repository.FromPgUUID(u.ID),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	})
}

// --- categories ---

func (f *fakeRepo) ListCategories(ctx context.Context) ([]repository.Category, error) {
	var out []repository.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) GetCategoryByID(ctx context.Context, id pgtype.UUID) (repository.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return repository.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeRepo) CreateCategory(ctx context.Context, arg repository.CreateCategoryParams) (repository.Category, error) {
	c := repository.Category{ID: newID(), Name: arg.Name, Slug: arg.Slug}
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeRepo) UpdateCategory(ctx context.Context, arg repository.UpdateCategoryParams) (repository.Category, error) {
	c, ok := f.categories[arg.ID]
	if !ok {
		return repository.Category{}, repository.ErrNotFound
	}
	c.Name, c.Slug = arg.Name, arg.Slug
	f.categories[arg.ID] = c
	return c, nil
}

func (f *fakeRepo) DeleteCategory(ctx context.Context, id pgtype.UUID) error {
	if _, ok := f.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

// --- products ---

func (f *fakeRepo) productRow(p repository.Product) repository.ProductRow {
	return repository.ProductRow{Product: p, CategoryName: f.categories[p.CategoryID].Name}
}

func (f *fakeRepo) matchProduct(p repository.Product, query string, categoryID pgtype.UUID, minCents, maxCents int64, inStock bool) bool {
	if query != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) &&
		!strings.Contains(strings.ToLower(p.Description), strings.ToLower(query)) {
		return false
	}
	if categoryID.Valid && p.CategoryID != categoryID {
		return false
	}
	if minCents >= 0 && p.PriceCents < minCents {
		return false
	}
	if maxCents >= 0 && p.PriceCents > maxCents {
		return false
	}
	if inStock && p.Stock <= 0 {
		return false
	}
	return true
}

func (f *fakeRepo) ListProducts(ctx context.Context, arg repository.ListProductsParams) ([]repository.ProductRow, error) {
	var matched []repository.ProductRow
	for _, p := range f.products {
		if f.matchProduct(p, arg.Query, arg.CategoryID, arg.MinPriceCents, arg.MaxPriceCents, arg.InStockOnly) {
			matched = append(matched, f.productRow(p))
		}
	}
	start := int(arg.Offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + int(arg.Limit)
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (f *fakeRepo) CountProducts(ctx context.Context, arg repository.CountProductsParams) (int64, error) {
	var count int64
	for _, p := range f.products {
		if f.matchProduct(p, arg.Query, arg.CategoryID, arg.MinPriceCents, arg.MaxPriceCents, arg.InStockOnly) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) GetProductByID(ctx context.Context, id pgtype.UUID) (repository.ProductRow, error) {
	p, ok := f.products[id]
	if !ok {
		return repository.ProductRow{}, repository.ErrNotFound
	}
	return f.productRow(p), nil
}

func (f *fakeRepo) CreateProduct(ctx context.Context, arg repository.CreateProductParams) (repository.Product, error) {
	p := repository.Product{
		ID:          newID(),
		CategoryID:  arg.CategoryID,
		Name:        arg.Name,
		Description: arg.Description,
		PriceCents:  arg.PriceCents,
		Stock:       arg.Stock,
		ImageUrl:    arg.ImageUrl,
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeRepo) UpdateProduct(ctx context.Context, arg repository.UpdateProductParams) (repository.Product, error) {
	p, ok := f.products[arg.ID]
	if !ok {
		return repository.Product{}, repository.ErrNotFound
	}
	p.CategoryID = arg.CategoryID
	p.Name = arg.Name
	p.Description = arg.Description
	p.PriceCents = arg.PriceCents
	p.Stock = arg.Stock
	p.ImageUrl = arg.ImageUrl
	f.products[arg.ID] = p
	return p, nil
}

func (f *fakeRepo) DeleteProduct(ctx context.Context, id pgtype.UUID) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeRepo) DecrementProductStock(ctx context.Context, arg repository.DecrementProductStockParams) (int64, error) {
	p, ok := f.products[arg.ID]
	if !ok || p.Stock < arg.Quantity {
		return 0, nil
	}
	p.Stock -= arg.Quantity
	f.products[arg.ID] = p
	return 1, nil
}

// --- users ---

func (f *fakeRepo) CreateUser(ctx context.Context, arg repository.CreateUserParams) (repository.User, error) {
	u := repository.User{
		ID:           newID(),
		Username:     arg.Username,
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Role:         arg.Role,
		CreatedAt:    now(),
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id pgtype.UUID) (repository.User, error) {
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetUserByUsername(ctx context.Context, username string) (repository.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (repository.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (f *fakeRepo) UpdateUserProfile(ctx context.Context, arg repository.UpdateUserProfileParams) (repository.User, error) {
	u, ok := f.users[arg.ID]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	u.FirstName = arg.FirstName
	u.LastName = arg.LastName
	u.Address = arg.Address
	u.City = arg.City
	u.PostalCode = arg.PostalCode
	u.Phone = arg.Phone
	f.users[arg.ID] = u
	return u, nil
}

// --- sessions ---

func (f *fakeRepo) CreateSession(ctx context.Context, arg repository.CreateSessionParams) (repository.Session, error) {
	s := repository.Session{
		ID:        newID(),
		Token:     arg.Token,
		UserID:    arg.UserID,
		Data:      arg.Data,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: now(),
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *fakeRepo) GetSessionByToken(ctx context.Context, token string) (repository.Session, error) {
	for _, s := range f.sessions {
		if s.Token == token && s.ExpiresAt.Time.After(time.Now()) {
			return s, nil
		}
	}
	return repository.Session{}, repository.ErrNotFound
}

func (f *fakeRepo) UpdateSessionData(ctx context.Context, arg repository.UpdateSessionDataParams) error {
	s, ok := f.sessions[arg.ID]
	if !ok {
		return repository.ErrNotFound
	}
	s.Data = arg.Data
	f.sessions[arg.ID] = s
	return nil
}

func (f *fakeRepo) DeleteSession(ctx context.Context, id pgtype.UUID) error {
	delete(f.sessions, id)
	return nil
}

// --- carts ---

func (f *fakeRepo) GetCartByUserID(ctx context.Context, userID pgtype.UUID) (repository.Cart, error) {
	for _, c := range f.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return repository.Cart{}, repository.ErrNotFound
}

func (f *fakeRepo) CreateCart(ctx context.Context, userID pgtype.UUID) (repository.Cart, error) {
	c := repository.Cart{ID: newID(), UserID: userID, CreatedAt: now()}
	f.carts[c.ID] = c
	return c, nil
}

func (f *fakeRepo) cartItemRow(item repository.CartItem) repository.CartItemRow {
	p := f.products[item.ProductID]
	return repository.CartItemRow{
		CartItem:    item,
		ProductName: p.Name,
		PriceCents:  p.PriceCents,
		Stock:       p.Stock,
	}
}

func (f *fakeRepo) GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]repository.CartItemRow, error) {
	var out []repository.CartItemRow
	for _, item := range f.cartItems {
		if item.CartID == cartID {
			out = append(out, f.cartItemRow(item))
		}
	}
	return out, nil
}

func (f *fakeRepo) GetCartItem(ctx context.Context, id pgtype.UUID) (repository.CartItemRow, error) {
	item, ok := f.cartItems[id]
	if !ok {
		return repository.CartItemRow{}, repository.ErrNotFound
	}
	return f.cartItemRow(item), nil
}

func (f *fakeRepo) GetCartItemByProduct(ctx context.Context, arg repository.GetCartItemByProductParams) (repository.CartItem, error) {
	for _, item := range f.cartItems {
		if item.CartID == arg.CartID && item.ProductID == arg.ProductID {
			return item, nil
		}
	}
	return repository.CartItem{}, repository.ErrNotFound
}

func (f *fakeRepo) CreateCartItem(ctx context.Context, arg repository.CreateCartItemParams) (repository.CartItem, error) {
	item := repository.CartItem{ID: newID(), CartID: arg.CartID, ProductID: arg.ProductID, Quantity: arg.Quantity}
	f.cartItems[item.ID] = item
	return item, nil
}

func (f *fakeRepo) UpdateCartItemQuantity(ctx context.Context, arg repository.UpdateCartItemQuantityParams) error {
	item, ok := f.cartItems[arg.ID]
	if !ok {
		return repository.ErrNotFound
	}
	item.Quantity = arg.Quantity
	f.cartItems[arg.ID] = item
	return nil
}

func (f *fakeRepo) DeleteCartItem(ctx context.Context, id pgtype.UUID) error {
	if _, ok := f.cartItems[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.cartItems, id)
	return nil
}

func (f *fakeRepo) ClearCartItems(ctx context.Context, cartID pgtype.UUID) error {
	for id, item := range f.cartItems {
		if item.CartID == cartID {
			delete(f.cartItems, id)
		}
	}
	return nil
}

// --- orders ---

func (f *fakeRepo) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	o := repository.Order{
		ID:          newID(),
		OrderNumber: arg.OrderNumber,
		UserID:      arg.UserID,
		FirstName:   arg.FirstName,
		LastName:    arg.LastName,
		Address:     arg.Address,
		City:        arg.City,
		PostalCode:  arg.PostalCode,
		Phone:       arg.Phone,
		Status:      arg.Status,
		TotalCents:  arg.TotalCents,
		OrderedAt:   arg.OrderedAt,
	}
	f.orders[o.ID] = o
	return o, nil
}

func (f *fakeRepo) GetOrderByID(ctx context.Context, id pgtype.UUID) (repository.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return repository.Order{}, repository.ErrNotFound
	}
	return o, nil
}

func (f *fakeRepo) ListOrdersByUser(ctx context.Context, arg repository.ListOrdersByUserParams) ([]repository.Order, error) {
	var out []repository.Order
	for _, o := range f.orders {
		if o.UserID == arg.UserID {
			out = append(out, o)
		}
	}
	return paginateOrders(out, arg.Limit, arg.Offset), nil
}

func (f *fakeRepo) CountOrdersByUser(ctx context.Context, userID pgtype.UUID) (int64, error) {
	var count int64
	for _, o := range f.orders {
		if o.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) ListOrders(ctx context.Context, arg repository.ListOrdersParams) ([]repository.Order, error) {
	var out []repository.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return paginateOrders(out, arg.Limit, arg.Offset), nil
}

func (f *fakeRepo) CountOrders(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func paginateOrders(orders []repository.Order, limit, offset int32) []repository.Order {
	start := int(offset)
	if start > len(orders) {
		start = len(orders)
	}
	end := start + int(limit)
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}

func (f *fakeRepo) UpdateOrderStatus(ctx context.Context, arg repository.UpdateOrderStatusParams) (repository.Order, error) {
	o, ok := f.orders[arg.ID]
	if !ok {
		return repository.Order{}, repository.ErrNotFound
	}
	o.Status = arg.Status
	f.orders[arg.ID] = o
	return o, nil
}

func (f *fakeRepo) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	item := repository.OrderItem{
		ID:                newID(),
		OrderID:           arg.OrderID,
		ProductID:         arg.ProductID,
		Quantity:          arg.Quantity,
		PriceAtOrderCents: arg.PriceAtOrderCents,
	}
	f.orderItems[item.ID] = item
	return item, nil
}

func (f *fakeRepo) GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]repository.OrderItemRow, error) {
	var out []repository.OrderItemRow
	for _, item := range f.orderItems {
		if item.OrderID == orderID {
			out = append(out, repository.OrderItemRow{
				OrderItem:   item,
				ProductName: f.products[item.ProductID].Name,
			})
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOrderItem(ctx context.Context, id pgtype.UUID) (repository.OrderItem, error) {
	item, ok := f.orderItems[id]
	if !ok {
		return repository.OrderItem{}, repository.ErrNotFound
	}
	return item, nil
}

func (f *fakeRepo) UpdateOrderItemQuantity(ctx context.Context, arg repository.UpdateOrderItemQuantityParams) error {
	item, ok := f.orderItems[arg.ID]
	if !ok {
		return repository.ErrNotFound
	}
	item.Quantity = arg.Quantity
	f.orderItems[arg.ID] = item
	return nil
}

// --- refresh tokens ---

func (f *fakeRepo) CreateRefreshToken(ctx context.Context, arg repository.CreateRefreshTokenParams) (repository.RefreshToken, error) {
	rt := repository.RefreshToken{
		ID:        newID(),
		UserID:    arg.UserID,
		TokenHash: arg.TokenHash,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: now(),
	}
	f.refreshTokens[rt.ID] = rt
	return rt, nil
}

func (f *fakeRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (repository.RefreshToken, error) {
	for _, rt := range f.refreshTokens {
		if rt.TokenHash == hash {
			return rt, nil
		}
	}
	return repository.RefreshToken{}, repository.ErrNotFound
}

func (f *fakeRepo) RevokeRefreshToken(ctx context.Context, id pgtype.UUID) error {
	rt, ok := f.refreshTokens[id]
	if !ok {
		return repository.ErrNotFound
	}
	rt.Revoked = true
	f.refreshTokens[id] = rt
	return nil
}

// --- transactions ---

type fakeTx struct {
	repo *fakeRepo
}

func (f *fakeRepo) BeginTx(ctx context.Context) (repository.Tx, error) {
	return &fakeTx{repo: f}, nil
}

func (t *fakeTx) Queries() repository.Querier        { return t.repo }
func (t *fakeTx) Commit(ctx context.Context) error   { return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { return nil }
