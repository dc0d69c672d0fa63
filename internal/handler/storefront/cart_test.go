package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mlindgren/vitrine/internal/domain"
	"github.com/mlindgren/vitrine/internal/handler"
)

// mockCartService implements domain.CartService with overridable behavior.
type mockCartService struct {
	summaryFunc         func(ctx context.Context) (*domain.CartSummary, error)
	addItemFunc         func(ctx context.Context, productID uuid.UUID, delta int) (*domain.CartSummary, error)
	setItemQuantityFunc func(ctx context.Context, itemID uuid.UUID, quantity int) (*domain.CartSummary, error)
	removeItemFunc      func(ctx context.Context, itemID uuid.UUID) error
	clearFunc           func(ctx context.Context) error
	mergeFunc           func(ctx context.Context) error
}

func (m *mockCartService) Summary(ctx context.Context) (*domain.CartSummary, error) {
	if m.summaryFunc != nil {
		return m.summaryFunc(ctx)
	}
	return &domain.CartSummary{Items: []domain.CartItem{}}, nil
}

func (m *mockCartService) AddItem(ctx context.Context, productID uuid.UUID, delta int) (*domain.CartSummary, error) {
	if m.addItemFunc != nil {
		return m.addItemFunc(ctx, productID, delta)
	}
	return &domain.CartSummary{Items: []domain.CartItem{}}, nil
}

func (m *mockCartService) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (*domain.CartSummary, error) {
	if m.setItemQuantityFunc != nil {
		return m.setItemQuantityFunc(ctx, itemID, quantity)
	}
	return &domain.CartSummary{Items: []domain.CartItem{}}, nil
}

func (m *mockCartService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if m.removeItemFunc != nil {
		return m.removeItemFunc(ctx, itemID)
	}
	return nil
}

func (m *mockCartService) Clear(ctx context.Context) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx)
	}
	return nil
}

func (m *mockCartService) ItemCount(ctx context.Context) (int, error) {
	summary, err := m.Summary(ctx)
	if err != nil {
		return 0, err
	}
	return summary.ItemCount, nil
}

func (m *mockCartService) MergeSessionCart(ctx context.Context) error {
	if m.mergeFunc != nil {
		return m.mergeFunc(ctx)
	}
	return nil
}

// mockUserService implements domain.UserService. Only EnsureSession matters
// for cart routes; the rest return zero values.
type mockUserService struct {
	ensureSessionFunc func(ctx context.Context) (*domain.Session, bool, error)
}

func (m *mockUserService) Signup(ctx context.Context, in domain.SignupInput) (*domain.Account, error) {
	return nil, nil
}

func (m *mockUserService) Login(ctx context.Context, creds domain.Credentials) (*domain.Account, *domain.Session, error) {
	return nil, nil, nil
}

func (m *mockUserService) Logout(ctx context.Context) error { return nil }

func (m *mockUserService) EnsureSession(ctx context.Context) (*domain.Session, bool, error) {
	if m.ensureSessionFunc != nil {
		return m.ensureSessionFunc(ctx)
	}
	return &domain.Session{ID: uuid.New(), Token: "test-token"}, false, nil
}

func (m *mockUserService) ResolveSession(ctx context.Context, token string) (*domain.Session, *domain.User, error) {
	return nil, nil, domain.ErrSessionNotFound
}

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *mockUserService) GetAccount(ctx context.Context) (*domain.Account, error) {
	return nil, domain.ErrUserNotFound
}

func (m *mockUserService) UpdateProfile(ctx context.Context, p domain.Profile) (*domain.Account, error) {
	return nil, domain.ErrUserNotFound
}

func newTestRenderer(t *testing.T) *handler.Renderer {
	t.Helper()
	renderer, err := handler.NewRenderer()
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}
	return renderer
}

func TestCartAdd_Async(t *testing.T) {
	productID := uuid.New()

	tests := []struct {
		name         string
		addItemFunc  func(ctx context.Context, productID uuid.UUID, delta int) (*domain.CartSummary, error)
		expectedBody map[string]interface{}
	}{
		{
			name: "success",
			addItemFunc: func(ctx context.Context, id uuid.UUID, delta int) (*domain.CartSummary, error) {
				return &domain.CartSummary{ItemCount: 3}, nil
			},
			expectedBody: map[string]interface{}{
				"success":         true,
				"cart_url":        "/cart",
				"cart_item_count": float64(3),
			},
		},
		{
			name: "stock violation",
			addItemFunc: func(ctx context.Context, id uuid.UUID, delta int) (*domain.CartSummary, error) {
				return nil, domain.NewValidationError("cart.add_item", "quantity", "Max stock is 5")
			},
			expectedBody: map[string]interface{}{
				"success": false,
				"error":   "Max stock is 5",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := &mockCartService{addItemFunc: tt.addItemFunc}
			h := NewCartHandler(cart, &mockUserService{}, newTestRenderer(t), false)

			req := httptest.NewRequest(http.MethodPost, "/cart/add/"+productID.String(), nil)
			req.SetPathValue("product_id", productID.String())
			req.Header.Set("X-Requested-With", "XMLHttpRequest")
			w := httptest.NewRecorder()
			h.Add(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid response body: %v", err)
			}
			for key, want := range tt.expectedBody {
				if body[key] != want {
					t.Errorf("%s = %v, want %v", key, body[key], want)
				}
			}
		})
	}
}

func TestCartAdd_Redirects(t *testing.T) {
	productID := uuid.New()
	h := NewCartHandler(&mockCartService{}, &mockUserService{}, newTestRenderer(t), false)

	req := httptest.NewRequest(http.MethodPost, "/cart/add/"+productID.String(), nil)
	req.SetPathValue("product_id", productID.String())
	w := httptest.NewRecorder()
	h.Add(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/cart" {
		t.Errorf("Location = %q, want /cart", loc)
	}
}

func TestCartAdd_MintsSessionCookie(t *testing.T) {
	productID := uuid.New()
	users := &mockUserService{
		ensureSessionFunc: func(ctx context.Context) (*domain.Session, bool, error) {
			return &domain.Session{ID: uuid.New(), Token: "fresh-token"}, true, nil
		},
	}
	h := NewCartHandler(&mockCartService{}, users, newTestRenderer(t), false)

	req := httptest.NewRequest(http.MethodPost, "/cart/add/"+productID.String(), nil)
	req.SetPathValue("product_id", productID.String())
	w := httptest.NewRecorder()
	h.Add(w, req)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "fresh-token" {
		t.Errorf("cookie value = %q, want fresh-token", cookies[0].Value)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestCartAdd_BadProductID(t *testing.T) {
	h := NewCartHandler(&mockCartService{}, &mockUserService{}, newTestRenderer(t), false)

	req := httptest.NewRequest(http.MethodPost, "/cart/add/not-a-uuid", nil)
	req.SetPathValue("product_id", "not-a-uuid")
	w := httptest.NewRecorder()
	h.Add(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCartAjaxUpdate(t *testing.T) {
	itemID := uuid.New()
	cart := &mockCartService{
		setItemQuantityFunc: func(ctx context.Context, id uuid.UUID, quantity int) (*domain.CartSummary, error) {
			return &domain.CartSummary{
				Items: []domain.CartItem{
					{ID: itemID, Quantity: quantity, Subtotal: 3998},
				},
				Total:     5997,
				ItemCount: 3,
			}, nil
		},
	}
	h := NewCartHandler(cart, &mockUserService{}, newTestRenderer(t), false)

	body := `{"item_id": "` + itemID.String() + `", "quantity": 2}`
	req := httptest.NewRequest(http.MethodPost, "/cart/ajax/update-item", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AjaxUpdate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["success"] != true {
		t.Errorf("success = %v", resp["success"])
	}
	if resp["item_subtotal"] != "39.98" {
		t.Errorf("item_subtotal = %v, want %q", resp["item_subtotal"], "39.98")
	}
	if resp["cart_total"] != "59.97" {
		t.Errorf("cart_total = %v, want %q", resp["cart_total"], "59.97")
	}
	if resp["cart_item_count"] != float64(3) {
		t.Errorf("cart_item_count = %v, want 3", resp["cart_item_count"])
	}
}

func TestCartAjaxUpdate_StockViolation(t *testing.T) {
	cart := &mockCartService{
		setItemQuantityFunc: func(ctx context.Context, id uuid.UUID, quantity int) (*domain.CartSummary, error) {
			return nil, domain.NewValidationError("cart.set_quantity", "quantity", "Max stock is 2")
		},
	}
	h := NewCartHandler(cart, &mockUserService{}, newTestRenderer(t), false)

	body := `{"item_id": "` + uuid.NewString() + `", "quantity": 5}`
	req := httptest.NewRequest(http.MethodPost, "/cart/ajax/update-item", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AjaxUpdate(w, req)

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["success"] != false {
		t.Errorf("success = %v, want false", resp["success"])
	}
	if !strings.Contains(resp["error"].(string), "Max stock is 2") {
		t.Errorf("error = %v", resp["error"])
	}
}

func TestCartView(t *testing.T) {
	cart := &mockCartService{
		summaryFunc: func(ctx context.Context) (*domain.CartSummary, error) {
			return &domain.CartSummary{
				Items: []domain.CartItem{
					{ID: uuid.New(), ProductName: "Walnut Desk", UnitPrice: 25000, Quantity: 1, Stock: 3, Subtotal: 25000},
				},
				Total:     25000,
				ItemCount: 1,
			}, nil
		},
	}
	h := NewCartHandler(cart, &mockUserService{}, newTestRenderer(t), false)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	h.View(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "Walnut Desk") {
		t.Error("expected the cart page to list the product")
	}
	if !strings.Contains(w.Body.String(), "250.00") {
		t.Error("expected the cart page to show the total")
	}
}

func TestCartRemove(t *testing.T) {
	var removed uuid.UUID
	cart := &mockCartService{
		removeItemFunc: func(ctx context.Context, itemID uuid.UUID) error {
			removed = itemID
			return nil
		},
	}
	h := NewCartHandler(cart, &mockUserService{}, newTestRenderer(t), false)

	itemID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/cart/remove/"+itemID.String(), nil)
	req.SetPathValue("id", itemID.String())
	w := httptest.NewRecorder()
	h.Remove(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if removed != itemID {
		t.Errorf("removed = %s, want %s", removed, itemID)
	}
}
