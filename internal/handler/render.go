package handler

import (
	"fmt"
	"html/template"
	"net/http"
)

// layout is the shared page shell. Pages define "title" and "content".
const layout = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{block "title" .}}Vitrine{{end}}</title>
</head>
<body>
<nav>
<a href="/products">Products</a>
<a href="/cart">Cart{{with .CartCount}} ({{.}}){{end}}</a>
{{if .User}}
<a href="/orders">Orders</a>
<a href="/account/profile">{{.User.Username}}</a>
<form method="post" action="/logout" style="display:inline"><button>Log out</button></form>
{{else}}
<a href="/login">Log in</a>
<a href="/signup">Sign up</a>
{{end}}
</nav>
{{range .Messages}}<p class="message">{{.}}</p>{{end}}
{{block "content" .}}{{end}}
</body>
</html>`

var pages = map[string]string{
	"products": `{{define "title"}}Products{{end}}
{{define "content"}}
<h1>Products</h1>
<form method="get" action="/products">
<input name="q" placeholder="Search" value="{{.Filter.Query}}">
<select name="category">
<option value="">All categories</option>
{{range .Categories}}<option value="{{.ID}}">{{.Name}}</option>{{end}}
</select>
<input name="min_price" placeholder="Min price">
<input name="max_price" placeholder="Max price">
<label><input type="checkbox" name="in_stock" value="on" {{if .Filter.InStockOnly}}checked{{end}}> In stock only</label>
<button>Filter</button>
</form>
<ul>
{{range .Page.Products}}
<li><a href="/products/{{.ID}}">{{.Name}}</a> - {{.Price}} ({{if gt .Stock 0}}{{.Stock}} in stock{{else}}out of stock{{end}})</li>
{{else}}
<li>No products found.</li>
{{end}}
</ul>
<p>Page {{.Page.Page}} of {{.Page.TotalPages}}</p>
{{end}}`,

	"product_detail": `{{define "title"}}{{.Product.Name}}{{end}}
{{define "content"}}
<h1>{{.Product.Name}}</h1>
<p>{{.Product.Description}}</p>
<p>Category: {{.Product.CategoryName}}</p>
<p>Price: {{.Product.Price}}</p>
<p>{{if gt .Product.Stock 0}}{{.Product.Stock}} in stock{{else}}Out of stock{{end}}</p>
{{if .InCartQuantity}}<p>{{.InCartQuantity}} in your cart</p>{{end}}
{{if gt .Product.Stock 0}}
<form method="post" action="/cart/add/{{.Product.ID}}"><button>Add to cart</button></form>
{{end}}
{{end}}`,

	"cart": `{{define "title"}}Your cart{{end}}
{{define "content"}}
<h1>Your cart</h1>
{{if .Summary.Items}}
<table>
{{range .Summary.Items}}
<tr>
<td>{{.ProductName}}</td>
<td>{{.UnitPrice}}</td>
<td><input type="number" value="{{.Quantity}}" min="1" max="{{.Stock}}" data-item-id="{{.ID}}"></td>
<td>{{.Subtotal}}</td>
<td><form method="post" action="/cart/remove/{{.ID}}"><button>Remove</button></form></td>
</tr>
{{end}}
</table>
<p>Total: {{.Summary.Total}}</p>
<form method="post" action="/cart/clear"><button>Clear cart</button></form>
<a href="/checkout">Checkout</a>
{{else}}
<p>Your cart is empty.</p>
{{end}}
{{end}}`,

	"checkout": `{{define "title"}}Checkout{{end}}
{{define "content"}}
<h1>Checkout</h1>
{{range $field, $msg := .Errors}}<p class="error">{{$field}}: {{$msg}}</p>{{end}}
<form method="post" action="/checkout">
<input name="first_name" placeholder="First name" value="{{.Form.FirstName}}">
<input name="last_name" placeholder="Last name" value="{{.Form.LastName}}">
<input name="address" placeholder="Address" value="{{.Form.Address}}">
<input name="city" placeholder="City" value="{{.Form.City}}">
<input name="postal_code" placeholder="Postal code" value="{{.Form.PostalCode}}">
<input name="phone" placeholder="Phone" value="{{.Form.Phone}}">
<button>Place order</button>
</form>
<p>Total: {{.Summary.Total}}</p>
{{end}}`,

	"confirmation": `{{define "title"}}Order confirmed{{end}}
{{define "content"}}
<h1>Thank you!</h1>
<p>Your order {{.Order.Number}} has been placed.</p>
<p>Total: {{.Order.Total}}</p>
<a href="/orders/{{.Order.ID}}">View order</a>
{{end}}`,

	"orders": `{{define "title"}}Your orders{{end}}
{{define "content"}}
<h1>Your orders</h1>
<ul>
{{range .Page.Orders}}
<li><a href="/orders/{{.ID}}">{{.Number}}</a> - {{.Status}} - {{.Total}} - {{.OrderedAt.Format "2006-01-02"}}</li>
{{else}}
<li>No orders yet.</li>
{{end}}
</ul>
<p>Page {{.Page.Page}} of {{.Page.TotalPages}}</p>
{{end}}`,

	"order_detail": `{{define "title"}}Order {{.Order.Number}}{{end}}
{{define "content"}}
<h1>Order {{.Order.Number}}</h1>
<p>Status: {{.Order.Status}}</p>
<p>Placed: {{.Order.OrderedAt.Format "2006-01-02 15:04"}}</p>
<p>Ship to: {{.Order.Shipping.FirstName}} {{.Order.Shipping.LastName}}, {{.Order.Shipping.Address}}, {{.Order.Shipping.City}} {{.Order.Shipping.PostalCode}}</p>
<table>
{{range .Order.Items}}
<tr><td>{{.ProductName}}</td><td>{{.Quantity}} x {{.PriceAtOrder}}</td><td>{{.Subtotal}}</td></tr>
{{end}}
</table>
<p>Total: {{.Order.Total}}</p>
{{end}}`,

	"signup": `{{define "title"}}Sign up{{end}}
{{define "content"}}
<h1>Sign up</h1>
{{range $field, $msg := .Errors}}<p class="error">{{$field}}: {{$msg}}</p>{{end}}
<form method="post" action="/signup">
<input name="username" placeholder="Username" value="{{.Form.Username}}">
<input name="email" placeholder="Email" value="{{.Form.Email}}">
<input type="password" name="password" placeholder="Password">
<button>Sign up</button>
</form>
{{end}}`,

	"login": `{{define "title"}}Log in{{end}}
{{define "content"}}
<h1>Log in</h1>
{{range $field, $msg := .Errors}}<p class="error">{{$field}}: {{$msg}}</p>{{end}}
<form method="post" action="/login{{with .ReturnTo}}?return_to={{.}}{{end}}">
<input name="username" placeholder="Username">
<input type="password" name="password" placeholder="Password">
<button>Log in</button>
</form>
{{end}}`,

	"profile": `{{define "title"}}Profile{{end}}
{{define "content"}}
<h1>Profile</h1>
<p>{{.Account.Username}} ({{.Account.Email}})</p>
{{range $field, $msg := .Errors}}<p class="error">{{$field}}: {{$msg}}</p>{{end}}
<form method="post" action="/account/profile">
<input name="first_name" placeholder="First name" value="{{.Account.Profile.FirstName}}">
<input name="last_name" placeholder="Last name" value="{{.Account.Profile.LastName}}">
<input name="address" placeholder="Address" value="{{.Account.Profile.Address}}">
<input name="city" placeholder="City" value="{{.Account.Profile.City}}">
<input name="postal_code" placeholder="Postal code" value="{{.Account.Profile.PostalCode}}">
<input name="phone" placeholder="Phone" value="{{.Account.Profile.Phone}}">
<button>Save</button>
</form>
{{end}}`,
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page template against the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for name, src := range pages {
		t, err := template.New("layout").Parse(layout)
		if err != nil {
			return nil, fmt.Errorf("failed to parse layout: %w", err)
		}
		if _, err := t.Parse(src); err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// RenderHTTP renders a page template to the response.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data map[string]interface{}) {
	t, ok := r.templates[name]
	if !ok {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}
