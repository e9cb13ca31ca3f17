package handlers

import (
	"html/template"
	"log"
	"net/http"

	repo "github.com/avelez-dev/stock-locator/internal/repo"
)

var adminProductsTemplate = template.Must(template.New("admin_products").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Stock Locator — Products</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f0f0f0; }
.error { color: #a00; }
.oos { color: #a00; font-weight: bold; }
</style>
</head>
<body>
<h1>Products</h1>
<form method="get">
<input type="text" name="q" value="{{.Query}}" placeholder="barcode, location or name">
<button type="submit">Search</button>
</form>
{{if .Error}}
<p class="error">{{.Error}}</p>
{{else}}
<p>{{.Total}} product(s)</p>
<table>
<tr><th>ID</th><th>Name</th><th>Barcode</th><th>Location</th><th>Quantity</th><th>Last updated</th></tr>
{{range .Products}}
<tr>
<td>{{.Id}}</td>
<td>{{.Name}}</td>
<td>{{.Barcode}}</td>
<td>{{.Location}}</td>
<td{{if eq .Quantity 0}} class="oos"{{end}}>{{.Quantity}}</td>
<td>{{.LastUpdated}}</td>
</tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

type adminProductsPage struct {
	Query    string
	Total    int
	Products []ProductResponse
	Error    string
}

// AdminProductsHandler renders the read-only product list with a search box,
// the admin counterpart of the JSON list endpoint.
func AdminProductsHandler(w http.ResponseWriter, r *http.Request) {
	page := adminProductsPage{Query: r.URL.Query().Get("q")}

	products, total, err := productRepo.Filter(repo.ProductFilter{Query: page.Query})
	if err != nil {
		page.Error = "could not load products"
	} else {
		page.Total = total
		page.Products = make([]ProductResponse, len(products))
		for i, p := range products {
			page.Products[i] = toProductResponse(p)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := adminProductsTemplate.Execute(w, page); err != nil {
		log.Printf("failed to render admin page: %v", err)
	}
}
