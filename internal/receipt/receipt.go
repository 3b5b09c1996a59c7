// Package receipt renders a printable HTML receipt for a committed order.
// The order engine never depends on this package; it is presentation only.
package receipt

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"qahwaan-system/internal/database/models"
)

const title = "Cafe Qahwaan — Receipt"

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": Money,
	"mul": func(a, b float64) float64 {
		return a * b
	},
	"when": func(t time.Time) string {
		return t.Format("02 Jan 2006 15:04")
	},
	"orDash": func(s *string) string {
		if s == nil || *s == "" {
			return "-"
		}
		return *s
	},
}).Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
  body{font-family:system-ui,Arial,sans-serif;padding:20px;color:#222}
  h1{font-size:18px;margin:0 0 8px}
  table{width:100%;border-collapse:collapse;margin-top:10px}
  td{padding:4px 0;border-bottom:1px dashed #ccc}
  .right{float:right}
</style></head>
<body>
  <h1>{{.Title}}</h1>
  <div>Spot: <strong>{{orDash .Order.Spot}}</strong> <span class="right">{{when .Order.CreatedAt}}</span></div>
  <table>
  {{- range .Order.Cart}}
    <tr><td>{{.Name}}</td><td style="text-align:center">{{.Qty}}</td><td style="text-align:right">{{money (mul .Price .Qty)}}</td></tr>
  {{- end}}
  </table>
  <p><strong>Subtotal:</strong> {{money .Order.Subtotal}}</p>
  <p><strong>Payment:</strong> {{.Order.PaymentMethod}} &nbsp; <strong>Received:</strong> {{money .Order.AmountReceived}} &nbsp; <strong>Change:</strong> {{money .Order.ChangeDue}}</p>
  <p><strong>Staff:</strong> {{.Order.Staff}}</p>
  <hr>
  <p>Thanks for visiting Cafe Qahwaan!</p>
</body></html>`))

// Money formats an amount in the venue's currency at 2 decimal places.
func Money(amount float64) string {
	return fmt.Sprintf("£%.2f", amount)
}

// Render returns the receipt HTML for an order.
func Render(order *models.Order) (string, error) {
	var buf strings.Builder
	err := receiptTmpl.Execute(&buf, struct {
		Title string
		Order *models.Order
	}{Title: title, Order: order})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
