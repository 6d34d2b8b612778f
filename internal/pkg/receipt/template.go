// internal/pkg/receipt/template.go
package receipt

// receiptTemplate is the HTML layout rendered to PDF
const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #333; margin: 40px; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .shop { color: #777; font-size: 12px; margin-bottom: 30px; }
  .meta { margin-bottom: 20px; font-size: 13px; }
  table { width: 100%; border-collapse: collapse; font-size: 13px; }
  th { text-align: left; border-bottom: 2px solid #333; padding: 6px 4px; }
  td { border-bottom: 1px solid #ddd; padding: 6px 4px; }
  .num { text-align: right; }
  .totals { margin-top: 20px; width: 40%; margin-left: 60%; font-size: 13px; }
  .totals td { border: none; padding: 3px 4px; }
  .totals .grand td { border-top: 2px solid #333; font-weight: bold; }
</style>
</head>
<body>
  <h1>{{.ShopName}}</h1>
  <div class="shop">
    {{.ShopEmail}}{{if .ShopPhone}} &middot; {{.ShopPhone}}{{end}}
  </div>

  <div class="meta">
    <div><strong>Order:</strong> {{.OrderID}}</div>
    <div><strong>Date:</strong> {{.Date}}</div>
  </div>

  <table>
    <tr>
      <th>Item</th>
      <th>Variant</th>
      <th class="num">Qty</th>
      <th class="num">Unit Price</th>
      <th class="num">Subtotal</th>
    </tr>
    {{range .Lines}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{.Variant}}</td>
      <td class="num">{{.Quantity}}</td>
      <td class="num">{{.Price}}</td>
      <td class="num">{{.Subtotal}}</td>
    </tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td class="num">{{.Subtotal}}</td></tr>
    <tr><td>Shipping</td><td class="num">{{.ShippingFee}}</td></tr>
    <tr class="grand"><td>Total</td><td class="num">{{.Total}}</td></tr>
  </table>
</body>
</html>`
