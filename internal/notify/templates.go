package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/timbermagic/timbermagic-api/internal/models"
)

const (
	BusinessName = "Tamam Timber Magic"
	currency     = "₪"
)

// notes are admin-authored markdown; raw HTML in them stays escaped.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return currency + d.StringFixed(2) },
	"qty":   func(d decimal.Decimal) string { return d.String() },
}

var (
	invoiceTmpl      = template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTML))
	requestAdminTmpl = template.Must(template.New("request_admin").Funcs(funcs).Parse(requestAdminHTML))
	confirmationTmpl = template.Must(template.New("request_confirmation").Funcs(funcs).Parse(confirmationHTML))
	overdueTmpl      = template.Must(template.New("overdue").Funcs(funcs).Parse(overdueHTML))
)

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ======================================================
// Invoice
// ======================================================

func InvoiceSubject(inv *models.Invoice) string {
	return fmt.Sprintf("Invoice %s - %s", inv.InvoiceNumber, BusinessName)
}

// InvoiceEmail renders the line-item table sent to the customer.
// paymentLink is optional.
func InvoiceEmail(inv *models.Invoice, paymentLink string) (string, error) {
	var notes template.HTML
	if inv.Notes != nil && *inv.Notes != "" {
		html, err := markdown(*inv.Notes)
		if err != nil {
			return "", fmt.Errorf("render notes: %w", err)
		}
		notes = html
	}

	customerName := ""
	if inv.Customer != nil {
		customerName = inv.Customer.Name
	}

	return render(invoiceTmpl, map[string]any{
		"Invoice":      inv,
		"CustomerName": customerName,
		"Notes":        notes,
		"PaymentLink":  paymentLink,
		"Business":     BusinessName,
	})
}

// ======================================================
// Quote requests
// ======================================================

type RequestNotice struct {
	Name        string
	Email       string
	Phone       string
	ServiceName string
	Description string
	Images      []InspirationImage
}

func RequestAdminSubject(n RequestNotice) string {
	s := "New Quote Request from " + n.Name
	if len(n.Images) > 0 {
		s += fmt.Sprintf(" (%d images)", len(n.Images))
	}
	return s
}

func RequestAdminEmail(n RequestNotice) (string, error) {
	return render(requestAdminTmpl, n)
}

func RequestConfirmationSubject() string {
	return "Thank you for your request - " + BusinessName
}

func RequestConfirmationEmail(n RequestNotice) (string, error) {
	return render(confirmationTmpl, map[string]any{
		"Name":     n.Name,
		"Business": BusinessName,
	})
}

// RequestSMS is the short admin alert for a new quote request.
func RequestSMS(n RequestNotice) string {
	return fmt.Sprintf("New quote request from %s (%s): %s", n.Name, n.Phone, truncate(n.Description, 100))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// ======================================================
// Overdue digest
// ======================================================

func OverdueSubject(count int, today time.Time) string {
	return fmt.Sprintf("%d overdue invoice(s) - %s", count, today.Format(models.DateLayout))
}

func OverdueEmail(invoices []models.Invoice, today time.Time) (string, error) {
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.Total)
	}
	return render(overdueTmpl, map[string]any{
		"Invoices": invoices,
		"Today":    today.Format(models.DateLayout),
		"Total":    total,
	})
}

const invoiceHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #8B4513;">{{.Business}}</h1>
  <h2>Invoice {{.Invoice.InvoiceNumber}}</h2>
  {{if .CustomerName}}<p>Dear {{.CustomerName}},</p>{{end}}
  <table style="width: 100%; border-collapse: collapse;">
    <thead>
      <tr style="background: #f5f5f5;">
        <th style="padding: 8px; text-align: left;">Description</th>
        <th style="padding: 8px; text-align: right;">Quantity</th>
        <th style="padding: 8px; text-align: right;">Unit Price</th>
        <th style="padding: 8px; text-align: right;">Total</th>
      </tr>
    </thead>
    <tbody>
      {{range .Invoice.Items}}<tr>
        <td style="padding: 8px; border-bottom: 1px solid #eee;">{{.Description}}</td>
        <td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">{{qty .Quantity}}</td>
        <td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">{{money .UnitPrice}}</td>
        <td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">{{money .Total}}</td>
      </tr>{{end}}
    </tbody>
  </table>
  <p style="text-align: right;">Subtotal: {{money .Invoice.Subtotal}}</p>
  <p style="text-align: right;">Tax: {{money .Invoice.Tax}}</p>
  <p style="text-align: right; font-size: 18px;"><strong>Total: {{money .Invoice.Total}}</strong></p>
  {{with .Invoice.DueDate.String}}<p>Due Date: {{.}}</p>{{end}}
  {{if .Notes}}<div><strong>Notes:</strong>{{.Notes}}</div>{{end}}
  {{if .PaymentLink}}<p><a href="{{.PaymentLink}}" style="background: #8B4513; color: #fff; padding: 10px 16px; text-decoration: none;">Pay online</a></p>{{end}}
  <p>Thank you for your business!</p>
  <p>{{.Business}}</p>
</div>`

const requestAdminHTML = `<div style="font-family: Arial, sans-serif;">
  <h2>New Quote Request</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  {{if .ServiceName}}<p><strong>Service:</strong> {{.ServiceName}}</p>{{end}}
  <p><strong>Description:</strong></p>
  <p style="white-space: pre-wrap;">{{.Description}}</p>
  {{if .Images}}<h3>Inspiration images ({{len .Images}})</h3>
  {{range .Images}}<p><img src="{{.DataURL}}" alt="{{.Filename}}" style="max-width: 100%;"></p>{{end}}{{end}}
</div>`

const confirmationHTML = `<div style="font-family: Arial, sans-serif;">
  <h2>Thank you, {{.Name}}!</h2>
  <p>We received your quote request and will get back to you shortly.</p>
  <p>{{.Business}}</p>
</div>`

const overdueHTML = `<div style="font-family: Arial, sans-serif;">
  <h2>Overdue invoices on {{.Today}}</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><th align="left">Invoice</th><th align="left">Customer</th><th align="left">Due</th><th align="right">Total</th></tr>
    {{range .Invoices}}<tr>
      <td>{{.InvoiceNumber}}</td>
      <td>{{if .Customer}}{{.Customer.Name}}{{end}}</td>
      <td>{{.DueDate.String}}</td>
      <td align="right">{{money .Total}}</td>
    </tr>{{end}}
  </table>
  <p><strong>Outstanding: {{money .Total}}</strong></p>
</div>`
