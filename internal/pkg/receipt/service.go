// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/api"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
)

// Service renders PDF receipts for confirmed orders
type Service struct {
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new receipt service
func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		config: cfg,
		logger: logger,
	}
}

// receiptLine is one cart line prepared for the template
type receiptLine struct {
	Name     string
	Variant  string
	Quantity int
	Price    string
	Subtotal string
}

// receiptData is the template context
type receiptData struct {
	ShopName    string
	ShopEmail   string
	ShopPhone   string
	OrderID     string
	Date        string
	Lines       []receiptLine
	Subtotal    string
	ShippingFee string
	Total       string
}

// Generate renders the receipt PDF for a confirmed order
func (s *Service) Generate(order *api.Order, lines cart.Snapshot, pricing checkout.Pricing) (*bytes.Buffer, error) {
	data := receiptData{
		ShopName:    s.config.Receipt.ShopName,
		ShopEmail:   s.config.Receipt.ShopEmail,
		ShopPhone:   s.config.Receipt.ShopPhone,
		OrderID:     order.ID,
		Date:        time.Now().Format("January 2, 2006"),
		Subtotal:    formatAmount(pricing.Subtotal),
		ShippingFee: formatAmount(pricing.ShippingFee),
		Total:       formatAmount(pricing.Total),
	}
	for _, line := range lines {
		data.Lines = append(data.Lines, receiptLine{
			Name:     line.Name,
			Variant:  variantLabel(line),
			Quantity: line.Quantity,
			Price:    formatAmount(line.UnitPrice),
			Subtotal: formatAmount(line.Subtotal()),
		})
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// Write renders the receipt and saves it under the configured output
// directory as receipt-<orderID>.pdf. It satisfies checkout.ReceiptWriter.
func (s *Service) Write(order *api.Order, lines cart.Snapshot, pricing checkout.Pricing) error {
	buf, err := s.Generate(order, lines, pricing)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.config.Receipt.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create receipt directory: %w", err)
	}

	path := filepath.Join(s.config.Receipt.OutputDir, fmt.Sprintf("receipt-%s.pdf", order.ID))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}

	s.logger.WithField("path", path).Info("Order receipt written")
	return nil
}

// generateHTML generates HTML content from the receipt template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// formatAmount renders minor currency units as "Rs 1,500.00" style text
func formatAmount(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRs %s.%02d", sign, groupThousands(amount/100), amount%100)
}

func groupThousands(n int64) string {
	digits := fmt.Sprintf("%d", n)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups[0:]...)
	return strings.Join(groups, ",")
}

func variantLabel(line cart.Line) string {
	var parts []string
	if line.Size != "" {
		parts = append(parts, "Size: "+line.Size)
	}
	if line.Color != "" {
		parts = append(parts, "Color: "+line.Color)
	}
	return strings.Join(parts, " | ")
}
