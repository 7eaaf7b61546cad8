package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"printshop_backend/internal/models"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Renderer produces the printable production sheet for an order.
type Renderer interface {
	ProductionSheet(ctx context.Context, order *models.Order, settings *models.CompanySettings) ([]byte, error)
}

// ChromeRenderer renders HTML to PDF through a headless Chrome instance.
type ChromeRenderer struct{}

// NewChromeRenderer creates a new ChromeRenderer.
func NewChromeRenderer() *ChromeRenderer {
	return &ChromeRenderer{}
}

const productionSheetTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; margin: 24mm 18mm; }
  header { display: flex; justify-content: space-between; border-bottom: 2px solid #1a1a1a; padding-bottom: 8px; }
  h1 { font-size: 20px; margin: 0; }
  .company { font-size: 11px; text-align: right; line-height: 1.5; }
  .meta { margin: 16px 0; font-size: 12px; }
  .meta span { display: inline-block; margin-right: 24px; }
  .status { text-transform: uppercase; font-weight: bold; }
  table { width: 100%; border-collapse: collapse; font-size: 12px; margin-top: 8px; }
  th { text-align: left; border-bottom: 1px solid #999; padding: 6px 8px; text-transform: uppercase; font-size: 10px; }
  td { border-bottom: 1px solid #e0e0e0; padding: 6px 8px; }
  td.qty { text-align: right; }
  footer { margin-top: 24px; font-size: 10px; color: #777; }
</style>
</head>
<body>
<header>
  <h1>Production Sheet</h1>
  <div class="company">
    <strong>{{.Settings.CompanyName}}</strong><br>
    {{with .Settings.AddressLine1}}{{.}}<br>{{end}}
    {{with .Settings.AddressLine2}}{{.}}<br>{{end}}
    {{if or .Settings.ZipCode .Settings.City}}{{with .Settings.ZipCode}}{{.}} {{end}}{{with .Settings.City}}{{.}}{{end}}<br>{{end}}
    {{with .Settings.Email}}{{.}}<br>{{end}}
    {{with .Settings.Phone}}{{.}}{{end}}
  </div>
</header>
<div class="meta">
  <span><strong>Order:</strong> {{.ShortID}}</span>
  <span><strong>Client:</strong> {{.Order.CustomerName}}</span>
  <span><strong>Status:</strong> <span class="status">{{.Order.Status}}</span></span>
  <span><strong>Date:</strong> {{.Order.CreatedAt.Format "02.01.2006"}}</span>
</div>
<table>
  <thead>
    <tr>
      <th>Product</th>
      <th>Color</th>
      <th>Size</th>
      <th class="qty">Qty</th>
      <th>Branding</th>
      <th>Position</th>
    </tr>
  </thead>
  <tbody>
    {{range .Order.Items}}
    <tr>
      <td>{{if .ProductName}}{{.ProductName}}{{else}}{{.ProductID}}{{end}}</td>
      <td>{{.Color}}</td>
      <td>{{.Size}}</td>
      <td class="qty">{{.Quantity}}</td>
      <td>{{.BrandingMethod}}</td>
      <td>{{.BrandingPosition}}</td>
    </tr>
    {{end}}
  </tbody>
</table>
<footer>Generated {{.Generated.Format "02.01.2006 15:04"}} &middot; {{.Order.ItemsCount}} pieces total</footer>
</body>
</html>`

var sheetTmpl = template.Must(template.New("production_sheet").Parse(productionSheetTemplate))

type sheetData struct {
	Order     *models.Order
	Settings  *models.CompanySettings
	ShortID   string
	Generated time.Time
}

// ProductionSheet renders the order to HTML, loads it in headless Chrome and
// prints it to an A4 PDF.
func (r *ChromeRenderer) ProductionSheet(ctx context.Context, order *models.Order, settings *models.CompanySettings) ([]byte, error) {
	var buf bytes.Buffer
	data := sheetData{
		Order:     order,
		Settings:  settings,
		ShortID:   shortOrderID(order.ID),
		Generated: time.Now(),
	}
	if err := sheetTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render production sheet template: %w", err)
	}

	// Chrome needs a navigable URL; a temp file avoids data-URI size limits.
	tmpFile, err := os.CreateTemp("", "production-sheet-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file for rendering: %w", err)
	}
	defer os.Remove(tmpFile.Name())
	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write render input: %w", err)
	}
	tmpFile.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(tmpFile.Name())),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return pdfBuf, nil
}

// shortOrderID is the human-facing order reference printed on the sheet.
func shortOrderID(id string) string {
	ref := id
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return "#" + strings.ToUpper(ref)
}

// detectChromePath finds a usable Chrome/Chromium binary, preferring the
// CHROME_PATH environment variable.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
