package pdf

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os/exec"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin/internal/application/billing"
)

//go:embed invoice.html.tmpl
var invoiceHTML string

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(d decimal.Decimal) string { return formatMoney(d.StringFixed(2)) },
	"date":  func(t time.Time) string { return t.UTC().Format("02/01/2006 15:04") },
}).Parse(invoiceHTML))

var _ billing.InvoiceRenderer = (*WkhtmltopdfRenderer)(nil)

// WkhtmltopdfRenderer arma la factura en HTML y la convierte con el binario wkhtmltopdf
// (HTML por stdin, PDF por stdout).
type WkhtmltopdfRenderer struct {
	binPath string
	timeout time.Duration
}

// NewWkhtmltopdfRenderer construye el renderer. timeout <= 0 no acota la ejecución más allá del ctx.
func NewWkhtmltopdfRenderer(binPath string, timeout time.Duration) *WkhtmltopdfRenderer {
	return &WkhtmltopdfRenderer{binPath: binPath, timeout: timeout}
}

// RenderHTML ejecuta solo la plantilla.
func RenderHTML(doc *billing.InvoiceDocument) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("pdf: plantilla html: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderInvoice devuelve el PDF producido por wkhtmltopdf.
func (r *WkhtmltopdfRenderer) RenderInvoice(ctx context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	html, err := RenderHTML(doc)
	if err != nil {
		return nil, err
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.binPath,
		"--quiet",
		"--encoding", "utf-8",
		"--page-size", "A4",
		"--enable-local-file-access",
		"-", "-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(html)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("wkhtmltopdf: %w", ctx.Err())
		}
		return nil, fmt.Errorf("wkhtmltopdf: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
