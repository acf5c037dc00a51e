package pdf_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin/internal/application/billing"
	"github.com/jhoicas/shop-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/shop-admin/pkg/config"
)

func sampleDoc() *billing.InvoiceDocument {
	return &billing.InvoiceDocument{
		SaleID:   "6f1c9a52-3c2e-4a53-9a8e-1b1d2c3e4f50",
		Date:     time.Date(2024, 3, 10, 15, 4, 0, 0, time.UTC),
		ShopName: "Papelería Central",
		SoldBy:   "beto",
		Lines: []billing.InvoiceLine{{
			ItemName:  "Cuaderno <rayado>",
			Quantity:  3,
			UnitPrice: decimal.RequireFromString("1250.5"),
			Subtotal:  decimal.RequireFromString("3751.5"),
		}},
		Total: decimal.RequireFromString("3751.5"),
	}
}

func TestMarotoRenderer_GeneraPDF(t *testing.T) {
	out, err := pdf.NewMarotoRenderer().RenderInvoice(context.Background(), sampleDoc())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "la salida debe ser un PDF")
}

func TestMarotoRenderer_LogoNoSoportadoSeOmite(t *testing.T) {
	doc := sampleDoc()
	doc.LogoPath = "/no/existe/logo.webp"
	out, err := pdf.NewMarotoRenderer().RenderInvoice(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderHTML_EscapaContenido(t *testing.T) {
	html, err := pdf.RenderHTML(sampleDoc())
	require.NoError(t, err)
	s := string(html)
	assert.Contains(t, s, "Cuaderno &lt;rayado&gt;")
	assert.Contains(t, s, "$1.250,50")
	assert.Contains(t, s, "$3.751,50")
	assert.Contains(t, s, "10/03/2024 15:04")
	assert.Contains(t, s, "Atendido por: beto")
	assert.NotContains(t, s, "<img")
}

// fakeBinary escribe un script que hace de wkhtmltopdf.
func fakeBinary(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requiere /bin/sh")
	}
	path := filepath.Join(t.TempDir(), "wkhtmltopdf")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestWkhtmltopdfRenderer_DevuelveStdout(t *testing.T) {
	bin := fakeBinary(t, `cat > /dev/null; printf '%%PDF-1.4 fake'`)
	out, err := pdf.NewWkhtmltopdfRenderer(bin, 5*time.Second).RenderInvoice(context.Background(), sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(out))
}

func TestWkhtmltopdfRenderer_FallaDelBinario(t *testing.T) {
	bin := fakeBinary(t, `cat > /dev/null; echo "QFont: boom" >&2; exit 1`)
	_, err := pdf.NewWkhtmltopdfRenderer(bin, 5*time.Second).RenderInvoice(context.Background(), sampleDoc())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QFont: boom")
}

func TestWkhtmltopdfRenderer_Timeout(t *testing.T) {
	bin := fakeBinary(t, `exec sleep 5`)
	start := time.Now()
	_, err := pdf.NewWkhtmltopdfRenderer(bin, 100*time.Millisecond).RenderInvoice(context.Background(), sampleDoc())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestWkhtmltopdfRenderer_BinarioInexistente(t *testing.T) {
	_, err := pdf.NewWkhtmltopdfRenderer(filepath.Join(t.TempDir(), "nope"), time.Second).
		RenderInvoice(context.Background(), sampleDoc())
	assert.Error(t, err)
}

func TestNewRenderer(t *testing.T) {
	r, err := pdf.NewRenderer(config.InvoiceConfig{Renderer: config.RendererMaroto})
	require.NoError(t, err)
	assert.IsType(t, &pdf.MarotoRenderer{}, r)

	r, err = pdf.NewRenderer(config.InvoiceConfig{Renderer: config.RendererWkhtmltopdf, WkhtmltopdfPath: "/usr/bin/wkhtmltopdf"})
	require.NoError(t, err)
	assert.IsType(t, &pdf.WkhtmltopdfRenderer{}, r)

	_, err = pdf.NewRenderer(config.InvoiceConfig{Renderer: "latex"})
	assert.Error(t, err)
}
