package pdf

import (
	"fmt"

	"github.com/jhoicas/shop-admin/internal/application/billing"
	"github.com/jhoicas/shop-admin/pkg/config"
)

// NewRenderer elige el motor según INVOICE_RENDERER.
func NewRenderer(cfg config.InvoiceConfig) (billing.InvoiceRenderer, error) {
	switch cfg.Renderer {
	case "", config.RendererMaroto:
		return NewMarotoRenderer(), nil
	case config.RendererWkhtmltopdf:
		return NewWkhtmltopdfRenderer(cfg.WkhtmltopdfPath, cfg.RenderTimeout), nil
	}
	return nil, fmt.Errorf("pdf: motor desconocido %q", cfg.Renderer)
}
