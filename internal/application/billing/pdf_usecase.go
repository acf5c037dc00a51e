package billing

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

var pdfMagic = []byte("%PDF-")

// PDFUseCase genera el PDF de la factura de una venta ya registrada.
type PDFUseCase struct {
	saleRepo repository.SaleRepository
	userRepo repository.UserRepository
	renderer InvoiceRenderer
	logos    LogoLocator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias. logos puede ser nil.
func NewPDFUseCase(
	saleRepo repository.SaleRepository,
	userRepo repository.UserRepository,
	renderer InvoiceRenderer,
	logos LogoLocator,
) *PDFUseCase {
	return &PDFUseCase{
		saleRepo: saleRepo,
		userRepo: userRepo,
		renderer: renderer,
		logos:    logos,
	}
}

// DownloadInvoicePDF carga la venta, sus líneas y la identidad de la tienda, y delega el render.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe, es de otra tienda o el id está malformado.
//   - domain.ErrRender           si el motor falla o devuelve un documento vacío o corrupto.
//     La venta sigue registrada; el llamador puede reintentar la descarga.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, shopID, saleID string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar venta ───────────────────────────────────────────────────────
	if !entity.IsValidID(saleID) {
		return nil, "", domain.ErrNotFound
	}
	sale, err := uc.saleRepo.GetByID(ctx, shopID, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 2. Cargar tienda (cuenta owner) ───────────────────────────────────────
	shop, err := uc.userRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener tienda: %w", err)
	}
	if shop == nil {
		return nil, "", domain.ErrNotFound
	}

	// ── 3. Cargar líneas ──────────────────────────────────────────────────────
	lines, err := uc.saleRepo.ListLines(ctx, []string{sale.ID})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	// ── 4. Generar PDF ────────────────────────────────────────────────────────
	doc := uc.buildDocument(sale, shop, lines)
	doc.SoldBy = uc.sellerName(ctx, sale, shop)
	pdfBytes, err = uc.renderer.RenderInvoice(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	if len(pdfBytes) == 0 || !bytes.HasPrefix(pdfBytes, pdfMagic) {
		return nil, "", fmt.Errorf("%w: el motor devolvió un documento vacío o inválido", domain.ErrRender)
	}

	return pdfBytes, fmt.Sprintf("invoice_%s.pdf", sale.ID), nil
}

func (uc *PDFUseCase) buildDocument(sale *entity.Sale, shop *entity.User, lines []*entity.SaleLine) *InvoiceDocument {
	doc := &InvoiceDocument{
		SaleID:   sale.ID,
		Date:     sale.SaleDate,
		ShopName: shop.ShopName,
		Total:    sale.TotalPrice,
		Lines:    make([]InvoiceLine, 0, len(lines)),
	}
	if shop.LogoURL != nil && uc.logos != nil {
		if p, ok := uc.logos.LocalPath(*shop.LogoURL); ok {
			doc.LogoPath = p
		}
	}
	for _, l := range lines {
		doc.Lines = append(doc.Lines, InvoiceLine{
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Subtotal:  l.Subtotal(),
		})
	}
	return doc
}

// sellerName nombre de usuario de quien registró la venta; vacío si ya no existe.
func (uc *PDFUseCase) sellerName(ctx context.Context, sale *entity.Sale, shop *entity.User) string {
	if sale.CreatedBy == shop.ID {
		return shop.Username
	}
	seller, err := uc.userRepo.GetByID(ctx, sale.CreatedBy)
	if err != nil || seller == nil {
		return ""
	}
	return seller.Username
}
