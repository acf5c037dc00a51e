package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin/internal/application/billing"
	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/application/sales"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/testutil"
)

// fakeRenderer guarda el último documento recibido y devuelve out/err fijos.
type fakeRenderer struct {
	out  []byte
	err  error
	last *billing.InvoiceDocument
}

func (f *fakeRenderer) RenderInvoice(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	f.last = doc
	return f.out, f.err
}

type fakeLogos map[string]string

func (f fakeLogos) LocalPath(url string) (string, bool) {
	p, ok := f[url]
	return p, ok
}

type fixture struct {
	store    *testutil.Store
	owner    *entity.User
	staff    *entity.User
	renderer *fakeRenderer
	uc       *billing.PDFUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	owner := testutil.SeedOwner(t, store, "ana")
	staff := testutil.SeedStaff(t, store, owner, "beto")
	require.NoError(t, store.Users().UpdateLogo(context.Background(), owner.ID, "/static/images/logo.png"))
	testutil.SeedItem(t, store, owner.ID, "Pen", 10, "2.50")

	r := &fakeRenderer{out: []byte("%PDF-1.4 fake")}
	return &fixture{
		store:    store,
		owner:    owner,
		staff:    staff,
		renderer: r,
		uc: billing.NewPDFUseCase(store.Sales(), store.Users(), r,
			fakeLogos{"/static/images/logo.png": "/tmp/uploads/logo.png"}),
	}
}

func (f *fixture) sell(t *testing.T, userID string, qty int) string {
	t.Helper()
	out, err := sales.NewUseCase(f.store, f.store.Sales()).
		RecordSale(context.Background(), f.owner.ID, userID, dto.CreateSaleRequest{ItemName: "Pen", Quantity: qty})
	require.NoError(t, err)
	return out.ID
}

func TestDownloadInvoicePDF_ArmaDocumentoYNombre(t *testing.T) {
	f := newFixture(t)
	saleID := f.sell(t, f.staff.ID, 3)

	pdf, filename, err := f.uc.DownloadInvoicePDF(context.Background(), f.owner.ID, saleID)
	require.NoError(t, err)
	assert.Equal(t, f.renderer.out, pdf)
	assert.Equal(t, "invoice_"+saleID+".pdf", filename)

	doc := f.renderer.last
	require.NotNil(t, doc)
	assert.Equal(t, saleID, doc.SaleID)
	assert.Equal(t, "Tienda ana", doc.ShopName)
	assert.Equal(t, "/tmp/uploads/logo.png", doc.LogoPath)
	assert.Equal(t, "beto", doc.SoldBy)
	assert.Equal(t, "7.5", doc.Total.String())
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "Pen", doc.Lines[0].ItemName)
	assert.Equal(t, 3, doc.Lines[0].Quantity)
	assert.Equal(t, "7.5", doc.Lines[0].Subtotal.String())
}

func TestDownloadInvoicePDF_VentaDeOtraTienda(t *testing.T) {
	f := newFixture(t)
	saleID := f.sell(t, f.owner.ID, 1)
	other := testutil.SeedOwner(t, f.store, "carla")

	_, _, err := f.uc.DownloadInvoicePDF(context.Background(), other.ID, saleID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, f.renderer.last, "no se debe renderizar nada")
}

func TestDownloadInvoicePDF_VentaInexistente(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"6f1c9a52-3c2e-4a53-9a8e-1b1d2c3e4f50", "no-existe", "abc"} {
		_, _, err := f.uc.DownloadInvoicePDF(context.Background(), f.owner.ID, id)
		assert.ErrorIs(t, err, domain.ErrNotFound, id)
	}
	assert.Nil(t, f.renderer.last)
}

func TestDownloadInvoicePDF_FallaDelMotor(t *testing.T) {
	f := newFixture(t)
	saleID := f.sell(t, f.owner.ID, 1)

	cases := map[string]fakeRenderer{
		"error del motor":  {err: errors.New("exit status 1")},
		"salida vacía":     {out: []byte{}},
		"salida no es pdf": {out: []byte("<html>")},
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			r := r
			uc := billing.NewPDFUseCase(f.store.Sales(), f.store.Users(), &r, nil)
			_, _, err := uc.DownloadInvoicePDF(context.Background(), f.owner.ID, saleID)
			assert.ErrorIs(t, err, domain.ErrRender)
		})
	}

	// La venta sigue registrada.
	salesN, _, _ := f.store.Counts()
	assert.Equal(t, 1, salesN)
}

func TestDownloadInvoicePDF_SinLogo(t *testing.T) {
	f := newFixture(t)
	saleID := f.sell(t, f.owner.ID, 1)
	uc := billing.NewPDFUseCase(f.store.Sales(), f.store.Users(), f.renderer, nil)

	_, _, err := uc.DownloadInvoicePDF(context.Background(), f.owner.ID, saleID)
	require.NoError(t, err)
	assert.Empty(t, f.renderer.last.LogoPath)
	assert.Equal(t, "ana", f.renderer.last.SoldBy)
}
