package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/application/sales"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func newUseCase(store *testutil.Store) *sales.UseCase {
	return sales.NewUseCase(store, store.Sales()).WithClock(func() time.Time { return fixedNow })
}

func TestRecordSale_DescuentaStockYCongelaPrecio(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()
	item := testutil.SeedItem(t, store, "shop-1", "Pen", 10, "1.50")

	out, err := uc.RecordSale(ctx, "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 3})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.50").Equal(out.TotalPrice))
	assert.Equal(t, "/api/invoices/"+out.ID, out.InvoiceURL)
	assert.Equal(t, fixedNow, out.SaleDate)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, item.ID, out.Lines[0].ItemID)
	assert.Equal(t, 3, out.Lines[0].Quantity)
	assert.True(t, decimal.RequireFromString("1.50").Equal(out.Lines[0].UnitPrice))

	assert.Equal(t, 7, store.ItemQuantity("shop-1", "Pen"))

	txs, err := store.Ledger().ListByItem(ctx, "shop-1", item.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.StockTransactionOut, txs[0].Type)
	assert.Equal(t, 3, txs[0].Quantity)
}

func TestRecordSale_VenderTodoElStockDejaCero(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	testutil.SeedItem(t, store, "shop-1", "Pen", 3, "2")

	_, err := uc.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, store.ItemQuantity("shop-1", "Pen"))
}

func TestRecordSale_StockInsuficienteNoModificaNada(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	testutil.SeedItem(t, store, "shop-1", "Pen", 2, "1")

	_, err := uc.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 2, store.ItemQuantity("shop-1", "Pen"))
	salesN, linesN, ledgerN := store.Counts()
	assert.Zero(t, salesN)
	assert.Zero(t, linesN)
	assert.Zero(t, ledgerN)
}

func TestRecordSale_EntradaInvalida(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	testutil.SeedItem(t, store, "shop-1", "Pen", 2, "1")

	for _, q := range []int{0, -1} {
		_, err := uc.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: q})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d", q)
	}
	_, err := uc.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: " ", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordSale_ItemInexistenteOEnOtraTienda(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	testutil.SeedItem(t, store, "shop-2", "Pen", 5, "1")

	_, err := uc.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, store.ItemQuantity("shop-2", "Pen"))
}

func TestRecordSale_FallaEnLibroRevierteVentaYStock(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	testutil.SeedItem(t, store, "shop-1", "Pen", 5, "1")
	store.FailOn("ledger.Create", errors.New("conexión perdida"))

	_, err := uc.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 2})
	require.Error(t, err)

	assert.Equal(t, 5, store.ItemQuantity("shop-1", "Pen"))
	salesN, linesN, _ := store.Counts()
	assert.Zero(t, salesN)
	assert.Zero(t, linesN)
}

func TestRecordSale_ConflictoDeBloqueoSePropaga(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	testutil.SeedItem(t, store, "shop-1", "Pen", 5, "1")
	store.FailOn("items.ForUpdate", domain.ErrConflict)

	_, err := uc.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 5, store.ItemQuantity("shop-1", "Pen"))
}

// Ventas concurrentes sobre el mismo item nunca dejan stock negativo ni venden de más.
func TestRecordSale_ConcurrenteNoSobrevende(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	testutil.SeedItem(t, store, "shop-1", "Pen", 5, "1")

	const workers = 20
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		ok, rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	assert.Equal(t, workers-5, rejected)
	assert.Equal(t, 0, store.ItemQuantity("shop-1", "Pen"))
	salesN, _, ledgerN := store.Counts()
	assert.Equal(t, 5, salesN)
	assert.Equal(t, 5, ledgerN)
}

func TestGetSale_AcotadoALaTienda(t *testing.T) {
	store := testutil.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()
	testutil.SeedItem(t, store, "shop-1", "Pen", 5, "2")

	created, err := uc.RecordSale(ctx, "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 2})
	require.NoError(t, err)

	got, err := uc.GetSale(ctx, "shop-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Pen", got.Lines[0].ItemName)

	_, err = uc.GetSale(ctx, "shop-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSale_IDMalformadoEsNotFound(t *testing.T) {
	uc := newUseCase(testutil.NewStore())

	_, err := uc.GetSale(context.Background(), "shop-1", "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
