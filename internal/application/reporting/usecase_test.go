package reporting_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/application/reporting"
	"github.com/jhoicas/shop-admin/internal/application/sales"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/testutil"
)

var today = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store     *testutil.Store
	reporting *reporting.UseCase
	sales     *sales.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	clock := func() time.Time { return today }
	return &fixture{
		store: store,
		reporting: reporting.NewUseCase(
			store.Users(), store.Items(), store.Sales(), store.Reports(), testutil.Hasher(), 5,
		).WithClock(clock),
		sales: sales.NewUseCase(store, store.Sales()).WithClock(clock),
	}
}

func (f *fixture) sell(t *testing.T, shopID, name string, qty int) *dto.SaleResponse {
	t.Helper()
	out, err := f.sales.RecordSale(context.Background(), shopID, "user-1", dto.CreateSaleRequest{ItemName: name, Quantity: qty})
	require.NoError(t, err)
	return out
}

func TestTodayRevenue_SinVentasEsCero(t *testing.T) {
	f := newFixture(t)
	rev, err := f.reporting.TodayRevenue(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.True(t, rev.IsZero())
}

func TestTodayRevenue_SumaVentasDelDia(t *testing.T) {
	f := newFixture(t)
	testutil.SeedItem(t, f.store, "shop-1", "Pen", 10, "9.5")
	f.sell(t, "shop-1", "Pen", 3)

	rev, err := f.reporting.TodayRevenue(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("28.5").Equal(rev), "got %s", rev)
}

func TestTodayRevenue_IgnoraVentasDeAyerYDeOtraTienda(t *testing.T) {
	f := newFixture(t)
	testutil.SeedItem(t, f.store, "shop-1", "Pen", 10, "2")
	testutil.SeedItem(t, f.store, "shop-2", "Pen", 10, "100")

	yesterday := sales.NewUseCase(f.store, f.store.Sales()).
		WithClock(func() time.Time { return today.Add(-24 * time.Hour) })
	_, err := yesterday.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Pen", Quantity: 4})
	require.NoError(t, err)
	f.sell(t, "shop-1", "Pen", 1)
	f.sell(t, "shop-2", "Pen", 1)

	rev, err := f.reporting.TodayRevenue(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2).Equal(rev), "got %s", rev)
}

func TestTopSellingItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	top, err := f.reporting.TopSellingItem(ctx, "shop-1")
	require.NoError(t, err)
	assert.Nil(t, top)

	testutil.SeedItem(t, f.store, "shop-1", "A", 10, "1")
	testutil.SeedItem(t, f.store, "shop-1", "B", 10, "1")
	f.sell(t, "shop-1", "A", 2)
	f.sell(t, "shop-1", "B", 5)

	top, err = f.reporting.TopSellingItem(ctx, "shop-1")
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, dto.TopItemResponse{ItemName: "B", TotalQuantity: 5}, *top)
}

func TestTopSellingItem_EmpateGanaLaPrimeraVenta(t *testing.T) {
	f := newFixture(t)
	testutil.SeedItem(t, f.store, "shop-1", "Zeta", 10, "1")
	testutil.SeedItem(t, f.store, "shop-1", "Alfa", 10, "1")

	early := sales.NewUseCase(f.store, f.store.Sales()).
		WithClock(func() time.Time { return today.Add(-time.Hour) })
	_, err := early.RecordSale(context.Background(), "shop-1", "user-1", dto.CreateSaleRequest{ItemName: "Zeta", Quantity: 3})
	require.NoError(t, err)
	f.sell(t, "shop-1", "Alfa", 3)

	top, err := f.reporting.TopSellingItem(context.Background(), "shop-1")
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "Zeta", top.ItemName)
}

func TestDashboard_Resumen(t *testing.T) {
	f := newFixture(t)
	testutil.SeedItem(t, f.store, "shop-1", "Pen", 10, "1.25")
	testutil.SeedItem(t, f.store, "shop-1", "Book", 2, "10")
	f.sell(t, "shop-1", "Pen", 4)

	out, err := f.reporting.Dashboard(context.Background(), "shop-1")
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	require.Len(t, out.LowStockItems, 1)
	assert.Equal(t, "Book", out.LowStockItems[0].Name)
	assert.Equal(t, 5, out.LowStockThreshold)
	assert.True(t, decimal.NewFromInt(5).Equal(out.TodayRevenue))
	require.NotNil(t, out.TopItem)
	assert.Equal(t, "Pen", out.TopItem.ItemName)
}

func TestDashboard_PropagaErrorDeConsulta(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("reports.RevenueSince", errors.New("timeout"))

	_, err := f.reporting.Dashboard(context.Background(), "shop-1")
	assert.Error(t, err)
}

func TestSalesHistory_OwnerConContraseñaCorrecta(t *testing.T) {
	f := newFixture(t)
	owner := testutil.SeedOwner(t, f.store, "ana")
	testutil.SeedItem(t, f.store, owner.ID, "Pen", 10, "1")
	first := f.sell(t, owner.ID, "Pen", 1)
	second := f.sell(t, owner.ID, "Pen", 2)

	out, err := f.reporting.SalesHistory(context.Background(), owner.ID, testutil.OwnerPassword)
	require.NoError(t, err)
	require.Len(t, out, 2)
	ids := []string{out[0].ID, out[1].ID}
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)
	for _, s := range out {
		require.Len(t, s.Lines, 1)
		assert.Equal(t, "Pen", s.Lines[0].ItemName)
	}
}

func TestSalesHistory_SinVentasDevuelveListaVacia(t *testing.T) {
	f := newFixture(t)
	owner := testutil.SeedOwner(t, f.store, "ana")

	out, err := f.reporting.SalesHistory(context.Background(), owner.ID, testutil.OwnerPassword)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSalesHistory_ContraseñaIncorrecta(t *testing.T) {
	f := newFixture(t)
	owner := testutil.SeedOwner(t, f.store, "ana")

	_, err := f.reporting.SalesHistory(context.Background(), owner.ID, "otra")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.reporting.SalesHistory(context.Background(), owner.ID, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSalesHistory_StaffEsForbiddenAunConContraseñaCorrecta(t *testing.T) {
	f := newFixture(t)
	owner := testutil.SeedOwner(t, f.store, "ana")
	staff := testutil.SeedStaff(t, f.store, owner, "beto")

	_, err := f.reporting.SalesHistory(context.Background(), staff.ID, testutil.OwnerPassword)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSalesHistory_UsuarioInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.reporting.SalesHistory(context.Background(), "no-existe", testutil.OwnerPassword)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
