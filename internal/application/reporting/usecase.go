// Package reporting contiene los casos de uso del dashboard de la tienda y el
// reporte histórico de ventas protegido por la contraseña de dueño.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

// PasswordVerifier verifica la contraseña de dueño contra su hash (anulable).
// Lo implementa *credential.Hasher.
type PasswordVerifier interface {
	VerifyOptional(raw string, hash *string) bool
}

// UseCase agrega ventas del día, item más vendido y el historial de ventas.
type UseCase struct {
	userRepo          repository.UserRepository
	itemRepo          repository.ItemRepository
	saleRepo          repository.SaleRepository
	reportRepo        repository.ReportRepository
	verifier          PasswordVerifier
	lowStockThreshold int
	now               func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	reportRepo repository.ReportRepository,
	verifier PasswordVerifier,
	lowStockThreshold int,
) *UseCase {
	return &UseCase{
		userRepo:          userRepo,
		itemRepo:          itemRepo,
		saleRepo:          saleRepo,
		reportRepo:        reportRepo,
		verifier:          verifier,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// startOfDayUTC 00:00:00 UTC del día de t.
func startOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TodayRevenue suma price × quantity de las ventas de la tienda desde el inicio del día (UTC).
func (uc *UseCase) TodayRevenue(ctx context.Context, shopID string) (decimal.Decimal, error) {
	rev, err := uc.reportRepo.RevenueSince(ctx, shopID, startOfDayUTC(uc.now()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("reporting: ventas de hoy: %w", err)
	}
	return rev, nil
}

// TopSellingItem devuelve el item con más unidades vendidas, o nil si no hay ventas.
func (uc *UseCase) TopSellingItem(ctx context.Context, shopID string) (*dto.TopItemResponse, error) {
	top, err := uc.reportRepo.TopSellingItem(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("reporting: item más vendido: %w", err)
	}
	if top == nil {
		return nil, nil
	}
	return &dto.TopItemResponse{ItemName: top.ItemName, TotalQuantity: top.TotalQuantity}, nil
}

// Dashboard construye el resumen de la tienda.
//
// Cuatro lecturas independientes en paralelo:
//  1. items de la tienda
//  2. items en stock bajo
//  3. ventas de hoy
//  4. item más vendido
func (uc *UseCase) Dashboard(ctx context.Context, shopID string) (*dto.DashboardResponse, error) {
	type itemsResult struct {
		items []dto.ItemResponse
		err   error
	}
	type revenueResult struct {
		revenue decimal.Decimal
		err     error
	}
	type topResult struct {
		top *dto.TopItemResponse
		err error
	}

	itemsCh := make(chan itemsResult, 1)
	lowCh := make(chan itemsResult, 1)
	revCh := make(chan revenueResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		items, err := uc.itemRepo.ListByUser(ctx, shopID)
		itemsCh <- itemsResult{dto.ToItemResponses(items, uc.lowStockThreshold), err}
	}()
	go func() {
		items, err := uc.itemRepo.ListLowStock(ctx, shopID, uc.lowStockThreshold)
		lowCh <- itemsResult{dto.ToItemResponses(items, uc.lowStockThreshold), err}
	}()
	go func() {
		rev, err := uc.TodayRevenue(ctx, shopID)
		revCh <- revenueResult{rev, err}
	}()
	go func() {
		top, err := uc.TopSellingItem(ctx, shopID)
		topCh <- topResult{top, err}
	}()

	items := <-itemsCh
	low := <-lowCh
	rev := <-revCh
	top := <-topCh

	if items.err != nil {
		return nil, fmt.Errorf("dashboard: items: %w", items.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if rev.err != nil {
		return nil, rev.err
	}
	if top.err != nil {
		return nil, top.err
	}

	return &dto.DashboardResponse{
		Items:             items.items,
		LowStockItems:     low.items,
		LowStockThreshold: uc.lowStockThreshold,
		TodayRevenue:      dto.Money(rev.revenue),
		TopItem:           top.top,
	}, nil
}

// SalesHistory devuelve todas las ventas de la tienda (más recientes primero).
// La contraseña de dueño se exige en cada llamada; no se guarda en sesión.
//
// Retorna:
//   - domain.ErrForbidden     si el usuario no es owner (sin importar la contraseña).
//   - domain.ErrUnauthorized  si la contraseña de dueño no coincide.
func (uc *UseCase) SalesHistory(ctx context.Context, userID, ownerPassword string) ([]dto.SaleResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsOwner() {
		return nil, domain.ErrForbidden
	}
	if !uc.verifier.VerifyOptional(ownerPassword, user.OwnerPasswordHash) {
		return nil, domain.ErrUnauthorized
	}

	sales, err := uc.saleRepo.ListByUser(ctx, user.ShopID())
	if err != nil {
		return nil, fmt.Errorf("reporting: listar ventas: %w", err)
	}
	if len(sales) == 0 {
		return []dto.SaleResponse{}, nil
	}
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	lines, err := uc.saleRepo.ListLines(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("reporting: líneas de venta: %w", err)
	}

	bySale := make(map[string][]*entity.SaleLine, len(sales))
	for _, l := range lines {
		bySale[l.SaleID] = append(bySale[l.SaleID], l)
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.ToSaleResponse(s, bySale[s.ID]))
	}
	return out, nil
}
