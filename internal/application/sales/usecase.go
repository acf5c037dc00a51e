// Package sales registra ventas contra el stock actual.
package sales

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

// UseCase registra y consulta ventas.
type UseCase struct {
	txRunner SaleTxRunner
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner SaleTxRunner, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		saleRepo: saleRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// RecordSale vende quantity unidades del item llamado itemName de la tienda.
//
// Dentro de una única transacción:
//  1. bloquea la fila del item (SELECT FOR UPDATE) para serializar ventas concurrentes,
//  2. verifica stock >= quantity,
//  3. crea Sale (total = precio unitario × cantidad) y su SaleItem con el precio congelado,
//  4. descuenta la cantidad y registra el movimiento de salida (out).
//
// Retorna:
//   - domain.ErrInvalidInput      si quantity <= 0 o falta el nombre.
//   - domain.ErrNotFound          si el item no existe en la tienda.
//   - domain.ErrInsufficientStock si no alcanza el stock; no se modifica nada.
//   - domain.ErrConflict          si otra venta ganó la carrera por la fila (timeout de bloqueo).
func (uc *UseCase) RecordSale(ctx context.Context, shopID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	name := strings.TrimSpace(in.ItemName)
	if shopID == "" || name == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	var (
		sale *entity.Sale
		line *entity.SaleLine
	)
	err := uc.txRunner.RunSale(ctx, func(
		itemRepo repository.ItemRepository,
		saleRepo repository.SaleRepository,
		ledgerRepo repository.StockTransactionRepository,
	) error {
		item, err := itemRepo.GetByNameForUpdate(ctx, shopID, name)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		sale = &entity.Sale{
			ID:         uuid.New().String(),
			UserID:     shopID,
			CreatedBy:  userID,
			TotalPrice: item.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
			SaleDate:   now,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		saleItem := entity.SaleItem{
			ID:       uuid.New().String(),
			SaleID:   sale.ID,
			ItemID:   item.ID,
			Quantity: in.Quantity,
			Price:    item.UnitPrice,
		}
		if err := saleRepo.CreateItem(ctx, &saleItem); err != nil {
			return err
		}
		line = &entity.SaleLine{SaleItem: saleItem, ItemName: item.Name}

		// Guarda adicional al bloqueo: el UPDATE solo aplica si quantity >= vendida.
		if _, err := itemRepo.AdjustQuantity(ctx, shopID, item.ID, -in.Quantity); err != nil {
			return err
		}

		return ledgerRepo.Create(ctx, &entity.StockTransaction{
			ID:        uuid.New().String(),
			UserID:    shopID,
			ItemID:    item.ID,
			Type:      entity.StockTransactionOut,
			Quantity:  in.Quantity,
			Date:      now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}

	out := dto.ToSaleResponse(sale, []*entity.SaleLine{line})
	return &out, nil
}

// GetSale devuelve una venta de la tienda con sus líneas.
func (uc *UseCase) GetSale(ctx context.Context, shopID, saleID string) (*dto.SaleResponse, error) {
	if !entity.IsValidID(saleID) {
		return nil, domain.ErrNotFound
	}
	sale, err := uc.saleRepo.GetByID(ctx, shopID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.ListLines(ctx, []string{sale.ID})
	if err != nil {
		return nil, err
	}
	out := dto.ToSaleResponse(sale, lines)
	return &out, nil
}
