package inventory

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin/internal/application/dto"
	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

// MaxItemNameLength límite de la columna items.name.
const MaxItemNameLength = 120

// UseCase alta de items, reposición y consultas de inventario de una tienda.
type UseCase struct {
	txRunner          TxRunner
	itemRepo          repository.ItemRepository
	ledgerRepo        repository.StockTransactionRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewUseCase construye el caso de uso. lowStockThreshold es el umbral por defecto de ListLowStock.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	ledgerRepo repository.StockTransactionRepository,
	lowStockThreshold int,
) *UseCase {
	return &UseCase{
		txRunner:          txRunner,
		itemRepo:          itemRepo,
		ledgerRepo:        ledgerRepo,
		lowStockThreshold: lowStockThreshold,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// LowStockThreshold umbral por defecto configurado.
func (uc *UseCase) LowStockThreshold() int {
	return uc.lowStockThreshold
}

// AddItem crea el item de la tienda y su movimiento de entrada (in) en una sola transacción.
// Cantidad o precio negativos son ErrInvalidInput; nombre repetido en la tienda es ErrDuplicate.
func (uc *UseCase) AddItem(ctx context.Context, shopID, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if shopID == "" || name == "" || utf8.RuneCountInString(name) > MaxItemNameLength {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity < 0 || in.Quantity > entity.MaxQuantity || in.UnitPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		UserID:    shopID,
		Name:      name,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, ledgerRepo repository.StockTransactionRepository) error {
		if err := itemRepo.Create(ctx, item); err != nil {
			return err
		}
		return ledgerRepo.Create(ctx, &entity.StockTransaction{
			ID:        uuid.New().String(),
			UserID:    shopID,
			ItemID:    item.ID,
			Type:      entity.StockTransactionIn,
			Quantity:  in.Quantity,
			Date:      now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToItemResponse(item, uc.lowStockThreshold)
	return &out, nil
}

// Restock bloquea la fila del item (SELECT FOR UPDATE), suma la cantidad y registra la entrada.
// Un stock resultante mayor que entity.MaxQuantity es ErrInvalidInput.
func (uc *UseCase) Restock(ctx context.Context, shopID, userID, itemID string, in dto.RestockRequest) (*dto.ItemResponse, error) {
	if in.Quantity <= 0 || in.Quantity > entity.MaxQuantity {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidID(itemID) {
		return nil, domain.ErrNotFound
	}
	now := uc.now()
	var updated *entity.Item
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, ledgerRepo repository.StockTransactionRepository) error {
		item, err := itemRepo.GetByIDForUpdate(ctx, shopID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if item.Quantity > entity.MaxQuantity-in.Quantity {
			return domain.ErrInvalidInput
		}
		newQty, err := itemRepo.AdjustQuantity(ctx, shopID, itemID, in.Quantity)
		if err != nil {
			return err
		}
		item.Quantity = newQty
		item.UpdatedAt = now
		updated = item
		return ledgerRepo.Create(ctx, &entity.StockTransaction{
			ID:        uuid.New().String(),
			UserID:    shopID,
			ItemID:    itemID,
			Type:      entity.StockTransactionIn,
			Quantity:  in.Quantity,
			Date:      now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToItemResponse(updated, uc.lowStockThreshold)
	return &out, nil
}

// ListItems lista todos los items de la tienda.
func (uc *UseCase) ListItems(ctx context.Context, shopID string) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.ListByUser(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return dto.ToItemResponses(items, uc.lowStockThreshold), nil
}

// ListLowStock lista los items con cantidad <= threshold. threshold negativo usa el configurado.
func (uc *UseCase) ListLowStock(ctx context.Context, shopID string, threshold int) ([]dto.ItemResponse, error) {
	if threshold < 0 {
		threshold = uc.lowStockThreshold
	}
	items, err := uc.itemRepo.ListLowStock(ctx, shopID, threshold)
	if err != nil {
		return nil, err
	}
	return dto.ToItemResponses(items, threshold), nil
}

// ListTransactions devuelve el libro de movimientos de un item, más recientes primero.
func (uc *UseCase) ListTransactions(ctx context.Context, shopID, itemID string) ([]dto.StockTransactionResponse, error) {
	if !entity.IsValidID(itemID) {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.ledgerRepo.ListByItem(ctx, shopID, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockTransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, dto.ToStockTransactionResponse(t))
	}
	return out, nil
}
