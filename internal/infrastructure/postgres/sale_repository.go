package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, user_id, created_by, total_price, sale_date`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, sale.ID, sale.UserID, sale.CreatedBy, sale.TotalPrice, sale.SaleDate)
	return wrapErr("insert sale", err)
}

// CreateItem inserta una línea de venta con el precio congelado.
func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, item_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, item.ID, item.SaleID, item.ItemID, item.Quantity, item.Price)
	return wrapErr("insert sale item", err)
}

// GetByID obtiene una venta de la tienda.
func (r *SaleRepo) GetByID(ctx context.Context, userID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1 AND id = $2`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, userID, id).Scan(&s.ID, &s.UserID, &s.CreatedBy, &s.TotalPrice, &s.SaleDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get sale", err)
	}
	return &s, nil
}

// ListByUser lista las ventas de la tienda, más recientes primero.
func (r *SaleRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE user_id = $1 ORDER BY sale_date DESC, id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapErr("list sales", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.CreatedBy, &s.TotalPrice, &s.SaleDate); err != nil {
			return nil, wrapErr("scan sale", err)
		}
		list = append(list, &s)
	}
	return list, wrapErr("list sales", rows.Err())
}

// ListLines devuelve las líneas de las ventas indicadas con el nombre del item (JOIN explícito).
func (r *SaleRepo) ListLines(ctx context.Context, saleIDs []string) ([]*entity.SaleLine, error) {
	if len(saleIDs) == 0 {
		return []*entity.SaleLine{}, nil
	}
	query := `
		SELECT si.id, si.sale_id, si.item_id, si.quantity, si.price, i.name
		FROM sale_items si
		JOIN items i ON i.id = si.item_id
		WHERE si.sale_id = ANY($1::uuid[])
		ORDER BY si.sale_id, i.name`
	rows, err := r.q.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, wrapErr("list sale lines", err)
	}
	defer rows.Close()
	list := make([]*entity.SaleLine, 0)
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ItemID, &l.Quantity, &l.Price, &l.ItemName); err != nil {
			return nil, wrapErr("scan sale line", err)
		}
		list = append(list, &l)
	}
	return list, wrapErr("list sale lines", rows.Err())
}
