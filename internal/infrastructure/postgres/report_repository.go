package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para el dashboard.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// RevenueSince suma price × quantity de las líneas de ventas de la tienda con sale_date >= since.
func (r *ReportRepo) RevenueSince(ctx context.Context, userID string, since time.Time) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(si.price * si.quantity), 0)
	FROM sale_items si
	JOIN sales s ON s.id = si.sale_id
	WHERE s.user_id = $1
	  AND s.sale_date >= $2`

	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query, userID, since).Scan(&total); err != nil {
		return decimal.Zero, wrapErr("report.RevenueSince", err)
	}
	return total, nil
}

// TopSellingItem item con más unidades vendidas. Empate: la primera venta más antigua, luego el nombre.
func (r *ReportRepo) TopSellingItem(ctx context.Context, userID string) (*repository.TopItemResult, error) {
	const query = `
	SELECT
	    i.name                    AS item_name,
	    SUM(si.quantity)::BIGINT  AS total_quantity
	FROM sale_items si
	JOIN sales s ON s.id = si.sale_id
	JOIN items i ON i.id = si.item_id
	WHERE s.user_id = $1
	GROUP BY i.name
	ORDER BY total_quantity DESC, MIN(s.sale_date) ASC, i.name ASC
	LIMIT 1`

	var res repository.TopItemResult
	if err := r.q.QueryRow(ctx, query, userID).Scan(&res.ItemName, &res.TotalQuantity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("report.TopSellingItem", err)
	}
	return &res, nil
}
