// Package testutil contiene dobles de prueba compartidos: un almacenamiento en memoria
// que implementa los repositorios y los TxRunner, y helpers de autenticación.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/shop-admin/internal/domain"
	"github.com/jhoicas/shop-admin/internal/domain/entity"
	"github.com/jhoicas/shop-admin/internal/domain/repository"
)

// state datos que participan en transacciones. Los usuarios quedan fuera: nunca se escriben en una tx.
type state struct {
	items     map[string]entity.Item
	sales     map[string]entity.Sale
	saleItems []entity.SaleItem
	ledger    []entity.StockTransaction
}

func newState() *state {
	return &state{
		items: make(map[string]entity.Item),
		sales: make(map[string]entity.Sale),
	}
}

func (st *state) clone() *state {
	c := &state{
		items:     make(map[string]entity.Item, len(st.items)),
		sales:     make(map[string]entity.Sale, len(st.sales)),
		saleItems: append([]entity.SaleItem(nil), st.saleItems...),
		ledger:    append([]entity.StockTransaction(nil), st.ledger...),
	}
	for k, v := range st.items {
		c.items[k] = v
	}
	for k, v := range st.sales {
		c.sales[k] = v
	}
	return c
}

// Store almacenamiento en memoria. Las transacciones se serializan (equivale a un bloqueo
// de fila que siempre gana) y trabajan sobre una copia que solo se publica al confirmar.
type Store struct {
	txMu sync.Mutex // una transacción a la vez
	mu   sync.Mutex // protege st, users y faults
	st   *state

	users  map[string]entity.User
	faults map[string]error
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{
		st:     newState(),
		users:  make(map[string]entity.User),
		faults: make(map[string]error),
	}
}

// FailOn hace que la operación op (p.ej. "ledger.Create", "tx.Commit") devuelva err.
// err nil elimina la falla.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.faults, op)
		return
	}
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faults[op]
}

// Users, Items, Sales, Ledger y Reports devuelven repositorios fuera de transacción.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }
func (s *Store) Items() repository.ItemRepository { return &itemRepo{view{s: s}} }
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{view{s: s}} }
func (s *Store) Ledger() repository.StockTransactionRepository { return &ledgerRepo{view{s: s}} }
func (s *Store) Reports() repository.ReportRepository { return &reportRepo{view{s: s}} }

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	ledgerRepo repository.StockTransactionRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&itemRepo{v}, &ledgerRepo{v})
	})
}

// RunSale implementa sales.SaleTxRunner.
func (s *Store) RunSale(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	saleRepo repository.SaleRepository,
	ledgerRepo repository.StockTransactionRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&itemRepo{v}, &saleRepo{v}, &ledgerRepo{v})
	})
}

func (s *Store) inTx(ctx context.Context, fn func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.fault("tx.Begin"); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	work := s.st.clone()
	s.mu.Unlock()

	if err := fn(view{s: s, tx: work}); err != nil {
		return err
	}
	if err := s.fault("tx.Commit"); err != nil {
		return err
	}
	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// view acceso al estado: la copia de la tx si tx != nil, o el estado confirmado.
type view struct {
	s  *Store
	tx *state
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	fn(v.s.st)
}

func (v view) write(op string, fn func(st *state) error) error {
	if err := v.s.fault(op); err != nil {
		return err
	}
	if v.tx != nil {
		return fn(v.tx)
	}
	v.s.txMu.Lock()
	defer v.s.txMu.Unlock()
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.st)
}

// ItemQuantity cantidad confirmada del item (name) de la tienda; -1 si no existe.
func (s *Store) ItemQuantity(shopID, name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.st.items {
		if it.UserID == shopID && it.Name == name {
			return it.Quantity
		}
	}
	return -1
}

// Counts número confirmado de ventas, líneas de venta y movimientos.
func (s *Store) Counts() (sales, saleItems, ledger int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.sales), len(s.st.saleItems), len(s.st.ledger)
}

// uuidColumn imita a Postgres: un id malformado en una columna UUID es un error de
// sintaxis, no una fila ausente.
func uuidColumn(op, id string) error {
	if !entity.IsValidID(id) {
		return fmt.Errorf("%s: invalid input syntax for type uuid: %q", op, id)
	}
	return nil
}

// --- users ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	if err := r.s.fault("users.Create"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if err := r.s.fault("users.GetByID"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if err := r.s.fault("users.GetByUsername"); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *userRepo) UpdateLogo(_ context.Context, id string, logoURL string) error {
	if err := r.s.fault("users.UpdateLogo"); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	url := logoURL
	u.LogoURL = &url
	u.UpdatedAt = time.Now().UTC()
	r.s.users[id] = u
	return nil
}

// --- items ---

type itemRepo struct{ view }

func (r *itemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.write("items.Create", func(st *state) error {
		for _, it := range st.items {
			if it.UserID == item.UserID && it.Name == item.Name {
				return domain.ErrDuplicate
			}
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (r *itemRepo) GetByID(_ context.Context, userID, id string) (*entity.Item, error) {
	if err := uuidColumn("items.GetByID", id); err != nil {
		return nil, err
	}
	var out *entity.Item
	r.read(func(st *state) {
		if it, ok := st.items[id]; ok && it.UserID == userID {
			out = &it
		}
	})
	return out, nil
}

func (r *itemRepo) GetByIDForUpdate(ctx context.Context, userID, id string) (*entity.Item, error) {
	if err := r.s.fault("items.ForUpdate"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID, id)
}

func (r *itemRepo) GetByNameForUpdate(_ context.Context, userID, name string) (*entity.Item, error) {
	if err := r.s.fault("items.ForUpdate"); err != nil {
		return nil, err
	}
	var out *entity.Item
	r.read(func(st *state) {
		for _, it := range st.items {
			if it.UserID == userID && it.Name == name {
				found := it
				out = &found
				return
			}
		}
	})
	return out, nil
}

func (r *itemRepo) filter(userID string, keep func(entity.Item) bool) []*entity.Item {
	out := make([]*entity.Item, 0)
	r.read(func(st *state) {
		for _, it := range st.items {
			if it.UserID == userID && keep(it) {
				found := it
				out = append(out, &found)
			}
		}
	})
	return out
}

func (r *itemRepo) ListByUser(_ context.Context, userID string) ([]*entity.Item, error) {
	items := r.filter(userID, func(entity.Item) bool { return true })
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *itemRepo) ListLowStock(_ context.Context, userID string, threshold int) ([]*entity.Item, error) {
	items := r.filter(userID, func(it entity.Item) bool { return it.Quantity <= threshold })
	sort.Slice(items, func(i, j int) bool {
		if items[i].Quantity != items[j].Quantity {
			return items[i].Quantity < items[j].Quantity
		}
		return items[i].Name < items[j].Name
	})
	return items, nil
}

func (r *itemRepo) AdjustQuantity(_ context.Context, userID, id string, delta int) (int, error) {
	if err := uuidColumn("items.AdjustQuantity", id); err != nil {
		return 0, err
	}
	var newQty int
	err := r.write("items.AdjustQuantity", func(st *state) error {
		it, ok := st.items[id]
		if !ok || it.UserID != userID {
			return domain.ErrNotFound
		}
		if it.Quantity+delta < 0 {
			return domain.ErrConflict
		}
		if it.Quantity+delta > entity.MaxQuantity {
			return fmt.Errorf("items.AdjustQuantity: integer out of range")
		}
		it.Quantity += delta
		it.UpdatedAt = time.Now().UTC()
		st.items[id] = it
		newQty = it.Quantity
		return nil
	})
	return newQty, err
}

// --- sales ---

type saleRepo struct{ view }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.write("sales.Create", func(st *state) error {
		st.sales[sale.ID] = *sale
		return nil
	})
}

func (r *saleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	return r.write("sales.CreateItem", func(st *state) error {
		if _, ok := st.sales[item.SaleID]; !ok {
			return domain.ErrNotFound
		}
		st.saleItems = append(st.saleItems, *item)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, userID, id string) (*entity.Sale, error) {
	if err := uuidColumn("sales.GetByID", id); err != nil {
		return nil, err
	}
	var out *entity.Sale
	r.read(func(st *state) {
		if s, ok := st.sales[id]; ok && s.UserID == userID {
			out = &s
		}
	})
	return out, nil
}

func (r *saleRepo) ListByUser(_ context.Context, userID string) ([]*entity.Sale, error) {
	if err := r.s.fault("sales.ListByUser"); err != nil {
		return nil, err
	}
	out := make([]*entity.Sale, 0)
	r.read(func(st *state) {
		for _, s := range st.sales {
			if s.UserID == userID {
				found := s
				out = append(out, &found)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SaleDate.Equal(out[j].SaleDate) {
			return out[i].SaleDate.After(out[j].SaleDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *saleRepo) ListLines(_ context.Context, saleIDs []string) ([]*entity.SaleLine, error) {
	wanted := make(map[string]struct{}, len(saleIDs))
	for _, id := range saleIDs {
		wanted[id] = struct{}{}
	}
	out := make([]*entity.SaleLine, 0)
	r.read(func(st *state) {
		for _, si := range st.saleItems {
			if _, ok := wanted[si.SaleID]; !ok {
				continue
			}
			out = append(out, &entity.SaleLine{SaleItem: si, ItemName: st.items[si.ItemID].Name})
		}
	})
	return out, nil
}

// --- ledger ---

type ledgerRepo struct{ view }

func (r *ledgerRepo) Create(_ context.Context, t *entity.StockTransaction) error {
	return r.write("ledger.Create", func(st *state) error {
		if t.Type != entity.StockTransactionIn && t.Type != entity.StockTransactionOut {
			return domain.ErrInvalidInput
		}
		st.ledger = append(st.ledger, *t)
		return nil
	})
}

func (r *ledgerRepo) ListByItem(_ context.Context, userID, itemID string) ([]*entity.StockTransaction, error) {
	if err := uuidColumn("ledger.ListByItem", itemID); err != nil {
		return nil, err
	}
	out := make([]*entity.StockTransaction, 0)
	r.read(func(st *state) {
		for i := len(st.ledger) - 1; i >= 0; i-- {
			t := st.ledger[i]
			if t.UserID == userID && t.ItemID == itemID {
				out = append(out, &t)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// --- reports ---

type reportRepo struct{ view }

func (r *reportRepo) RevenueSince(_ context.Context, userID string, since time.Time) (decimal.Decimal, error) {
	if err := r.s.fault("reports.RevenueSince"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	r.read(func(st *state) {
		for _, si := range st.saleItems {
			s := st.sales[si.SaleID]
			if s.UserID == userID && !s.SaleDate.Before(since) {
				total = total.Add(si.Subtotal())
			}
		}
	})
	return total, nil
}

// TopSellingItem agrupa por nombre; empate -> primera venta más antigua, luego nombre.
func (r *reportRepo) TopSellingItem(_ context.Context, userID string) (*repository.TopItemResult, error) {
	if err := r.s.fault("reports.TopSellingItem"); err != nil {
		return nil, err
	}
	type agg struct {
		qty   int64
		first time.Time
	}
	byName := make(map[string]*agg)
	r.read(func(st *state) {
		for _, si := range st.saleItems {
			s := st.sales[si.SaleID]
			if s.UserID != userID {
				continue
			}
			name := st.items[si.ItemID].Name
			a, ok := byName[name]
			if !ok {
				a = &agg{first: s.SaleDate}
				byName[name] = a
			}
			a.qty += int64(si.Quantity)
			if s.SaleDate.Before(a.first) {
				a.first = s.SaleDate
			}
		}
	})
	if len(byName) == 0 {
		return nil, nil
	}
	var best string
	var bestAgg *agg
	for name, a := range byName {
		switch {
		case bestAgg == nil,
			a.qty > bestAgg.qty,
			a.qty == bestAgg.qty && a.first.Before(bestAgg.first),
			a.qty == bestAgg.qty && a.first.Equal(bestAgg.first) && name < best:
			best, bestAgg = name, a
		}
	}
	return &repository.TopItemResult{ItemName: best, TotalQuantity: bestAgg.qty}, nil
}
