package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/shopspring/decimal"
)

type itemsRepo struct {
	db dbtx
}

const itemColumns = `id, club_id, name, group_label, category, unit_price, min_sale_unit,
	kind, stock_level, duration, image_url, created_at`

func (r *itemsRepo) CreateItem(ctx context.Context, it domain.CatalogItem) error {
	var (
		stock    sql.NullString
		duration sql.NullString
	)
	switch h := it.Holding.(type) {
	case domain.StockTracked:
		stock = mapOptionalDecimal(&h.Quantity)
	case domain.TimeBound:
		duration = sql.NullString{String: h.Duration.String(), Valid: true}
	default:
		return fmt.Errorf("sqlite: item %s has no holding", it.ID)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.ClubID, it.Name, it.Group, it.Category, mapOptionalDecimal(it.UnitPrice), it.MinSaleUnit.String(),
		string(it.Kind()), stock, duration, it.ImageURL, it.CreatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *itemsRepo) GetItem(ctx context.Context, clubID, id string) (domain.CatalogItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE club_id = ? AND id = ?`, clubID, id)
	return scanItem(row)
}

func (r *itemsRepo) ListItems(ctx context.Context, clubID string) ([]domain.CatalogItem, error) {
	return r.list(ctx,
		`SELECT `+itemColumns+` FROM items WHERE club_id = ? ORDER BY created_at DESC, id DESC`, clubID)
}

// ListStockBelow filters in Go since stock levels are stored as text.
func (r *itemsRepo) ListStockBelow(ctx context.Context, clubID string, threshold decimal.Decimal) ([]domain.CatalogItem, error) {
	items, err := r.list(ctx,
		`SELECT `+itemColumns+` FROM items WHERE club_id = ? AND kind = 'stock'`, clubID)
	if err != nil {
		return nil, err
	}

	low := items[:0]
	for _, it := range items {
		if s, ok := it.Stock(); ok && s.Quantity.LessThan(threshold) {
			low = append(low, it)
		}
	}
	slices.SortStableFunc(low, func(a, b domain.CatalogItem) int {
		sa, _ := a.Stock()
		sb, _ := b.Stock()
		if c := sa.Quantity.Cmp(sb.Quantity); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return low, nil
}

// AdjustStock reads the level, applies delta exactly and writes it back
// only if the level is still the one read.
func (r *itemsRepo) AdjustStock(ctx context.Context, clubID, id string, delta decimal.Decimal) error {
	var (
		kind  string
		level sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT kind, stock_level FROM items WHERE club_id = ? AND id = ?`, clubID, id).
		Scan(&kind, &level)
	if err != nil {
		return mapNotFound(err)
	}
	if domain.ItemKind(kind) != domain.ItemKindStock || !level.Valid {
		return store.ErrNotFound
	}

	current, err := decimal.NewFromString(level.String)
	if err != nil {
		return fmt.Errorf("sqlite: item %s stock level: %w", id, err)
	}
	next := current.Add(delta)
	if next.IsNegative() {
		return store.ErrConflict
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET stock_level = ? WHERE club_id = ? AND id = ? AND stock_level = ?`,
		next.String(), clubID, id, level.String,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *itemsRepo) list(ctx context.Context, query string, args ...any) ([]domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanItem(row rowScanner) (domain.CatalogItem, error) {
	var (
		it        domain.CatalogItem
		unitPrice decimal.NullDecimal
		kind      string
		stock     decimal.NullDecimal
		duration  sql.NullString
	)
	err := row.Scan(&it.ID, &it.ClubID, &it.Name, &it.Group, &it.Category, &unitPrice, &it.MinSaleUnit,
		&kind, &stock, &duration, &it.ImageURL, &it.CreatedAt)
	if err != nil {
		return domain.CatalogItem{}, mapNotFound(err)
	}

	it.UnitPrice = mapNullDecimalPtr(unitPrice)
	it.CreatedAt = it.CreatedAt.UTC()

	switch domain.ItemKind(kind) {
	case domain.ItemKindStock:
		it.Holding = domain.StockTracked{Quantity: stock.Decimal}
	case domain.ItemKindMembership:
		spec, err := domain.ParseDurationSpec(mapNullString(duration))
		if err != nil {
			return domain.CatalogItem{}, fmt.Errorf("sqlite: item %s: %w", it.ID, err)
		}
		it.Holding = domain.TimeBound{Duration: spec}
	default:
		return domain.CatalogItem{}, fmt.Errorf("sqlite: item %s has unknown kind %q", it.ID, kind)
	}
	return it, nil
}
