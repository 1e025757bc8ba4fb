package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"
)

type transactionsRepo struct {
	db dbtx
}

var transactionColumns = []any{
	"id", "club_id", "type", "parent_id", "item_id", "item_name", "quantity",
	"amount", "member_id", "member_name", "user_id", "created_at",
}

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.Transaction) error {
	query, args, err := dialect.Insert("transactions").Prepared(true).
		Rows(goqu.Record{
			"id":          t.ID,
			"club_id":     t.ClubID,
			"type":        string(t.Type),
			"parent_id":   mapStringNull(t.ParentID),
			"item_id":     mapStringNull(t.ItemID),
			"item_name":   t.ItemName,
			"quantity":    t.Quantity.String(),
			"amount":      mapOptionalDecimal(t.Amount),
			"member_id":   mapStringNull(t.MemberID),
			"member_name": t.MemberName,
			"user_id":     t.UserID,
			"created_at":  t.CreatedAt.UTC(),
		}).
		ToSQL()
	if err != nil {
		return fmt.Errorf("sqlite: build insert: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return mapConstraint(err)
}

func (r *transactionsRepo) ListTransactions(
	ctx context.Context,
	clubID string,
	f domain.HistoryFilter,
) ([]domain.Transaction, error) {
	ds := dialect.From("transactions").Prepared(true).
		Select(transactionColumns...).
		Where(goqu.C("club_id").Eq(clubID)).
		// Ids are ULIDs stamped with created_at, so id order is time order
		// and pages can continue from an id.
		Order(goqu.C("id").Desc())

	if f.Type != "" {
		ds = ds.Where(goqu.C("type").Eq(string(f.Type)))
	} else {
		ds = ds.Where(goqu.C("type").Neq(string(domain.TransactionDispense)))
	}
	if f.MemberID != "" {
		ds = ds.Where(goqu.C("member_id").Eq(f.MemberID))
	}
	if f.ItemID != "" {
		ds = ds.Where(goqu.C("item_id").Eq(f.ItemID))
	}
	if !f.Since.IsZero() {
		ds = ds.Where(goqu.C("created_at").Gte(f.Since.UTC()))
	}
	if f.Before != "" {
		// The created_at bound lets the club index narrow the scan; the
		// id stamp is truncated to the millisecond.
		bound := idx.ID(f.Before).Time().Add(time.Millisecond)
		ds = ds.Where(
			goqu.C("created_at").Lt(bound.UTC()),
			goqu.C("id").Lt(f.Before),
		)
	}
	if f.Limit > 0 {
		ds = ds.Limit(uint(f.Limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build history query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var (
			t                        domain.Transaction
			typ                      string
			parentID, itemID, member sql.NullString
			amount                   decimal.NullDecimal
		)
		err := rows.Scan(&t.ID, &t.ClubID, &typ, &parentID, &itemID, &t.ItemName, &t.Quantity,
			&amount, &member, &t.MemberName, &t.UserID, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		t.Type = domain.TransactionType(typ)
		t.ParentID = mapNullString(parentID)
		t.ItemID = mapNullString(itemID)
		t.MemberID = mapNullString(member)
		t.Amount = mapNullDecimalPtr(amount)
		t.CreatedAt = t.CreatedAt.UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}
