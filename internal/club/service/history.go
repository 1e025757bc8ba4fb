package service

import (
	"context"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
)

const (
	DefaultHistoryLimit = 100
	MaxHistoryLimit     = 500
)

type HistoryService struct {
	Store store.Store
}

// List returns ledger entries newest first. Parent dispense entries are
// only included when f.Type asks for them. Pages continue from f.Before.
func (s *HistoryService) List(ctx context.Context, caller domain.Session, f domain.HistoryFilter) ([]domain.Transaction, error) {
	if err := requireClub(caller); err != nil {
		return nil, err
	}

	switch f.Type {
	case "", domain.TransactionDispense, domain.TransactionDispenseLog, domain.TransactionRefill:
	default:
		return nil, invalidArgument("unknown transaction type %q", f.Type)
	}

	if f.Before != "" {
		id, err := idx.Parse(f.Before)
		if err != nil {
			return nil, invalidArgument("before must be a transaction id")
		}
		f.Before = id.String()
	}

	switch {
	case f.Limit < 0:
		return nil, invalidArgument("limit must not be negative")
	case f.Limit == 0:
		f.Limit = DefaultHistoryLimit
	case f.Limit > MaxHistoryLimit:
		f.Limit = MaxHistoryLimit
	}

	return s.Store.Transactions().ListTransactions(ctx, caller.ClubID, f)
}
