package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/shopspring/decimal"
)

const (
	DefaultLowStockThreshold = 20
	uncategorized            = "Uncategorized"
)

type StatsService struct {
	Store             store.Store
	LowStockThreshold decimal.Decimal
}

// DailySales sums dispensed amounts per day for the week ending on now's
// day, oldest first. Days are labelled Mon, Tue and so on, in now's
// location.
func (s *StatsService) DailySales(ctx context.Context, caller domain.Session, now time.Time) ([]domain.DailySale, error) {
	if err := requireClub(caller); err != nil {
		return nil, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -6)

	entries, err := s.Store.Transactions().ListTransactions(ctx, caller.ClubID, domain.HistoryFilter{
		Type:  domain.TransactionDispenseLog,
		Since: start,
	})
	if err != nil {
		return nil, err
	}

	days := make([]domain.DailySale, 7)
	for i := range days {
		days[i].Day = start.AddDate(0, 0, i).Weekday().String()[:3]
	}
	for _, e := range entries {
		if e.Amount == nil {
			continue
		}
		at := e.CreatedAt.In(now.Location())
		d := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, now.Location())
		// Calendar days, not 24h steps, so DST changes do not shift buckets.
		for i := range days {
			if d.Equal(start.AddDate(0, 0, i)) {
				days[i].Sales = days[i].Sales.Add(*e.Amount)
				break
			}
		}
	}
	return days, nil
}

func (s *StatsService) threshold() decimal.Decimal {
	if !s.LowStockThreshold.IsPositive() {
		return decimal.NewFromInt(DefaultLowStockThreshold)
	}
	return s.LowStockThreshold
}

// LowStock returns stock-tracked items below the threshold, lowest first.
func (s *StatsService) LowStock(ctx context.Context, caller domain.Session) ([]domain.CatalogItem, decimal.Decimal, error) {
	if err := requireClub(caller); err != nil {
		return nil, decimal.Zero, err
	}
	items, err := s.Store.Items().ListStockBelow(ctx, caller.ClubID, s.threshold())
	return items, s.threshold(), err
}

// StockByGroup totals stock levels per group and category. Empty labels
// are reported as "Uncategorized". Groups and categories are sorted by name.
func (s *StatsService) StockByGroup(ctx context.Context, caller domain.Session) ([]domain.StockGroup, error) {
	if err := requireClub(caller); err != nil {
		return nil, err
	}

	items, err := s.Store.Items().ListItems(ctx, caller.ClubID)
	if err != nil {
		return nil, err
	}

	totals := map[string]map[string]decimal.Decimal{}
	for _, it := range items {
		stock, ok := it.Stock()
		if !ok {
			continue
		}
		group, category := label(it.Group), label(it.Category)
		if totals[group] == nil {
			totals[group] = map[string]decimal.Decimal{}
		}
		totals[group][category] = totals[group][category].Add(stock.Quantity)
	}

	groups := make([]domain.StockGroup, 0, len(totals))
	for name, cats := range totals {
		g := domain.StockGroup{Name: name, Children: make([]domain.StockCategory, 0, len(cats))}
		for cat, v := range cats {
			g.Children = append(g.Children, domain.StockCategory{Name: cat, Value: v})
		}
		slices.SortFunc(g.Children, func(a, b domain.StockCategory) int { return cmp.Compare(a.Name, b.Name) })
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b domain.StockGroup) int { return cmp.Compare(a.Name, b.Name) })
	return groups, nil
}

func label(s string) string {
	if s == "" {
		return uncategorized
	}
	return s
}
