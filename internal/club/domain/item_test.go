package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCatalogItemHolding(t *testing.T) {
	t.Parallel()

	stock := domain.CatalogItem{Holding: domain.StockTracked{Quantity: decimal.NewFromInt(12)}}
	require.Equal(t, domain.ItemKindStock, stock.Kind())
	s, ok := stock.Stock()
	require.True(t, ok)
	require.Equal(t, "12", s.Quantity.String())
	_, ok = stock.Membership()
	require.False(t, ok)

	spec := domain.DurationSpec{Value: 1, Unit: domain.UnitMonth}
	membership := domain.CatalogItem{Holding: domain.TimeBound{Duration: spec}}
	require.Equal(t, domain.ItemKindMembership, membership.Kind())
	m, ok := membership.Membership()
	require.True(t, ok)
	require.Equal(t, spec, m.Duration)
	_, ok = membership.Stock()
	require.False(t, ok)

	require.Equal(t, domain.ItemKind(""), domain.CatalogItem{}.Kind())
}

func TestCatalogItemUnits(t *testing.T) {
	t.Parallel()

	unit := func(s string) domain.CatalogItem {
		return domain.CatalogItem{MinSaleUnit: decimal.RequireFromString(s)}
	}

	require.True(t, unit("1").IntegralUnit())
	require.True(t, unit("6").IntegralUnit())
	require.True(t, unit("2.0").IntegralUnit())
	require.False(t, unit("0.1").IntegralUnit())

	_, ok := domain.CatalogItem{}.Price()
	require.False(t, ok)

	p, ok := domain.CatalogItem{UnitPrice: domain.Ptr(decimal.NewFromInt(8))}.Price()
	require.True(t, ok)
	require.Equal(t, "8", p.String())
}

func TestCatalogItemOnSaleUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unit string
		qty  string
		want bool
	}{
		{"1", "3", true},
		{"1", "3.0", true},
		{"1", "3.5", false},
		{"6", "12", true},
		{"6", "3", false},
		{"6", "7", false},
		{"0.1", "0.35", true},
		{"0.5", "0.7", true},
	}

	for _, tt := range tests {
		item := domain.CatalogItem{MinSaleUnit: decimal.RequireFromString(tt.unit)}
		require.Equal(t, tt.want, item.OnSaleUnit(decimal.RequireFromString(tt.qty)), "unit %s qty %s", tt.unit, tt.qty)
	}
}
