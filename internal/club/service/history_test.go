package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/pos"
	"github.com/stretchr/testify/require"
)

func TestHistoryList(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	bob := f.member(t, admin, "Bob")
	amy := f.member(t, admin, "Amy")
	lager := f.stockItem(t, admin, "Lager", "10", "10", "1")

	_, err := f.inventory.Refill(ctx, admin, lager.ID, dec("5"))
	require.NoError(t, err)
	_, err = f.dispense.Checkout(ctx, admin, bob.ID, []pos.Line{{Item: lager, Quantity: dec("1")}})
	require.NoError(t, err)
	_, err = f.dispense.Checkout(ctx, admin, amy.ID, []pos.Line{{Item: lager, Quantity: dec("2")}})
	require.NoError(t, err)

	all, err := f.history.List(ctx, admin, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3, "parents are hidden by default")

	refills, err := f.history.List(ctx, admin, domain.HistoryFilter{Type: domain.TransactionRefill})
	require.NoError(t, err)
	require.Len(t, refills, 1)
	requireDecimal(t, "5", refills[0].Quantity)

	forBob, err := f.history.List(ctx, admin, domain.HistoryFilter{MemberID: bob.ID})
	require.NoError(t, err)
	require.Len(t, forBob, 1)
	require.Equal(t, "Bob", forBob[0].MemberName)

	limited, err := f.history.List(ctx, admin, domain.HistoryFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestHistoryPagesWithBefore(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	admin := f.admin(t)
	lager := f.stockItem(t, admin, "Lager", "10", "10", "1")

	for range 5 {
		_, err := f.inventory.Refill(ctx, admin, lager.ID, dec("1"))
		require.NoError(t, err)
	}

	all, err := f.history.List(ctx, admin, domain.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 5)

	var paged []string
	before := ""
	for {
		page, err := f.history.List(ctx, admin, domain.HistoryFilter{Limit: 2, Before: before})
		require.NoError(t, err)
		if len(page) == 0 {
			break
		}
		for _, e := range page {
			paged = append(paged, e.ID)
		}
		before = page[len(page)-1].ID
	}

	want := make([]string, 0, len(all))
	for _, e := range all {
		want = append(want, e.ID)
	}
	require.Equal(t, want, paged)
}

func TestHistoryListRejects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	admin := f.admin(t)

	_, err := f.history.List(context.Background(), admin, domain.HistoryFilter{Type: "sale"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.history.List(context.Background(), admin, domain.HistoryFilter{Limit: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.history.List(context.Background(), admin, domain.HistoryFilter{Before: "yesterday"})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.history.List(context.Background(), domain.Session{}, domain.HistoryFilter{})
	require.ErrorIs(t, err, ErrUnauthenticated)
}
