package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
	"github.com/shopspring/decimal"
)

// NewItem is the input of CreateItem. Kind picks which of StockLevel and
// Duration must be set; the other must be empty.
type NewItem struct {
	Name        string
	Group       string
	Category    string
	UnitPrice   *decimal.Decimal
	MinSaleUnit decimal.Decimal
	Kind        domain.ItemKind
	StockLevel  *decimal.Decimal
	Duration    string
	ImageURL    string
}

type InventoryService struct {
	Store store.Store
}

func (s *InventoryService) CreateItem(ctx context.Context, caller domain.Session, in NewItem) (domain.CatalogItem, error) {
	if err := requireAdministrator(caller); err != nil {
		return domain.CatalogItem{}, err
	}

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return domain.CatalogItem{}, invalidArgument("name is required")
	case in.UnitPrice != nil && in.UnitPrice.IsNegative():
		return domain.CatalogItem{}, invalidArgument("unitPrice must not be negative")
	case !in.MinSaleUnit.IsPositive():
		return domain.CatalogItem{}, invalidArgument("minSaleUnit must be positive")
	}

	holding, err := newHolding(in)
	if err != nil {
		return domain.CatalogItem{}, err
	}

	item := domain.CatalogItem{
		ID:          idx.New().String(),
		ClubID:      caller.ClubID,
		Name:        name,
		Group:       strings.TrimSpace(in.Group),
		Category:    strings.TrimSpace(in.Category),
		UnitPrice:   in.UnitPrice,
		MinSaleUnit: in.MinSaleUnit,
		Holding:     holding,
		ImageURL:    in.ImageURL,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Items().CreateItem(ctx, item); err != nil {
		return domain.CatalogItem{}, err
	}

	slogx.FromContext(ctx).Info("item created", "club_id", item.ClubID, "item_id", item.ID, "kind", item.Kind())
	return item, nil
}

// newHolding turns the kind specific fields into the item's holding.
func newHolding(in NewItem) (domain.Holding, error) {
	switch in.Kind {
	case domain.ItemKindStock:
		if in.Duration != "" {
			return nil, invalidArgument("stock items have no duration")
		}
		if in.StockLevel == nil {
			return nil, invalidArgument("stockLevel is required for stock items")
		}
		if in.StockLevel.IsNegative() {
			return nil, invalidArgument("stockLevel must not be negative")
		}
		return domain.StockTracked{Quantity: *in.StockLevel}, nil

	case domain.ItemKindMembership:
		if in.StockLevel != nil {
			return nil, invalidArgument("membership items have no stockLevel")
		}
		if !in.MinSaleUnit.IsInteger() {
			return nil, invalidArgument("membership items sell in whole units")
		}
		spec, err := domain.ParseDurationSpec(in.Duration)
		if err != nil {
			return nil, invalidArgument("duration: %v", err)
		}
		return domain.TimeBound{Duration: spec}, nil

	default:
		return nil, invalidArgument("kind must be %q or %q", domain.ItemKindStock, domain.ItemKindMembership)
	}
}

// ListItems returns the club's catalog, newest first.
func (s *InventoryService) ListItems(ctx context.Context, caller domain.Session) ([]domain.CatalogItem, error) {
	if err := requireClub(caller); err != nil {
		return nil, err
	}
	return s.Store.Items().ListItems(ctx, caller.ClubID)
}

func (s *InventoryService) GetItem(ctx context.Context, caller domain.Session, itemID string) (domain.CatalogItem, error) {
	if err := requireClub(caller); err != nil {
		return domain.CatalogItem{}, err
	}
	item, err := s.Store.Items().GetItem(ctx, caller.ClubID, itemID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.CatalogItem{}, ErrItemNotFound
	}
	return item, err
}

// Refill adds delta to a stock-tracked item and records a refill entry in
// the ledger.
func (s *InventoryService) Refill(ctx context.Context, caller domain.Session, itemID string, delta decimal.Decimal) (domain.CatalogItem, error) {
	if err := requireAdministrator(caller); err != nil {
		return domain.CatalogItem{}, err
	}
	if !delta.IsPositive() {
		return domain.CatalogItem{}, invalidArgument("refill amount must be positive")
	}

	var item domain.CatalogItem
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		item, err = tx.Items().GetItem(ctx, caller.ClubID, itemID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		stock, ok := item.Stock()
		if !ok {
			return ErrNotStockTracked
		}
		if err := tx.Items().AdjustStock(ctx, caller.ClubID, itemID, delta); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Transactions().CreateTransaction(ctx, domain.Transaction{
			ID:        idx.NewAt(now).String(),
			ClubID:    caller.ClubID,
			Type:      domain.TransactionRefill,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Quantity:  delta,
			UserID:    caller.UserID,
			CreatedAt: now,
		}); err != nil {
			return err
		}

		item.Holding = domain.StockTracked{Quantity: stock.Quantity.Add(delta)}
		return nil
	})
	if err != nil {
		return domain.CatalogItem{}, err
	}

	slogx.FromContext(ctx).Info("item refilled", "club_id", caller.ClubID, "item_id", itemID, "delta", delta.String())
	return item, nil
}
