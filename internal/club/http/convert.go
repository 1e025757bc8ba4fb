package http

import (
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/pos"
	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
)

func toItem(it domain.CatalogItem) clubsdk.ItemResponse {
	out := clubsdk.ItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Group:       it.Group,
		Category:    it.Category,
		UnitPrice:   it.UnitPrice,
		MinSaleUnit: it.MinSaleUnit,
		Kind:        string(it.Kind()),
		ImageURL:    it.ImageURL,
		CreatedAt:   it.CreatedAt,
	}
	switch h := it.Holding.(type) {
	case domain.StockTracked:
		out.StockLevel = domain.Ptr(h.Quantity)
	case domain.TimeBound:
		out.Duration = h.Duration.String()
	}
	return out
}

func toItems(items []domain.CatalogItem) []clubsdk.ItemResponse {
	out := make([]clubsdk.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItem(it))
	}
	return out
}

func toMember(m domain.Member, now time.Time) clubsdk.MemberResponse {
	return clubsdk.MemberResponse{
		ID:                  m.ID,
		Name:                m.Name,
		Email:               m.Email,
		AvatarURL:           m.AvatarURL,
		IDPhotoURL:          m.IDPhotoURL,
		Vetoed:              m.Vetoed,
		Status:              string(m.Status(now)),
		MembershipExpiresAt: m.MembershipExpiresAt,
		CreatedAt:           m.CreatedAt,
	}
}

func toPOS(v service.POSView) clubsdk.POSResponse {
	out := clubsdk.POSResponse{
		Quantity: v.Quantity,
		Amount:   v.Amount,
		Cart:     toCart(v.Cart),
		Total:    v.Total,
	}
	if v.Selected != nil {
		item := toItem(*v.Selected)
		out.Selected = &item
	}
	if v.Err != nil {
		out.Error = v.Err.Error()
	}
	return out
}

func toCart(lines []pos.Line) []clubsdk.CartLineResponse {
	out := make([]clubsdk.CartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, clubsdk.CartLineResponse{
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			UnitPrice: l.Item.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.Amount(),
		})
	}
	return out
}

func toTransaction(t domain.Transaction) clubsdk.TransactionResponse {
	return clubsdk.TransactionResponse{
		ID:         t.ID,
		Type:       string(t.Type),
		ParentID:   t.ParentID,
		ItemID:     t.ItemID,
		ItemName:   t.ItemName,
		Quantity:   t.Quantity,
		Amount:     t.Amount,
		MemberID:   t.MemberID,
		MemberName: t.MemberName,
		UserID:     t.UserID,
		CreatedAt:  t.CreatedAt,
	}
}
