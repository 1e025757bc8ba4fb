package http

import (
	"net/http"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
)

type InventoryHandler struct {
	Inventory *service.InventoryService
	Validator *clubsdk.Validator
}

// HandleList godoc
//
//	@Summary		List Items
//	@Description	Catalog items of the caller's club, newest first.
//	@Tags			Inventory
//	@Produce		json
//	@Success		200	{object}	clubsdk.ItemListResponse
//	@Failure		403	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/inventory [get].
func (h *InventoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.Inventory.ListItems(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clubsdk.ItemListResponse{Items: toItems(items)})
}

// HandleCreate godoc
//
//	@Summary		Create Item
//	@Description	Add a stock tracked or membership item. Administrator only.
//	@Tags			Inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.CreateItemRequest	true	"Item"
//	@Success		201		{object}	clubsdk.ItemResponse
//	@Failure		400		{object}	clubsdk.Error
//	@Failure		403		{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/inventory [post].
func (h *InventoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.CreateItemRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Inventory.CreateItem(r.Context(), sessionFrom(r), service.NewItem{
		Name:        req.Name,
		Group:       req.Group,
		Category:    req.Category,
		UnitPrice:   req.UnitPrice,
		MinSaleUnit: req.MinSaleUnit,
		Kind:        domain.ItemKind(req.Kind),
		StockLevel:  req.StockLevel,
		Duration:    req.Duration,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toItem(item))
}

// HandleGet godoc
//
//	@Summary		Get Item
//	@Tags			Inventory
//	@Produce		json
//	@Param			id	path		string	true	"Item ID"
//	@Success		200	{object}	clubsdk.ItemResponse
//	@Failure		404	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/inventory/{id} [get].
func (h *InventoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.Inventory.GetItem(r.Context(), sessionFrom(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItem(item))
}

// HandleRefill godoc
//
//	@Summary		Refill Item
//	@Description	Add stock to a stock tracked item and record a refill in the history. Administrator only.
//	@Tags			Inventory
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Item ID"
//	@Param			request	body		clubsdk.RefillRequest	true	"Amount to add"
//	@Success		200		{object}	clubsdk.ItemResponse
//	@Failure		400		{object}	clubsdk.Error
//	@Failure		404		{object}	clubsdk.Error
//	@Failure		409		{object}	clubsdk.Error	"not stock tracked"
//	@Security		BearerAuth
//	@Router			/v1/inventory/{id}/refill [post].
func (h *InventoryHandler) HandleRefill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req clubsdk.RefillRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	item, err := h.Inventory.Refill(r.Context(), sessionFrom(r), id, req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toItem(item))
}
