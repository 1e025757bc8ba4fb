package http

import (
	"net/http"

	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
)

// POSHandler exposes the caller's point of sale session. Every endpoint
// answers with the whole session state so the client never has to merge.
type POSHandler struct {
	POS       *service.POSService
	Validator *clubsdk.Validator
}

func (h *POSHandler) write(w http.ResponseWriter, r *http.Request, v service.POSView, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPOS(v))
}

// HandleView godoc
//
//	@Summary		Point of Sale State
//	@Tags			POS
//	@Produce		json
//	@Success		200	{object}	clubsdk.POSResponse
//	@Security		BearerAuth
//	@Router			/v1/pos [get].
func (h *POSHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	v, err := h.POS.View(r.Context(), sessionFrom(r))
	h.write(w, r, v, err)
}

// HandleSelect godoc
//
//	@Summary		Select Item
//	@Description	Start a new line for an item. Quantity resets to 1 and the amount is derived from the unit price.
//	@Tags			POS
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.SelectItemRequest	true	"Item"
//	@Success		200		{object}	clubsdk.POSResponse
//	@Failure		404		{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/pos/select [post].
func (h *POSHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.SelectItemRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.POS.Select(r.Context(), sessionFrom(r), req.ItemID)
	h.write(w, r, v, err)
}

// HandleQuantity godoc
//
//	@Summary		Edit Quantity
//	@Description	Set the quantity text; the amount follows. Fractions of whole-unit items are reported in error and block adding.
//	@Tags			POS
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.FieldRequest	true	"Quantity text"
//	@Success		200		{object}	clubsdk.POSResponse
//	@Security		BearerAuth
//	@Router			/v1/pos/quantity [post].
func (h *POSHandler) HandleQuantity(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.FieldRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.POS.SetQuantity(r.Context(), sessionFrom(r), req.Value)
	h.write(w, r, v, err)
}

// HandleAmount godoc
//
//	@Summary		Edit Amount
//	@Description	Set the amount text; the quantity follows, rounded to whole units where the item requires it.
//	@Tags			POS
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.FieldRequest	true	"Amount text"
//	@Success		200		{object}	clubsdk.POSResponse
//	@Security		BearerAuth
//	@Router			/v1/pos/amount [post].
func (h *POSHandler) HandleAmount(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.FieldRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.POS.SetAmount(r.Context(), sessionFrom(r), req.Value)
	h.write(w, r, v, err)
}

// HandleAdd godoc
//
//	@Summary		Add to Cart
//	@Description	Commit the current line to the cart. Adding an item already in the cart increases its quantity.
//	@Tags			POS
//	@Produce		json
//	@Success		200	{object}	clubsdk.POSResponse
//	@Security		BearerAuth
//	@Router			/v1/pos/cart [post].
func (h *POSHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	v, err := h.POS.AddToCart(r.Context(), sessionFrom(r))
	h.write(w, r, v, err)
}

// HandleRemove godoc
//
//	@Summary		Remove from Cart
//	@Tags			POS
//	@Produce		json
//	@Param			itemId	path		string	true	"Item ID"
//	@Success		200		{object}	clubsdk.POSResponse
//	@Failure		404		{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/pos/cart/{itemId} [delete].
func (h *POSHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}
	v, err := h.POS.RemoveFromCart(r.Context(), sessionFrom(r), id)
	h.write(w, r, v, err)
}

// HandleClear godoc
//
//	@Summary		Clear Cart
//	@Tags			POS
//	@Produce		json
//	@Success		200	{object}	clubsdk.POSResponse
//	@Security		BearerAuth
//	@Router			/v1/pos/cart [delete].
func (h *POSHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	v, err := h.POS.ClearCart(r.Context(), sessionFrom(r))
	h.write(w, r, v, err)
}

// HandleEnd godoc
//
//	@Summary		End Session
//	@Tags			POS
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/pos [delete].
func (h *POSHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	if err := h.POS.End(r.Context(), sessionFrom(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCheckout godoc
//
//	@Summary		Checkout
//	@Description	Dispense the cart to a member. Stock is decremented and the sale recorded atomically; memberships are activated in the background.
//	@Tags			POS
//	@Accept			json
//	@Produce		json
//	@Param			request	body		clubsdk.CheckoutRequest	true	"Member"
//	@Success		200		{object}	clubsdk.CheckoutResponse
//	@Failure		404		{object}	clubsdk.Error	"member or item not found"
//	@Failure		409		{object}	clubsdk.Error	"empty cart, vetoed member or insufficient stock"
//	@Security		BearerAuth
//	@Router			/v1/pos/checkout [post].
func (h *POSHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req clubsdk.CheckoutRequest
	if err := decode(r, h.Validator, &req); err != nil {
		writeError(w, r, err)
		return
	}

	receipt, err := h.POS.Checkout(r.Context(), sessionFrom(r), req.MemberID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clubsdk.CheckoutResponse{
		TransactionID: receipt.TransactionID,
		Total:         receipt.Total,
		Lines:         receipt.Lines,
	})
}
