package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
)

type HistoryHandler struct {
	History *service.HistoryService
}

// ServeHTTP godoc
//
//	@Summary		Transaction History
//	@Description	Ledger entries of the caller's club, newest first. Checkout parents are only listed when type=dispense.
//	@Tags			Reports
//	@Produce		json
//	@Param			type	query		string	false	"dispense, dispense-log or refill"
//	@Param			member	query		string	false	"Member ID"
//	@Param			item	query		string	false	"Item ID"
//	@Param			since	query		string	false	"RFC 3339 timestamp"
//	@Param			before	query		string	false	"Continue after this transaction ID (the previous page's next)"
//	@Param			limit	query		int		false	"Maximum entries (default 100, max 500)"
//	@Success		200		{object}	clubsdk.HistoryResponse
//	@Failure		400		{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/history [get].
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.HistoryFilter{
		Type:     domain.TransactionType(q.Get("type")),
		MemberID: q.Get("member"),
		ItemID:   q.Get("item"),
		Before:   q.Get("before"),
	}

	if s := q.Get("since"); s != "" {
		since, err := time.Parse(time.RFC3339, s)
		if err != nil {
			clubsdk.ErrInvalidArgument.WithMessage("since must be an RFC 3339 timestamp").WriteError(w)
			return
		}
		f.Since = since
	}
	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			clubsdk.ErrInvalidArgument.WithMessage("limit must be an integer").WriteError(w)
			return
		}
		f.Limit = limit
	}

	entries, err := h.History.List(r.Context(), sessionFrom(r), f)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]clubsdk.TransactionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toTransaction(e))
	}
	resp := clubsdk.HistoryResponse{Transactions: out}
	if len(entries) > 0 {
		resp.Next = entries[len(entries)-1].ID
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
