package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
)

type StatsHandler struct {
	Stats *service.StatsService
}

// HandleSales godoc
//
//	@Summary		Daily Sales
//	@Description	Dispensed amounts for the last seven days, oldest first. Days follow the tz location (default UTC).
//	@Tags			Reports
//	@Produce		json
//	@Param			tz	query		string	false	"IANA time zone, e.g. Australia/Sydney"
//	@Success		200	{object}	clubsdk.SalesResponse
//	@Failure		400	{object}	clubsdk.Error
//	@Security		BearerAuth
//	@Router			/v1/stats/sales [get].
func (h *StatsHandler) HandleSales(w http.ResponseWriter, r *http.Request) {
	loc := time.UTC
	if tz := r.URL.Query().Get("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			clubsdk.ErrInvalidArgument.WithMessage("unknown time zone").WriteError(w)
			return
		}
		loc = l
	}

	days, err := h.Stats.DailySales(r.Context(), sessionFrom(r), time.Now().In(loc))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]clubsdk.DailySale, 0, len(days))
	for _, d := range days {
		out = append(out, clubsdk.DailySale{Day: d.Day, Sales: d.Sales})
	}
	httpx.WriteJSON(w, http.StatusOK, clubsdk.SalesResponse{Days: out})
}

// HandleLowStock godoc
//
//	@Summary		Low Stock
//	@Description	Stock tracked items below the configured threshold, lowest first.
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{object}	clubsdk.LowStockResponse
//	@Security		BearerAuth
//	@Router			/v1/stats/low-stock [get].
func (h *StatsHandler) HandleLowStock(w http.ResponseWriter, r *http.Request) {
	items, threshold, err := h.Stats.LowStock(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clubsdk.LowStockResponse{Threshold: threshold, Items: toItems(items)})
}

// HandleStock godoc
//
//	@Summary		Stock by Group
//	@Description	Total stock per group and category.
//	@Tags			Reports
//	@Produce		json
//	@Success		200	{object}	clubsdk.StockResponse
//	@Security		BearerAuth
//	@Router			/v1/stats/stock [get].
func (h *StatsHandler) HandleStock(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Stats.StockByGroup(r.Context(), sessionFrom(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]clubsdk.StockGroup, 0, len(groups))
	for _, g := range groups {
		sg := clubsdk.StockGroup{Name: g.Name, Children: make([]clubsdk.StockCategory, 0, len(g.Children))}
		for _, c := range g.Children {
			sg.Children = append(sg.Children, clubsdk.StockCategory{Name: c.Name, Value: c.Value})
		}
		out = append(out, sg)
	}
	httpx.WriteJSON(w, http.StatusOK, clubsdk.StockResponse{Groups: out})
}
