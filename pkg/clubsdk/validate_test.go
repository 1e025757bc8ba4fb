package clubsdk_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestValidatorUsesJSONNames(t *testing.T) {
	v := clubsdk.NewValidator()

	err := v.Validate(clubsdk.CreateItemRequest{Name: "  ", Kind: "widget", MinSaleUnit: decimal.Zero})
	require.Error(t, err)

	var cerr *clubsdk.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, clubsdk.KindInvalidArgument, cerr.Kind)
	require.Equal(t, http.StatusBadRequest, cerr.StatusCode)
	require.Equal(t, "required", cerr.Fields["name"])
	require.Contains(t, cerr.Fields["kind"], "one of")
	require.Contains(t, cerr.Fields, "minSaleUnit")
}

func TestValidatorAcceptsValid(t *testing.T) {
	v := clubsdk.NewValidator()
	price := decimal.NewFromInt(10)

	require.NoError(t, v.Validate(clubsdk.CreateItemRequest{
		Name:        "Lager",
		Kind:        "stock",
		MinSaleUnit: decimal.NewFromInt(1),
		UnitPrice:   &price,
	}))
	require.NoError(t, v.Validate(clubsdk.RefillRequest{Amount: decimal.RequireFromString("0.5")}))
	require.Error(t, v.Validate(clubsdk.RefillRequest{Amount: decimal.Zero}))
}

func TestValidatorComparesDecimals(t *testing.T) {
	v := clubsdk.NewValidator()
	negative := decimal.RequireFromString("-0.01")

	err := v.Validate(clubsdk.CreateItemRequest{
		Name:        "Lager",
		Kind:        "stock",
		MinSaleUnit: decimal.RequireFromString("0.1"),
		UnitPrice:   &negative,
		StockLevel:  &negative,
	})
	var cerr *clubsdk.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, "must be at least 0", cerr.Fields["unitPrice"])
	require.Equal(t, "must be at least 0", cerr.Fields["stockLevel"])
	require.NotContains(t, cerr.Fields, "minSaleUnit")
}

func TestRequestDecimalsDecodeExactly(t *testing.T) {
	var req clubsdk.CreateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Flour","kind":"stock","unitPrice":0.1,"minSaleUnit":"0.1","stockLevel":2.5}`), &req))

	require.Equal(t, "0.1", req.UnitPrice.String())
	require.Equal(t, "0.1", req.MinSaleUnit.String())
	require.Equal(t, "2.5", req.StockLevel.String())
	require.True(t, req.UnitPrice.Mul(decimal.NewFromInt(3)).Equal(decimal.RequireFromString("0.3")))
}

func TestErrorWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	clubsdk.ErrNotFound.WithMessage("member not found").WriteError(rec)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"kind":"not-found","message":"member not found"}`, rec.Body.String())
	require.Equal(t, "not found", clubsdk.ErrNotFound.Message)
}
