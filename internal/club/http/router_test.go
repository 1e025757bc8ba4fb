package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/clubhouse/internal/club/blob"
	clubhttp "github.com/aussiebroadwan/clubhouse/internal/club/http"
	"github.com/aussiebroadwan/clubhouse/internal/club/pos"
	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/internal/club/store/drivers/sqlite"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/cryptox"
	"github.com/aussiebroadwan/clubhouse/pkg/idx"
	"github.com/aussiebroadwan/clubhouse/pkg/jwtx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const issuer = "clubhouse-test"

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "clubhouse-http")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newRouter(t *testing.T) *clubhttp.Router {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: issuer})
	require.NoError(t, err)

	blobs, err := blob.NewFSStore(t.TempDir(), "/v1/blobs")
	require.NoError(t, err)

	inventory := &service.InventoryService{Store: st}
	dispense := &service.DispenseService{Store: st}

	r := clubhttp.NewRouter(km, "test", st, slogx.Discard())
	r.Identity = &service.IdentityService{Store: st, KeyManager: km, Issuer: issuer}
	r.Provision = &service.ProvisionService{Store: st}
	r.Inventory = inventory
	r.Members = &service.MemberService{Store: st, Blobs: blobs}
	r.POS = &service.POSService{Registry: pos.NewRegistry(16, 0), Inventory: inventory, Dispense: dispense}
	r.History = &service.HistoryService{Store: st}
	r.Stats = &service.StatsService{Store: st}
	r.ApplyRoutes()
	return r
}

type client struct {
	t     *testing.T
	h     http.Handler
	ip    string
	token string
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	return c.send(httptest.NewRequest(method, path, rd))
}

func (c *client) send(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("X-Forwarded-For", c.ip)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// signUp registers username and signs in.
func signUp(t *testing.T, h http.Handler, username string) (*client, clubsdk.UserResponse) {
	t.Helper()
	c := &client{t: t, h: h, ip: "198.51.100." + username[:1]}

	rec := c.do(http.MethodPost, "/v1/users", clubsdk.RegisterUserRequest{Username: username, Password: "correct horse battery"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	user := decodeBody[clubsdk.UserResponse](t, rec)

	rec = c.do(http.MethodPost, "/v1/session", clubsdk.SignInRequest{Username: username, Password: "correct horse battery"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	c.token = decodeBody[clubsdk.SessionResponse](t, rec).AccessToken
	return c, user
}

// provision signs up an administrator of a new club and refreshes its token.
func provision(t *testing.T, h http.Handler) (*client, string) {
	t.Helper()
	c, user := signUp(t, h, "alice")

	rec := c.do(http.MethodPost, "/v1/clubs", clubsdk.ProvisionRequest{AdminUID: user.ID, ClubName: "The Club"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[clubsdk.ProvisionResponse](t, rec)
	require.Equal(t, clubsdk.ProvisionStatusSuccess, res.Status)

	rec = c.do(http.MethodPost, "/v1/session/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sess := decodeBody[clubsdk.SessionResponse](t, rec)
	require.Equal(t, res.ClubID, sess.ClubID)
	require.Equal(t, "administrator", sess.Role)
	c.token = sess.AccessToken
	return c, res.ClubID
}

func TestProvisionFlow(t *testing.T) {
	h := newRouter(t)
	c, user := signUp(t, h, "alice")

	rec := c.do(http.MethodGet, "/v1/club", nil)
	require.Equal(t, http.StatusForbidden, rec.Code, "token has no club yet")

	rec = c.do(http.MethodPost, "/v1/clubs", clubsdk.ProvisionRequest{AdminUID: "someone-else", ClubName: "The Club"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, clubsdk.KindPermissionDenied, decodeBody[clubsdk.Error](t, rec).Kind)

	rec = c.do(http.MethodPost, "/v1/clubs", clubsdk.ProvisionRequest{AdminUID: user.ID, ClubName: "  "})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, clubsdk.KindInvalidArgument, decodeBody[clubsdk.Error](t, rec).Kind)

	anon := &client{t: t, h: h, ip: "203.0.113.9"}
	rec = anon.do(http.MethodPost, "/v1/clubs", clubsdk.ProvisionRequest{AdminUID: user.ID, ClubName: "The Club"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/v1/clubs", clubsdk.ProvisionRequest{AdminUID: user.ID, ClubName: "The Club"})
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeBody[clubsdk.ProvisionResponse](t, rec)

	rec = c.do(http.MethodPost, "/v1/clubs", clubsdk.ProvisionRequest{AdminUID: user.ID, ClubName: "The Club"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, first.ClubID, decodeBody[clubsdk.ProvisionResponse](t, rec).ClubID)

	rec = c.do(http.MethodPost, "/v1/session/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	c.token = decodeBody[clubsdk.SessionResponse](t, rec).AccessToken

	rec = c.do(http.MethodGet, "/v1/club", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	club := decodeBody[clubsdk.ClubResponse](t, rec)
	require.Equal(t, first.ClubID, club.ID)
	require.Equal(t, "The Club", club.Name)
	require.Equal(t, user.ID, club.AdminUID)
}

func TestSignInRejectsBadPassword(t *testing.T) {
	h := newRouter(t)
	signUp(t, h, "alice")

	c := &client{t: t, h: h, ip: "203.0.113.7"}
	rec := c.do(http.MethodPost, "/v1/session", clubsdk.SignInRequest{Username: "alice", Password: "wrong password"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/v1/users", clubsdk.RegisterUserRequest{Username: "alice", Password: "another password"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodPost, "/v1/users", clubsdk.RegisterUserRequest{Username: "al", Password: "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody[clubsdk.Error](t, rec)
	require.Contains(t, body.Fields, "username")
	require.Contains(t, body.Fields, "password")
}

func TestInventoryEndpoints(t *testing.T) {
	h := newRouter(t)
	c, _ := provision(t, h)

	rec := c.do(http.MethodPost, "/v1/inventory", clubsdk.CreateItemRequest{Name: "Lager", Kind: "widget"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, decodeBody[clubsdk.Error](t, rec).Fields, "kind")

	price, stock := decimal.NewFromInt(10), decimal.NewFromInt(24)
	rec = c.do(http.MethodPost, "/v1/inventory", clubsdk.CreateItemRequest{
		Name: "Lager", Group: "Drinks", Category: "Beer", UnitPrice: &price,
		MinSaleUnit: decimal.NewFromInt(1), Kind: "stock", StockLevel: &stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeBody[clubsdk.ItemResponse](t, rec)
	require.Equal(t, "stock", item.Kind)

	rec = c.do(http.MethodPost, "/v1/inventory/"+item.ID+"/refill", clubsdk.RefillRequest{Amount: decimal.NewFromInt(6)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "30", decodeBody[clubsdk.ItemResponse](t, rec).StockLevel.String())

	rec = c.do(http.MethodGet, "/v1/inventory", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[clubsdk.ItemListResponse](t, rec).Items, 1)

	rec = c.do(http.MethodGet, "/v1/inventory/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/v1/inventory/"+idx.New().String(), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/v1/inventory/"+strings.ToLower(item.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, item.ID, decodeBody[clubsdk.ItemResponse](t, rec).ID)

	rec = c.do(http.MethodPost, "/v1/members/not-a-member/veto", clubsdk.VetoRequest{Vetoed: true})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryCursor(t *testing.T) {
	h := newRouter(t)
	c, _ := provision(t, h)

	price, stock := decimal.NewFromInt(10), decimal.NewFromInt(1)
	rec := c.do(http.MethodPost, "/v1/inventory", clubsdk.CreateItemRequest{
		Name: "Lager", UnitPrice: &price, MinSaleUnit: decimal.NewFromInt(1), Kind: "stock", StockLevel: &stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeBody[clubsdk.ItemResponse](t, rec)

	for range 3 {
		rec = c.do(http.MethodPost, "/v1/inventory/"+item.ID+"/refill", clubsdk.RefillRequest{Amount: decimal.NewFromInt(1)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = c.do(http.MethodGet, "/v1/history?type=refill&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeBody[clubsdk.HistoryResponse](t, rec)
	require.Len(t, first.Transactions, 2)
	require.Equal(t, first.Transactions[1].ID, first.Next)

	rec = c.do(http.MethodGet, "/v1/history?type=refill&limit=2&before="+first.Next, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decodeBody[clubsdk.HistoryResponse](t, rec)
	require.Len(t, second.Transactions, 1)
	require.Less(t, second.Transactions[0].ID, first.Next)

	rec = c.do(http.MethodGet, "/v1/history?before="+second.Next, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	last := decodeBody[clubsdk.HistoryResponse](t, rec)
	require.Empty(t, last.Transactions)
	require.Empty(t, last.Next)

	rec = c.do(http.MethodGet, "/v1/history?before=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func registerMember(t *testing.T, c *client, name string) clubsdk.MemberResponse {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", name))
	require.NoError(t, mw.WriteField("email", strings.ToLower(name)+"@example.com"))
	fw, err := mw.CreateFormFile("photo", "id.png")
	require.NoError(t, err)
	_, err = fw.Write(pngHeader)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/members", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := c.send(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[clubsdk.MemberResponse](t, rec)
}

func TestMemberEndpoints(t *testing.T) {
	h := newRouter(t)
	c, _ := provision(t, h)

	m := registerMember(t, c, "Bob")
	require.Equal(t, "EXPIRED", m.Status)
	require.True(t, strings.HasPrefix(m.IDPhotoURL, "/v1/blobs/clubs/"))

	rec := c.do(http.MethodGet, m.IDPhotoURL, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, pngHeader, rec.Body.Bytes())

	rec = c.do(http.MethodPost, "/v1/members/"+m.ID+"/veto", clubsdk.VetoRequest{Vetoed: true})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "VETOED", decodeBody[clubsdk.MemberResponse](t, rec).Status)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Eve"))
	require.NoError(t, mw.WriteField("email", "eve@example.com"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/v1/members", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = c.send(req)
	require.Equal(t, http.StatusBadRequest, rec.Code, "photo is required")

	rec = c.do(http.MethodGet, "/v1/members", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[clubsdk.MemberListResponse](t, rec).Members, 1)

	rec = c.do(http.MethodGet, "/v1/blobs/clubs/other/member_ids/x.png", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPOSCheckoutFlow(t *testing.T) {
	h := newRouter(t)
	c, _ := provision(t, h)
	m := registerMember(t, c, "Bob")

	price, stock := decimal.NewFromInt(10), decimal.NewFromInt(5)
	rec := c.do(http.MethodPost, "/v1/inventory", clubsdk.CreateItemRequest{
		Name: "Lager", UnitPrice: &price, MinSaleUnit: decimal.NewFromInt(1), Kind: "stock", StockLevel: &stock,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decodeBody[clubsdk.ItemResponse](t, rec)

	rec = c.do(http.MethodPost, "/v1/pos/select", clubsdk.SelectItemRequest{ItemID: item.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decodeBody[clubsdk.POSResponse](t, rec)
	require.Equal(t, "1", view.Quantity)
	require.Equal(t, "10.00", view.Amount)

	rec = c.do(http.MethodPost, "/v1/pos/quantity", clubsdk.FieldRequest{Value: "1.5"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, decodeBody[clubsdk.POSResponse](t, rec).Error)

	rec = c.do(http.MethodPost, "/v1/pos/amount", clubsdk.FieldRequest{Value: "20"})
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeBody[clubsdk.POSResponse](t, rec)
	require.Equal(t, "2", view.Quantity)
	require.Empty(t, view.Error)

	rec = c.do(http.MethodPost, "/v1/pos/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeBody[clubsdk.POSResponse](t, rec)
	require.Len(t, view.Cart, 1)
	require.Equal(t, "20", view.Total.String())

	rec = c.do(http.MethodDelete, "/v1/pos/cart/not-an-item", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodGet, "/v1/pos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[clubsdk.POSResponse](t, rec).Cart, 1)

	rec = c.do(http.MethodPost, "/v1/pos/checkout", clubsdk.CheckoutRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/v1/pos/checkout", clubsdk.CheckoutRequest{MemberID: m.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	receipt := decodeBody[clubsdk.CheckoutResponse](t, rec)
	require.Equal(t, "20", receipt.Total.String())
	require.Equal(t, 1, receipt.Lines)

	rec = c.do(http.MethodGet, "/v1/pos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decodeBody[clubsdk.POSResponse](t, rec).Cart)

	rec = c.do(http.MethodPost, "/v1/pos/checkout", clubsdk.CheckoutRequest{MemberID: m.ID})
	require.Equal(t, http.StatusConflict, rec.Code, "empty cart")

	rec = c.do(http.MethodDelete, "/v1/pos", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = c.do(http.MethodGet, "/v1/history?type=dispense", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeBody[clubsdk.HistoryResponse](t, rec)
	require.Len(t, history.Transactions, 1)
	require.Equal(t, receipt.TransactionID, history.Transactions[0].ID)

	rec = c.do(http.MethodGet, "/v1/history?limit=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, "/v1/stats/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	low := decodeBody[clubsdk.LowStockResponse](t, rec)
	require.Len(t, low.Items, 1)
	require.Equal(t, "3", low.Items[0].StockLevel.String())

	rec = c.do(http.MethodGet, "/v1/stats/sales?tz=UTC", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sales := decodeBody[clubsdk.SalesResponse](t, rec)
	require.Len(t, sales.Days, 7)
	require.Equal(t, "20", sales.Days[6].Sales.String())

	rec = c.do(http.MethodGet, "/v1/stats/sales?tz=Nowhere/Special", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodGet, "/v1/stats/stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decodeBody[clubsdk.StockResponse](t, rec).Groups, 1)
}

func TestHealthEndpoints(t *testing.T) {
	h := newRouter(t)
	c := &client{t: t, h: h, ip: "203.0.113.1"}

	rec := c.do(http.MethodGet, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeBody[clubsdk.HealthResponse](t, rec).Status)

	rec = c.do(http.MethodGet, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decodeBody[clubsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", health.Checks.Database)
	require.Equal(t, "disabled", health.Checks.Events)
}

func TestJWKSVerifiesSessionTokens(t *testing.T) {
	h := newRouter(t)
	c, _ := signUp(t, h, "alice")
	anon := &client{t: t, h: h, ip: "203.0.113.2"}

	rec := anon.do(http.MethodGet, "/.well-known/jwks.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	set := decodeBody[clubsdk.JWKSResponse](t, rec)
	require.NotEmpty(t, set.Keys)

	token, _, err := jwt.NewParser().ParseUnverified(c.token, jwt.MapClaims{})
	require.NoError(t, err)
	kid, _ := token.Header["kid"].(string)
	require.NotEmpty(t, kid)

	kids := make([]string, 0, len(set.Keys))
	for _, k := range set.Keys {
		require.Equal(t, "OKP", k.Kty)
		require.Equal(t, "Ed25519", k.Crv)
		kids = append(kids, k.Kid)
	}
	require.Contains(t, kids, kid)
}

func TestGuestFlow(t *testing.T) {
	h := newRouter(t)
	admin, clubID := provision(t, h)
	bob, _ := signUp(t, h, "bob")

	rec := bob.do(http.MethodGet, "/v1/session/claims", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Empty(t, decodeBody[clubsdk.ClaimsResponse](t, rec).ClubID)

	rec = admin.do(http.MethodPost, "/v1/club/guests", clubsdk.GrantGuestRequest{Username: "bob"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	granted := decodeBody[clubsdk.ClaimsResponse](t, rec)
	require.Equal(t, clubID, granted.ClubID)
	require.Equal(t, "guest", granted.Role)

	rec = admin.do(http.MethodPost, "/v1/club/guests", clubsdk.GrantGuestRequest{Username: "nobody"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = bob.do(http.MethodGet, "/v1/session/claims", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, clubID, decodeBody[clubsdk.ClaimsResponse](t, rec).ClubID)

	rec = bob.do(http.MethodGet, "/v1/inventory", nil)
	require.Equal(t, http.StatusForbidden, rec.Code, "token predates the grant")

	rec = bob.do(http.MethodPost, "/v1/session/refresh", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	bob.token = decodeBody[clubsdk.SessionResponse](t, rec).AccessToken

	rec = bob.do(http.MethodGet, "/v1/inventory", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = bob.do(http.MethodPost, "/v1/inventory", clubsdk.CreateItemRequest{Name: "Lager", Kind: "stock", MinSaleUnit: decimal.NewFromInt(1)})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = bob.do(http.MethodPost, "/v1/club/guests", clubsdk.GrantGuestRequest{Username: "alice"})
	require.Equal(t, http.StatusForbidden, rec.Code)
}
