package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/internal/club/events"
	"github.com/aussiebroadwan/clubhouse/internal/club/service"
	"github.com/aussiebroadwan/clubhouse/internal/club/store"
	"github.com/aussiebroadwan/clubhouse/pkg/clubsdk"
	"github.com/aussiebroadwan/clubhouse/pkg/httpx"
	"github.com/aussiebroadwan/clubhouse/pkg/jwtx"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"

	_ "github.com/aussiebroadwan/clubhouse/api/club" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeyManager
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	validator    *clubsdk.Validator

	store     store.Store
	Events    events.Bus // Optional: reported by /readyz when set
	Identity  *service.IdentityService
	Provision *service.ProvisionService
	Inventory *service.InventoryService
	Members   *service.MemberService
	POS       *service.POSService
	History   *service.HistoryService
	Stats     *service.StatsService

	// MaxPhotoBytes bounds multipart member uploads.
	MaxPhotoBytes int64
}

func NewRouter(
	keys *jwtx.KeyManager,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		validator:    clubsdk.NewValidator(),
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerIdentity()
	r.registerClubs()
	r.registerInventory()
	r.registerMembers()
	r.registerPOS()
	r.registerReports()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Clubhouse API
//	@version		0.1.0
//	@description	Multi-tenant club management: provisioning, inventory, members, point of sale and reports.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/clubhouse
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed requires a valid bearer token.
func (r *Router) authed(h http.Handler, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.keys.Verifier),
		httpx.RateLimitByUser(limit),
	)
}

// inClub requires a bearer token bound to a club.
func (r *Router) inClub(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.keys.Verifier),
		httpx.RequireClub(),
		httpx.RateLimitByUser(limit),
	)
}

// adminOnly is inClub restricted to the club administrator.
func (r *Router) adminOnly(h http.HandlerFunc, limit httpx.RateLimitConfig) http.Handler {
	return httpx.Chain(h,
		httpx.AuthnMiddleware(r.keys.Verifier),
		httpx.RequireClub(),
		httpx.RequireRole(domain.RoleAdministrator),
		httpx.RateLimitByUser(limit),
	)
}

func (r *Router) registerIdentity() {
	h := &IdentityHandler{Identity: r.Identity, Validator: r.validator}

	// Public endpoints are limited by IP to slow down credential stuffing.
	r.Mux.Handle("POST /v1/users",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/session",
		httpx.Chain(http.HandlerFunc(h.HandleSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/session/refresh", r.authed(http.HandlerFunc(h.HandleRefresh), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/session/claims", r.authed(http.HandlerFunc(h.HandleClaims), httpx.LenientLimit))
}

func (r *Router) registerClubs() {
	h := &ClubHandler{Provision: r.Provision, Identity: r.Identity, Validator: r.validator}

	// Provisioning runs before the caller has a club, so only a token is required.
	r.Mux.Handle("POST /v1/clubs", r.authed(http.HandlerFunc(h.HandleProvision), httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/club", r.inClub(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/club/guests", r.adminOnly(h.HandleGrantGuest, httpx.ModerateLimit))
}

func (r *Router) registerInventory() {
	h := &InventoryHandler{Inventory: r.Inventory, Validator: r.validator}

	r.Mux.Handle("GET /v1/inventory", r.inClub(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/inventory", r.adminOnly(h.HandleCreate, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/inventory/{id}", r.inClub(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/inventory/{id}/refill", r.adminOnly(h.HandleRefill, httpx.ModerateLimit))
}

func (r *Router) registerMembers() {
	h := &MemberHandler{Members: r.Members, MaxPhotoBytes: r.MaxPhotoBytes}

	r.Mux.Handle("GET /v1/members", r.inClub(h.HandleList, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/members", r.inClub(h.HandleRegister, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/members/{id}", r.inClub(h.HandleGet, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/members/{id}/veto", r.adminOnly(h.HandleVeto, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/blobs/{key...}", r.inClub(h.HandlePhoto, httpx.LenientLimit))
}

func (r *Router) registerPOS() {
	h := &POSHandler{POS: r.POS, Validator: r.validator}

	// The point of sale is driven field by field, so it gets the lenient limit.
	r.Mux.Handle("GET /v1/pos", r.inClub(h.HandleView, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/pos", r.inClub(h.HandleEnd, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/pos/select", r.inClub(h.HandleSelect, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/pos/quantity", r.inClub(h.HandleQuantity, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/pos/amount", r.inClub(h.HandleAmount, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/pos/cart", r.inClub(h.HandleAdd, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/pos/cart/{itemId}", r.inClub(h.HandleRemove, httpx.LenientLimit))
	r.Mux.Handle("DELETE /v1/pos/cart", r.inClub(h.HandleClear, httpx.LenientLimit))
	r.Mux.Handle("POST /v1/pos/checkout", r.inClub(h.HandleCheckout, httpx.ModerateLimit))
}

func (r *Router) registerReports() {
	history := &HistoryHandler{History: r.History}
	stats := &StatsHandler{Stats: r.Stats}

	r.Mux.Handle("GET /v1/history", r.inClub(history.ServeHTTP, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/stats/sales", r.inClub(stats.HandleSales, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/stats/low-stock", r.inClub(stats.HandleLowStock, httpx.LenientLimit))
	r.Mux.Handle("GET /v1/stats/stock", r.inClub(stats.HandleStock, httpx.LenientLimit))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys.KeySet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.Events),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
