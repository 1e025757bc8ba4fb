package clubsdk

import (
	"time"

	"github.com/aussiebroadwan/clubhouse/pkg/jwtx"
	"github.com/shopspring/decimal"
)

// ProvisionStatusSuccess is the status returned by a successful provisioning.
const ProvisionStatusSuccess = "success"

type RegisterUserRequest struct {
	Username    string `json:"username"    validate:"required,min=3,max=32"`
	DisplayName string `json:"displayName" validate:"max=64"`
	Password    string `json:"password"    validate:"required,min=8,max=128"`
}

type UserResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse carries a bearer token. ClubID and Role are empty until
// the user provisions or joins a club.
type SessionResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
	ClubID      string `json:"clubId,omitempty"`
	Role        string `json:"role,omitempty"`
}

// ClaimsResponse is the caller's stored club binding. It may be ahead of
// the claims in the current token until the session is refreshed.
type ClaimsResponse struct {
	UserID    string     `json:"userId"`
	ClubID    string     `json:"clubId,omitempty"`
	Role      string     `json:"role,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type GrantGuestRequest struct {
	Username string `json:"username" validate:"required,max=32"`
}

type ProvisionRequest struct {
	AdminUID string `json:"adminUid"`
	ClubName string `json:"clubName"`
}

type ProvisionResponse struct {
	Status string `json:"status"`
	ClubID string `json:"clubId"`
}

type ClubResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AdminUID  string    `json:"adminUid"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateItemRequest adds a catalog item. Kind "stock" requires StockLevel,
// kind "membership" requires Duration ("30 days", "1 year").
type CreateItemRequest struct {
	Name        string           `json:"name"        validate:"notblank,max=128"`
	Group       string           `json:"group"       validate:"max=64"`
	Category    string           `json:"category"    validate:"max=64"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"   validate:"omitempty,gte=0"`
	MinSaleUnit decimal.Decimal  `json:"minSaleUnit" validate:"gt=0"`
	Kind        string           `json:"kind"        validate:"required,oneof=stock membership"`
	StockLevel  *decimal.Decimal `json:"stockLevel"  validate:"omitempty,gte=0"`
	Duration    string           `json:"duration"    validate:"max=32"`
	ImageURL    string           `json:"imageUrl"    validate:"omitempty,url"`
}

type ItemResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Group       string           `json:"group"`
	Category    string           `json:"category"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	MinSaleUnit decimal.Decimal  `json:"minSaleUnit"`
	Kind        string           `json:"kind"`
	StockLevel  *decimal.Decimal `json:"stockLevel,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
}

type RefillRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

type MemberResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	AvatarURL           string     `json:"avatarUrl,omitempty"`
	IDPhotoURL          string     `json:"idPhotoUrl"`
	Vetoed              bool       `json:"vetoed"`
	Status              string     `json:"status"`
	MembershipExpiresAt *time.Time `json:"membershipExpiresAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
}

type VetoRequest struct {
	Vetoed bool `json:"vetoed"`
}

type SelectItemRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

// FieldRequest carries the raw text of an edited quantity or amount field.
type FieldRequest struct {
	Value string `json:"value" validate:"max=32"`
}

type CartLineResponse struct {
	ItemID    string           `json:"itemId"`
	Name      string           `json:"name"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Quantity  decimal.Decimal  `json:"quantity"`
	LineTotal decimal.Decimal  `json:"lineTotal"`
}

// POSResponse is the whole point of sale state of the caller.
type POSResponse struct {
	Selected *ItemResponse      `json:"selected"`
	Quantity string             `json:"quantity"`
	Amount   string             `json:"amount"`
	Error    string             `json:"error,omitempty"`
	Cart     []CartLineResponse `json:"cart"`
	Total    decimal.Decimal    `json:"total"`
}

type CheckoutRequest struct {
	MemberID string `json:"memberId" validate:"required"`
}

type CheckoutResponse struct {
	TransactionID string          `json:"transactionId"`
	Total         decimal.Decimal `json:"total"`
	Lines         int             `json:"lines"`
}

type TransactionResponse struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	ParentID   string           `json:"parentId,omitempty"`
	ItemID     string           `json:"itemId,omitempty"`
	ItemName   string           `json:"itemName,omitempty"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	MemberID   string           `json:"memberId,omitempty"`
	MemberName string           `json:"memberName,omitempty"`
	UserID     string           `json:"userId"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// HistoryResponse is one page of the ledger. Next is passed as before to
// fetch the following page; a page with no entries is the last.
type HistoryResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Next         string                `json:"next,omitempty"`
}

type DailySale struct {
	Day   string          `json:"day"`
	Sales decimal.Decimal `json:"sales"`
}

type SalesResponse struct {
	Days []DailySale `json:"days"`
}

type LowStockResponse struct {
	Threshold decimal.Decimal `json:"threshold"`
	Items     []ItemResponse  `json:"items"`
}

type StockCategory struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type StockGroup struct {
	Name     string          `json:"name"`
	Children []StockCategory `json:"children"`
}

type StockResponse struct {
	Groups []StockGroup `json:"groups"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency as "ok" or "error: ...".
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Events   string `json:"events"`
}

// JWKSResponse is the key set served at /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS
