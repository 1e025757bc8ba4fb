package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned when a conditional update matched no row
	// because the condition no longer holds (e.g. not enough stock).
	ErrConflict = errors.New("store: conflicting update")
)

// Store is the root data access interface. Sub-repositories are reached
// through it so that a Tx-scoped Store hands out the same repositories bound
// to the transaction.
type Store interface {
	Users() Users
	Clubs() Clubs
	Principals() Principals
	Items() Items
	Members() Members
	Transactions() Transactions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error
}

type Clubs interface {
	// CreateClub returns ErrAlreadyExists when the admin already owns a club.
	CreateClub(ctx context.Context, c domain.Club) error
	GetClubByID(ctx context.Context, id string) (domain.Club, error)
	GetClubByAdmin(ctx context.Context, userID string) (domain.Club, error)
}

type Principals interface {
	// UpsertPrincipal binds a user to a club, replacing any previous binding.
	UpsertPrincipal(ctx context.Context, p domain.Principal) error
	GetPrincipal(ctx context.Context, userID string) (domain.Principal, error)
}

// Items are always addressed inside a club; an item of another club is
// reported as ErrNotFound.
type Items interface {
	CreateItem(ctx context.Context, it domain.CatalogItem) error
	GetItem(ctx context.Context, clubID, id string) (domain.CatalogItem, error)

	// ListItems returns the club's catalog newest first.
	ListItems(ctx context.Context, clubID string) ([]domain.CatalogItem, error)

	// ListStockBelow returns stock-tracked items with a stock level below
	// threshold, lowest first.
	ListStockBelow(ctx context.Context, clubID string, threshold decimal.Decimal) ([]domain.CatalogItem, error)

	// AdjustStock adds delta to a stock-tracked item's level. It returns
	// ErrNotFound for unknown or membership items and ErrConflict when the
	// level would drop below zero.
	AdjustStock(ctx context.Context, clubID, id string, delta decimal.Decimal) error
}

type Members interface {
	CreateMember(ctx context.Context, m domain.Member) error
	GetMember(ctx context.Context, clubID, id string) (domain.Member, error)

	// ListMembers returns the club's members newest first.
	ListMembers(ctx context.Context, clubID string) ([]domain.Member, error)

	SetVetoed(ctx context.Context, clubID, id string, vetoed bool) error
	SetMembershipExpiry(ctx context.Context, clubID, id string, expiresAt time.Time) error
}

type Transactions interface {
	CreateTransaction(ctx context.Context, t domain.Transaction) error

	// ListTransactions returns ledger entries newest first. Parent dispense
	// entries are left out unless the filter asks for that type.
	ListTransactions(ctx context.Context, clubID string, f domain.HistoryFilter) ([]domain.Transaction, error)
}
