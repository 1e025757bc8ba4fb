package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

// A checkout writes one dispense entry as the parent of one dispense-log
// entry per cart line.
const (
	TransactionDispense    TransactionType = "dispense"
	TransactionDispenseLog TransactionType = "dispense-log"
	TransactionRefill      TransactionType = "refill"
)

// Transaction is a ledger entry. Item and member fields are denormalised so
// the history reads the same after an item or member is renamed.
type Transaction struct {
	ID         string
	ClubID     string
	Type       TransactionType
	ParentID   string
	ItemID     string
	ItemName   string
	Quantity   decimal.Decimal
	Amount     *decimal.Decimal
	MemberID   string
	MemberName string
	UserID     string
	CreatedAt  time.Time
}

// HistoryFilter narrows a ledger listing. Zero values mean no constraint.
type HistoryFilter struct {
	Type     TransactionType
	MemberID string
	ItemID   string
	Since    time.Time
	// Before is the id of the last entry of the previous page. Only older
	// entries are listed.
	Before string
	Limit  int
}
