// Package business tracks whether the signed-in shopper has a business
// account and which pricing mode is active.
package business

import (
	"time"
)

type Mode string

const (
	ModeStandard Mode = "standard"
	ModeBusiness Mode = "business"
)

// ParseMode accepts only the two known modes.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeStandard, ModeBusiness:
		return Mode(s), true
	default:
		return "", false
	}
}

// DiscountRate is the business discount in percent.
const DiscountRate = 5

// Account links a company to a shopper. Email must equal the shopper's
// identity email.
type Account struct {
	Email        string    `json:"email"`
	CompanyName  string    `json:"companyName"`
	CompanyCode  string    `json:"companyCode"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// State is the position of a Store in its lifecycle.
type State int

const (
	StateNoIdentity State = iota
	StateStandardNoAccount
	StateStandardWithAccount
	StateBusinessMode
)

func (s State) String() string {
	switch s {
	case StateNoIdentity:
		return "no_identity"
	case StateStandardNoAccount:
		return "standard_no_account"
	case StateStandardWithAccount:
		return "standard_with_account"
	case StateBusinessMode:
		return "business_mode"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is the externally visible state of a Store.
type Snapshot struct {
	State              State    `json:"state"`
	HasBusinessAccount bool     `json:"hasBusinessAccount"`
	IsBusinessMode     bool     `json:"isBusinessMode"`
	BusinessAccount    *Account `json:"businessAccount"`
	DiscountRate       int      `json:"discountRate"`
	CurrentMode        Mode     `json:"currentMode"`
}
