package kernel

import (
	"strings"

	"freight/internal/pkg/errs"
)

// Owner records who an order or address-book entry belongs to. A registered
// customer is identified by user id; a guest checkout by its session key.
type Owner struct {
	userID       int64
	guestSession string
}

// RestoreOwner rebuilds an owner from persisted columns.
func RestoreOwner(userID int64, guestSession string) Owner {
	return Owner{userID: userID, guestSession: guestSession}
}

func (o Owner) UserID() int64 {
	return o.userID
}

func (o Owner) GuestSession() string {
	return o.guestSession
}

func (o Owner) IsEmpty() bool {
	return o.userID == 0 && o.guestSession == ""
}

// Actor is the identity of the caller of an order step. It is passed
// explicitly into every command; nothing reads it from ambient state.
type Actor struct {
	userID        int64
	accountNumber string
	guestSession  string
}

// NewCustomer builds the identity of a registered account holder.
// accountNumber is the customer's own carrier account and may be empty.
func NewCustomer(userID int64, accountNumber string) (Actor, error) {
	if userID <= 0 {
		return Actor{}, errs.NewValueIsOutOfRangeError("userID", userID, 1, "max int64")
	}
	return Actor{userID: userID, accountNumber: strings.TrimSpace(accountNumber)}, nil
}

// NewGuest builds the identity of an unregistered checkout session.
func NewGuest(session string) (Actor, error) {
	session = strings.TrimSpace(session)
	if session == "" {
		return Actor{}, errs.NewValueIsRequiredError("guestSession")
	}
	return Actor{guestSession: session}, nil
}

// Anonymous is a caller with no identity at all. It may not touch any order.
func Anonymous() Actor {
	return Actor{}
}

func (a Actor) UserID() int64 {
	return a.userID
}

func (a Actor) AccountNumber() string {
	return a.accountNumber
}

func (a Actor) IsAuthenticated() bool {
	return a.userID > 0 || a.guestSession != ""
}

// IsAccountHolder reports whether the caller is a registered customer.
// Account holders are billed out of band.
func (a Actor) IsAccountHolder() bool {
	return a.userID > 0
}

// Owner is the ownership record an aggregate created by this actor carries.
func (a Actor) Owner() Owner {
	if a.userID > 0 {
		return Owner{userID: a.userID}
	}
	return Owner{guestSession: a.guestSession}
}

// Owns matches the caller against an ownership record. Anonymous callers own nothing.
func (a Actor) Owns(o Owner) bool {
	if !a.IsAuthenticated() || o.IsEmpty() {
		return false
	}
	if o.userID > 0 {
		return a.userID == o.userID
	}
	return a.userID == 0 && a.guestSession == o.guestSession
}
