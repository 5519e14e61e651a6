package data

import (
	"time"

	"github.com/eokafor/librarium/internal/validator"
)

// Membership statuses. Only active members may borrow.
const (
	MemberStatusActive    = "active"
	MemberStatusInactive  = "inactive"
	MemberStatusSuspended = "suspended"
)

// The Member struct contains the data fields for a roster record. The
// membershipId is assigned from a sequence at creation when the caller does
// not supply one.
type Member struct {
	ID             int64     `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	MembershipID   string    `json:"membershipId"`
	MembershipDate time.Time `json:"membershipDate"`
	Status         string    `json:"status"`
	Version        int32     `json:"-"`
}

func ValidateMember(v *validator.Validator, member *Member) {
	v.Check(member.Name != "", "name", "must be provided")
	v.Check(len(member.Name) <= 500, "name", "must not be more than 500 bytes long")
	v.Check(member.Email != "", "email", "must be provided")
	v.Check(validator.Matches(member.Email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(member.Phone != "", "phone", "must be provided")
	v.Check(len(member.Phone) <= 30, "phone", "must not be more than 30 characters")
	v.Check(member.Address != "", "address", "must be provided")
	v.Check(len(member.Address) <= 1000, "address", "must not be more than 1000 bytes long")
	v.Check(validator.PermittedValue(member.Status, MemberStatusActive, MemberStatusInactive, MemberStatusSuspended), "status", "must be one of active, inactive or suspended")
}
