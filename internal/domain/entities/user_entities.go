package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserStatus marks whether a member account is active in the network.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// TreePosition is the member's leg under their sponsor.
type TreePosition string

const (
	PositionLeft  TreePosition = "Left"
	PositionRight TreePosition = "Right"
)

// UserProfile is the member identity record. SponsorID is a reference to the
// referring member, never an ownership relation; it plays no part in wallet
// mutation logic.
type UserProfile struct {
	ID            uuid.UUID     `json:"-" db:"id"`
	MemberCode    string        `json:"id" db:"member_code"`
	Username      string        `json:"username" db:"username"`
	Name          string        `json:"name" db:"name"`
	Email         string        `json:"email" db:"email"`
	Phone         string        `json:"phone" db:"phone"`
	Country       string        `json:"country" db:"country"`
	SponsorID     *uuid.UUID    `json:"-" db:"sponsor_id"`
	SponsorCode   *string       `json:"sponsorId,omitempty" db:"sponsor_code"`
	SponsorName   string        `json:"sponsorName" db:"sponsor_name"`
	WalletAddress string        `json:"walletAddress" db:"wallet_address"`
	ImageURL      string        `json:"image" db:"image_url"`
	Position      *TreePosition `json:"position,omitempty" db:"position"`
	Status        UserStatus    `json:"status" db:"status"`
	JoinedAt      time.Time     `json:"joinedAt" db:"joined_at"`
}

// UpdateProfileRequest carries the mutable profile fields. Empty fields are
// left untouched.
type UpdateProfileRequest struct {
	Name                string `json:"name"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	Country             string `json:"country"`
	WalletAddress       string `json:"walletAddress"`
	Password            string `json:"password"`
	TransactionPassword string `json:"transactionPassword"`
}

// HasChanges reports whether the request would modify anything.
func (r *UpdateProfileRequest) HasChanges() bool {
	return r.Name != "" || r.Phone != "" || r.Email != "" || r.Country != "" ||
		r.WalletAddress != "" || r.Password != "" || r.TransactionPassword != ""
}

// TeamMember is one row of the direct referral listing.
type TeamMember struct {
	ID            uuid.UUID       `json:"-" db:"id"`
	SlNo          int             `json:"slNo" db:"-"`
	MemberCode    string          `json:"userId" db:"member_code"`
	Name          string          `json:"name" db:"name"`
	Country       string          `json:"country" db:"country"`
	Contact       string          `json:"contact" db:"phone"`
	Email         string          `json:"email" db:"email"`
	Position      *TreePosition   `json:"position,omitempty" db:"position"`
	Status        UserStatus      `json:"status" db:"status"`
	JoinedAt      time.Time       `json:"joinDate" db:"joined_at"`
	TotalActive   int             `json:"totalActive" db:"total_active"`
	TotalPurchase decimal.Decimal `json:"totalPurchase" db:"total_purchase"`
}

// GenealogyStatus is the display state of a genealogy slot.
type GenealogyStatus string

const (
	GenealogyActive   GenealogyStatus = "active"
	GenealogyInactive GenealogyStatus = "inactive"
	GenealogyOpen     GenealogyStatus = "open"
)

// GenealogyNode is one slot of the fixed-depth genealogy tree: the root plus
// two child slots, each child padded with two open slots. Unfilled positions
// carry the open placeholder.
type GenealogyNode struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Status   GenealogyStatus `json:"status"`
	Children []*GenealogyNode `json:"children,omitempty"`
}

// OpenSlot returns the placeholder node rendered for an unfilled position.
func OpenSlot() *GenealogyNode {
	return &GenealogyNode{ID: "NANA", Name: "Join here", Status: GenealogyOpen}
}

// ErrorResponse is the standard error envelope returned by the API.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Package is one catalog entry members can purchase into.
type Package struct {
	ID        int             `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	BotName   string          `json:"botName" db:"bot_name"`
	MinAmount decimal.Decimal `json:"minAmount" db:"min_amount"`
	MaxAmount decimal.Decimal `json:"maxAmount" db:"max_amount"`
	Active    bool            `json:"active" db:"active"`
}

// Validate checks catalog entry consistency.
func (p *Package) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("package name is required")
	}
	if p.MinAmount.IsNegative() || p.MaxAmount.LessThan(p.MinAmount) {
		return fmt.Errorf("invalid package amount range")
	}
	return nil
}
