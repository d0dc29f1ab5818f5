package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StrategicRole is the merchandising role of a product. It biases the
// margin up or down relative to the cost band baseline.
type StrategicRole string

const (
	StrategicRoleAnchor      StrategicRole = "anchor"
	StrategicRoleConvenience StrategicRole = "convenience"
	StrategicRoleImpulse     StrategicRole = "impulse"
	StrategicRolePremium     StrategicRole = "premium"
)

func StrategicRoles() []StrategicRole {
	return []StrategicRole{
		StrategicRoleAnchor,
		StrategicRoleConvenience,
		StrategicRoleImpulse,
		StrategicRolePremium,
	}
}

func (r StrategicRole) IsValid() bool {
	switch r {
	case StrategicRoleAnchor, StrategicRoleConvenience, StrategicRoleImpulse, StrategicRolePremium:
		return true
	}
	return false
}

func ParseStrategicRole(s string) (StrategicRole, error) {
	role := StrategicRole(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", fmt.Errorf("unknown strategic role %q", s)
	}
	return role, nil
}

// PricingResult is what the engine hands back for a single (cost, role).
// AppliedMargin is the margin realised after rounding, not the target.
type PricingResult struct {
	FinalPrice    decimal.Decimal
	AppliedMargin decimal.Decimal
	RuleVersion   string
}

// CatalogRow is an unvalidated product as it arrives from a file or request.
type CatalogRow struct {
	SKU  string
	Name string
	Cost string
	Role string
}

type CatalogProduct struct {
	SKU  string
	Name string
	Cost decimal.Decimal
	Role StrategicRole
}

type PricedProduct struct {
	CatalogProduct
	PricingResult
	SafetyNetApplied bool
}

// RejectedProduct is a catalog row that could not be priced. Cost and Role
// hold whatever the caller sent, which may not parse.
type RejectedProduct struct {
	SKU    string
	Cost   string
	Role   string
	Reason string
}

type RepricingSummary struct {
	Count        int
	MeanMargin   float64
	MedianMargin float64
	MinMargin    float64
	MaxMargin    float64
}

type RepricingRun struct {
	RunID    uuid.UUID
	PricedAt time.Time
	Priced   []PricedProduct
	Rejected []RejectedProduct
	Summary  RepricingSummary
}

// StoredPrice is the current persisted price of a sku.
type StoredPrice struct {
	PricedProduct
	RunID    uuid.UUID
	PricedAt time.Time
}
