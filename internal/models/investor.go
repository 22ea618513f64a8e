package models

// InvestorStatus is the account state of an investor. Deletion is a soft,
// audit-preserving state: the record and its (soft-deleted) holdings stay
// readable forever.
type InvestorStatus string

const (
	InvestorStatusActive      InvestorStatus = "active"
	InvestorStatusDeactivated InvestorStatus = "deactivated"
	InvestorStatusDeleted     InvestorStatus = "deleted"
)

// Investor represents an onboarded NCD investor. The holdings collection is
// the single source of truth for series membership; SeriesNames and
// TotalInvested are ledger-owned caches recomputed inside every mutation.
type Investor struct {
	Base
	// InvestorID is the business key, unique case-insensitively.
	InvestorID string `gorm:"uniqueIndex;not null" json:"investor_id"`
	Name       string `gorm:"not null" json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	Status InvestorStatus `gorm:"not null;default:'active'" json:"status"`
	Active bool           `gorm:"not null;default:true" json:"active"`

	// TotalInvested caches the sum of live holding amounts, in whole rupees.
	TotalInvested int64 `gorm:"type:bigint;not null;default:0" json:"investment"`

	// Refund/penalty breakdown recorded once on account deletion, for audit
	// display only.
	RefundAmount  int64 `gorm:"type:bigint;not null;default:0" json:"refund_amount"`
	PenaltyAmount int64 `gorm:"type:bigint;not null;default:0" json:"penalty_amount"`

	Holdings []Investment `gorm:"foreignKey:InvestorID;references:ID" json:"investments,omitempty"`

	// Populated at read time: distinct series names across live holdings.
	SeriesNames []string `gorm:"-" json:"series"`
}

// DeriveSeriesNames rebuilds the derived series-name list from the loaded
// holdings, preserving first-seen order.
func (inv *Investor) DeriveSeriesNames() {
	seen := make(map[string]bool, len(inv.Holdings))
	names := make([]string, 0, len(inv.Holdings))
	for i := range inv.Holdings {
		name := inv.Holdings[i].SeriesName
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	inv.SeriesNames = names
}
