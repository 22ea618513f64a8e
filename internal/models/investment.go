package models

// Investment is one subscription entry tying an investor to a series. Exits
// soft-delete the row (partial exit or full account deletion) so it remains
// readable for audit while dropping out of all live aggregates.
type Investment struct {
	Base
	InvestorID string `gorm:"type:uuid;not null;index" json:"-"`
	SeriesID   string `gorm:"type:uuid;not null;index" json:"series_id"`

	// SeriesName is denormalized for display and kept in lockstep with the
	// series record by the ledger's rename propagation.
	SeriesName string `gorm:"not null" json:"series_name"`

	// Amount in whole rupees.
	Amount int64 `gorm:"type:bigint;not null" json:"amount"`

	// Date is the subscription date as entered (DD/MM/YYYY or ISO 8601);
	// CreatedAt on Base carries the exact timestamp.
	Date string `gorm:"not null" json:"date"`

	Series   Series   `gorm:"foreignKey:SeriesID" json:"-"`
	Investor Investor `gorm:"foreignKey:InvestorID" json:"-"`
}
