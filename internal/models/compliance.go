package models

// CompliancePhase is one of the three obligation buckets tracked per series.
type CompliancePhase string

const (
	PhasePreIssuance  CompliancePhase = "pre"
	PhasePostIssuance CompliancePhase = "post"
	PhaseRecurring    CompliancePhase = "recurring"
)

// Phases lists all buckets in dashboard order.
var Phases = []CompliancePhase{PhasePreIssuance, PhasePostIssuance, PhaseRecurring}

// ValidPhase reports whether p names a known compliance bucket.
func ValidPhase(p CompliancePhase) bool {
	switch p {
	case PhasePreIssuance, PhasePostIssuance, PhaseRecurring:
		return true
	}
	return false
}

// ComplianceRecord holds the completed/total document counts for one series
// and one obligation phase. Completed never exceeds Total.
type ComplianceRecord struct {
	Base
	SeriesID  string          `gorm:"type:uuid;not null;index:idx_compliance_series_phase,unique" json:"series_id"`
	Phase     CompliancePhase `gorm:"not null;index:idx_compliance_series_phase,unique" json:"phase"`
	Completed int             `gorm:"not null;default:0" json:"completed"`
	Total     int             `gorm:"not null;default:0" json:"total"`
}
