package models

// AuditLog records every ledger and lifecycle mutation for compliance review.
// Writes to this table are best-effort: a failed audit write never fails the
// operation that produced it.
type AuditLog struct {
	Base
	Action     string `gorm:"not null" json:"action"`
	ActorName  string `gorm:"not null" json:"actor_name"`
	ActorRole  string `gorm:"not null" json:"actor_role"`
	EntityType string `gorm:"not null;index" json:"entity_type"`
	EntityID   string `gorm:"type:uuid;index" json:"entity_id"`
	Details    string `json:"details,omitempty"`
	Changes    string `json:"changes,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`
}
