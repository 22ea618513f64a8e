package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"debentra/internal/logger"
	"debentra/internal/models"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event for a ledger or lifecycle mutation. Errors are
// logged but never propagate: a failed audit write must not undo or block
// the operation it describes.
func (s *auditService) Log(actorName, actorRole, action, entityType, entityID, ipAddress string, changes map[string]interface{}) {
	var changesJSON string
	if changes != nil {
		data, err := json.Marshal(changes)
		if err != nil {
			logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
			changesJSON = "{}"
		} else {
			changesJSON = string(data)
		}
	}

	entry := &models.AuditLog{
		Action:     action,
		ActorName:  actorName,
		ActorRole:  actorRole,
		EntityType: entityType,
		EntityID:   entityID,
		Changes:    changesJSON,
		IPAddress:  ipAddress,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"actor", actorName,
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
		)
	}
}
