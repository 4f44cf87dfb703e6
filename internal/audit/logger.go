package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-widget/internal/models"
)

// Sink stores audit events.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

// Logger writes events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		SessionID: ev.SessionID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		Reference: ev.Reference,
		Metadata:  metaJSON,
	}

	return l.db.WithContext(ctx).Create(&log).Error
}
