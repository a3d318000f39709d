package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxPriority is the highest priority a reminder may carry. Anything above it
// is rejected at validation time.
const MaxPriority = 4800

// Reminder is the single persistent entity: a thing to do, with a priority
// and the next time it becomes due.
//
// A negative priority means the reminder is dormant: parked, excluded from
// every scheduling view, and required to carry no trigger. Non-negative
// priorities must always have a trigger.
type Reminder struct {
	ID              uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Descr           string     `json:"descr" gorm:"not null"`
	Priority        int        `json:"priority" gorm:"not null;index:idx_reminders_priority"`
	TriggerOn       *time.Time `json:"trigger_on,omitempty" gorm:"index:idx_reminders_trigger_on"`
	NotificationID  *uint32    `json:"notification_id,omitempty"`
	PhoneNotifiedOn *time.Time `json:"phone_notified_on,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName specifies the table name for GORM
func (Reminder) TableName() string {
	return "reminders"
}

// ValidationError reports a violated entity invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Validate checks the entity invariants. Priority itself cannot be absent:
// the column is NOT NULL and the Go type is a plain int.
func (r *Reminder) Validate() error {
	if r.Priority > MaxPriority {
		return &ValidationError{Field: "priority", Reason: "is too high"}
	}
	if strings.TrimSpace(r.Descr) == "" {
		return &ValidationError{Field: "descr", Reason: "cannot be empty"}
	}
	if r.Priority >= 0 && r.TriggerOn == nil {
		return &ValidationError{Field: "trigger_on", Reason: "cannot be empty on non negative priority"}
	}
	if r.Priority < 0 && r.TriggerOn != nil {
		return &ValidationError{Field: "trigger_on", Reason: "should be nil on negative priority"}
	}
	return nil
}

// BeforeSave blocks any create or update that would violate the entity
// invariants, so an invalid reschedule can never reach the table.
func (r *Reminder) BeforeSave(tx *gorm.DB) error {
	return r.Validate()
}

// Dormant reports whether the reminder is parked (negative priority).
func (r *Reminder) Dormant() bool {
	return r.Priority < 0
}

// ShortID is the 8-character uuid prefix used in listings and notifications.
// Lookups accept any unambiguous prefix.
func (r *Reminder) ShortID() string {
	return r.ID.String()[:8]
}

// NotifyMessage is the title line used for desktop notifications.
func (r *Reminder) NotifyMessage() string {
	return fmt.Sprintf("[%s] Priority=%d: %s", r.ShortID(), r.Priority, r.Descr)
}
