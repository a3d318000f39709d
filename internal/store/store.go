package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reminderd/internal/models"
	"reminderd/internal/schedule"
)

// NotFoundError reports a by-id lookup miss.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("reminder %q not found", e.ID)
}

// Store is the reminder repository. Every reschedule runs read-then-update
// under a row lock so two racing reschedules on the same id cannot lose a
// write.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get loads a reminder by id. Any unambiguous uuid prefix is accepted.
func (s *Store) Get(ctx context.Context, id string) (*models.Reminder, error) {
	var r models.Reminder
	err := s.db.WithContext(ctx).First(&r, "id::text LIKE ?", id+"%").Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reminder: %w", err)
	}
	return &r, nil
}

// Create validates and inserts a new reminder.
func (s *Store) Create(ctx context.Context, r *models.Reminder) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// Delete removes a reminder. Deletion is administrative; the caller is
// responsible for closing any live desktop notification first.
func (s *Store) Delete(ctx context.Context, r *models.Reminder) error {
	if err := s.db.WithContext(ctx).Delete(r).Error; err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

// All returns every reminder, dormant ones included, for the export dump.
func (s *Store) All(ctx context.Context) ([]models.Reminder, error) {
	var rs []models.Reminder
	if err := s.db.WithContext(ctx).Order("created_at").Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return rs, nil
}

// prioritized is the mandatory pre-filter for every scheduling view:
// dormant reminders never appear.
func prioritized(db *gorm.DB) *gorm.DB {
	return db.Where("priority >= 0")
}

func (s *Store) listPrioritized(ctx context.Context, cond func(*gorm.DB) *gorm.DB) ([]models.Reminder, error) {
	var rs []models.Reminder
	q := prioritized(s.db.WithContext(ctx))
	if cond != nil {
		q = cond(q)
	}
	if err := q.Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	// Ordering happens here rather than in SQL so the nil-trigger rule is
	// the comparator's, not the backend's.
	schedule.SortByPriorityFirst(rs)
	return rs, nil
}

// Prioritized returns all actively scheduled reminders, by-priority-first.
func (s *Store) Prioritized(ctx context.Context) ([]models.Reminder, error) {
	return s.listPrioritized(ctx, nil)
}

// Overdue returns the prioritized reminders whose trigger is at or before now.
func (s *Store) Overdue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	return s.listPrioritized(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("trigger_on <= ?", now)
	})
}

// DueWithin returns the prioritized reminders due within the horizon a
// reschedule code describes: "4h" asks for everything due in the next four
// hours. Jittered codes are accepted; the horizon just moves with the draw.
func (s *Store) DueWithin(ctx context.Context, code string, now time.Time) ([]models.Reminder, error) {
	horizon, err := schedule.ComputeNextTrigger(code, now)
	if err != nil {
		return nil, err
	}
	return s.listPrioritized(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("trigger_on <= ?", horizon)
	})
}

// Upto returns the prioritized reminders triggering strictly before ts.
func (s *Store) Upto(ctx context.Context, ts time.Time) ([]models.Reminder, error) {
	return s.listPrioritized(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("trigger_on < ?", ts)
	})
}

// Reschedule computes a new trigger from a code and persists it, then runs
// the birthday autofill hook. The code is parsed before the row is touched:
// an invalid code leaves the previous trigger intact.
func (s *Store) Reschedule(ctx context.Context, id, code string, from time.Time) (*models.Reminder, error) {
	c, err := schedule.ParseCode(code)
	if err != nil {
		return nil, err
	}
	return s.updateTrigger(ctx, id, func() time.Time { return c.Apply(from) })
}

// RescheduleAt sets an explicit trigger timestamp (the free-form date path;
// no jitter), then runs the autofill hook.
func (s *Store) RescheduleAt(ctx context.Context, id string, when time.Time) (*models.Reminder, error) {
	return s.updateTrigger(ctx, id, func() time.Time { return when })
}

// RescheduleAny accepts either a reschedule code or a free-form date string,
// the way the web form does.
func (s *Store) RescheduleAny(ctx context.Context, id, input string, from time.Time) (*models.Reminder, error) {
	if c, err := schedule.ParseCode(input); err == nil {
		return s.updateTrigger(ctx, id, func() time.Time { return c.Apply(from) })
	}
	when, err := schedule.ParseWhen(input)
	if err != nil {
		return nil, &schedule.InvalidCodeError{Code: input, Reason: "neither a reschedule code nor a date"}
	}
	return s.updateTrigger(ctx, id, func() time.Time { return when })
}

func (s *Store) updateTrigger(ctx context.Context, id string, next func() time.Time) (*models.Reminder, error) {
	var r models.Reminder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&r, "id::text LIKE ?", id+"%").Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{ID: id}
			}
			return err
		}
		t := next()
		r.TriggerOn = &t
		if err := models.Autofill(&r); err != nil {
			return err
		}
		return tx.Save(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// SetNotificationID records the live desktop notification handle.
func (s *Store) SetNotificationID(ctx context.Context, r *models.Reminder, nid uint32) error {
	r.NotificationID = &nid
	return s.db.WithContext(ctx).Model(r).Update("notification_id", nid).Error
}

// ClearNotificationID forgets the desktop notification handle.
func (s *Store) ClearNotificationID(ctx context.Context, r *models.Reminder) error {
	r.NotificationID = nil
	return s.db.WithContext(ctx).Model(r).Update("notification_id", nil).Error
}

// MarkPhoneNotified stamps the last phone-class re-notification.
func (s *Store) MarkPhoneNotified(ctx context.Context, r *models.Reminder, now time.Time) error {
	r.PhoneNotifiedOn = &now
	return s.db.WithContext(ctx).Model(r).Update("phone_notified_on", now).Error
}

// ClearPhoneNotified resets the phone re-notification clock.
func (s *Store) ClearPhoneNotified(ctx context.Context, r *models.Reminder) error {
	r.PhoneNotifiedOn = nil
	return s.db.WithContext(ctx).Model(r).Update("phone_notified_on", nil).Error
}
