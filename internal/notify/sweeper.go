package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/nleeper/goment"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"reminderd/internal/models"
	"reminderd/internal/schedule"
)

// Store is the slice of the reminder repository the sweeper touches.
type Store interface {
	Overdue(ctx context.Context, now time.Time) ([]models.Reminder, error)
	SetNotificationID(ctx context.Context, r *models.Reminder, nid uint32) error
	ClearNotificationID(ctx context.Context, r *models.Reminder) error
	MarkPhoneNotified(ctx context.Context, r *models.Reminder, now time.Time) error
	ClearPhoneNotified(ctx context.Context, r *models.Reminder) error
}

// Sweeper walks the overdue reminders and keeps one live desktop
// notification per reminder, replacing in place on every pass so the
// "overdue since" suffix stays fresh. It also drives the phone
// re-notification policy.
type Sweeper struct {
	store   Store
	desktop Notifier
	phone   PhoneNotifier
	log     zerolog.Logger
	limiter *rate.Limiter
	now     func() time.Time
}

func NewSweeper(st Store, desktop Notifier, phone PhoneNotifier, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		store:   st,
		desktop: desktop,
		phone:   phone,
		log:     log,
		// The notification server is a shared session resource; don't slam it.
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		now:     time.Now,
	}
}

// Sweep notifies every overdue reminder, highest priority first. Delivery
// failures are logged and skipped: the reminder's notification state is left
// untouched so the next sweep retries.
func (s *Sweeper) Sweep(ctx context.Context) error {
	now := s.now()
	overdue, err := s.store.Overdue(ctx, now)
	if err != nil {
		return err
	}
	for i := range overdue {
		r := &overdue[i]
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := s.notifyOne(ctx, r, now); err != nil {
			s.log.Warn().Err(err).Str("id", r.ShortID()).Msg("notification delivery failed")
		}
	}
	return nil
}

func (s *Sweeper) notifyOne(ctx context.Context, r *models.Reminder, now time.Time) error {
	var replaceID uint32
	if r.NotificationID != nil {
		replaceID = *r.NotificationID
	}

	nid, err := s.desktop.Notify(replaceID, notificationTitle(r, now), "")
	if err != nil {
		return err
	}
	if nid != replaceID {
		// A fresh id means this was the first delivery, or the notification
		// server restarted and forgot the old handle. Remember the new one so
		// the next sweep replaces instead of stacking duplicates.
		if err := s.store.SetNotificationID(ctx, r, nid); err != nil {
			return err
		}
	}

	if s.phone != nil && schedule.NeedsPhoneRenotify(r.Priority, r.PhoneNotifiedOn, now) {
		if err := s.phone.Push(ctx, r); err != nil {
			// Timestamp stays put, so the next sweep tries the phone again.
			return err
		}
		if err := s.store.MarkPhoneNotified(ctx, r, now); err != nil {
			return err
		}
		s.log.Info().Str("id", r.ShortID()).Int("priority", r.Priority).Msg("phone renotified")
	}
	return nil
}

// Dismiss closes the live desktop notification. Outside of deletion it also
// resets the notification and phone state so the reminder starts a clean
// cycle the next time it comes due.
func (s *Sweeper) Dismiss(ctx context.Context, r *models.Reminder, deleting bool) error {
	if !deleting {
		if err := s.store.ClearPhoneNotified(ctx, r); err != nil {
			return err
		}
	}
	if r.NotificationID == nil {
		return nil
	}
	if err := s.desktop.Close(*r.NotificationID); err != nil {
		return err
	}
	if !deleting {
		return s.store.ClearNotificationID(ctx, r)
	}
	return nil
}

// notificationTitle renders "[id] Priority=P: descr (2 hours ago)".
func notificationTitle(r *models.Reminder, now time.Time) string {
	title := r.NotifyMessage()
	if r.TriggerOn == nil {
		return title
	}
	g, err := goment.New(*r.TriggerOn)
	if err != nil {
		return title
	}
	ref, err := goment.New(now)
	if err != nil {
		return title
	}
	return fmt.Sprintf("%s (%s)", title, g.From(ref))
}
