package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"reminderd/internal/models"
)

type fakeStore struct {
	overdue      []models.Reminder
	setNID       []uint32
	marked       []time.Time
	clearedNID   int
	clearedPhone int
}

func (f *fakeStore) Overdue(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	return f.overdue, nil
}

func (f *fakeStore) SetNotificationID(ctx context.Context, r *models.Reminder, nid uint32) error {
	f.setNID = append(f.setNID, nid)
	r.NotificationID = &nid
	return nil
}

func (f *fakeStore) ClearNotificationID(ctx context.Context, r *models.Reminder) error {
	f.clearedNID++
	r.NotificationID = nil
	return nil
}

func (f *fakeStore) MarkPhoneNotified(ctx context.Context, r *models.Reminder, now time.Time) error {
	f.marked = append(f.marked, now)
	r.PhoneNotifiedOn = &now
	return nil
}

func (f *fakeStore) ClearPhoneNotified(ctx context.Context, r *models.Reminder) error {
	f.clearedPhone++
	r.PhoneNotifiedOn = nil
	return nil
}

type fakeNotifier struct {
	nextID uint32
	err    error
	calls  int
	closed []uint32
}

func (f *fakeNotifier) Notify(replaceID uint32, title, body string) (uint32, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	if replaceID != 0 {
		return replaceID, nil
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeNotifier) Close(id uint32) error {
	f.closed = append(f.closed, id)
	return nil
}

type fakePhone struct {
	err   error
	calls int
}

func (f *fakePhone) Push(ctx context.Context, r *models.Reminder) error {
	f.calls++
	return f.err
}

func overdueReminder(priority int, trigger time.Time) models.Reminder {
	return models.Reminder{
		ID:        uuid.New(),
		Descr:     "water the plants",
		Priority:  priority,
		TriggerOn: &trigger,
	}
}

func newTestSweeper(st Store, desktop Notifier, phone PhoneNotifier, now time.Time) *Sweeper {
	s := NewSweeper(st, desktop, phone, zerolog.Nop())
	s.now = func() time.Time { return now }
	return s
}

func TestSweepDeliveryFailureLeavesState(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st := &fakeStore{overdue: []models.Reminder{overdueReminder(200, now.Add(-time.Hour))}}
	desktop := &fakeNotifier{err: errors.New("bus gone")}
	phone := &fakePhone{}
	s := newTestSweeper(st, desktop, phone, now)

	if err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep error = %v, per-item failures must not abort the sweep", err)
	}
	if len(st.setNID) != 0 {
		t.Errorf("notification_id written %d times after failed delivery, want 0", len(st.setNID))
	}
	if len(st.marked) != 0 || phone.calls != 0 {
		t.Errorf("phone channel ran after failed desktop delivery (pushes=%d, stamps=%d)", phone.calls, len(st.marked))
	}
}

func TestSweepPhoneFailureLeavesTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st := &fakeStore{overdue: []models.Reminder{overdueReminder(200, now.Add(-time.Hour))}}
	desktop := &fakeNotifier{}
	phone := &fakePhone{err: errors.New("gateway down")}
	s := newTestSweeper(st, desktop, phone, now)

	if err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep error = %v", err)
	}
	if len(st.setNID) != 1 {
		t.Errorf("notification_id written %d times, want 1 (desktop delivery succeeded)", len(st.setNID))
	}
	if len(st.marked) != 0 {
		t.Errorf("phone_notified_on stamped after failed push, want untouched")
	}
}

func TestSweepPersistsFreshIDOnly(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	known := uint32(42)
	withID := overdueReminder(10, now.Add(-time.Hour))
	withID.NotificationID = &known
	st := &fakeStore{overdue: []models.Reminder{withID, overdueReminder(10, now.Add(-time.Hour))}}
	desktop := &fakeNotifier{}
	s := newTestSweeper(st, desktop, nil, now)

	if err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep error = %v", err)
	}
	if desktop.calls != 2 {
		t.Fatalf("desktop notified %d times, want 2", desktop.calls)
	}
	// The replaced notification keeps its id; only the fresh one is persisted.
	if len(st.setNID) != 1 {
		t.Errorf("notification_id written %d times, want 1", len(st.setNID))
	}
}

func TestSweepStampsPhoneAfterPush(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	st := &fakeStore{overdue: []models.Reminder{
		overdueReminder(200, now.Add(-time.Hour)),
		overdueReminder(50, now.Add(-time.Hour)),
	}}
	phone := &fakePhone{}
	s := newTestSweeper(st, &fakeNotifier{}, phone, now)

	if err := s.Sweep(context.Background()); err != nil {
		t.Fatalf("Sweep error = %v", err)
	}
	// Only the reminder above the phone threshold gets pushed and stamped.
	if phone.calls != 1 || len(st.marked) != 1 {
		t.Fatalf("pushes=%d stamps=%d, want 1 each", phone.calls, len(st.marked))
	}
	if !st.marked[0].Equal(now) {
		t.Errorf("phone_notified_on = %s, want %s", st.marked[0], now)
	}
}

func TestDismiss(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	nid := uint32(7)
	r := overdueReminder(200, now.Add(-time.Hour))
	r.NotificationID = &nid
	r.PhoneNotifiedOn = &now

	st := &fakeStore{}
	desktop := &fakeNotifier{}
	s := newTestSweeper(st, desktop, nil, now)

	if err := s.Dismiss(context.Background(), &r, false); err != nil {
		t.Fatalf("Dismiss error = %v", err)
	}
	if len(desktop.closed) != 1 || desktop.closed[0] != 7 {
		t.Errorf("closed = %v, want [7]", desktop.closed)
	}
	if st.clearedNID != 1 || st.clearedPhone != 1 {
		t.Errorf("cleared nid=%d phone=%d, want 1 each", st.clearedNID, st.clearedPhone)
	}
}

func TestDismissOnDelete(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	nid := uint32(7)
	r := overdueReminder(200, now.Add(-time.Hour))
	r.NotificationID = &nid

	st := &fakeStore{}
	desktop := &fakeNotifier{}
	s := newTestSweeper(st, desktop, nil, now)

	// The row is about to be deleted; close the notification but skip the
	// state writes.
	if err := s.Dismiss(context.Background(), &r, true); err != nil {
		t.Fatalf("Dismiss error = %v", err)
	}
	if len(desktop.closed) != 1 {
		t.Errorf("closed = %v, want one close", desktop.closed)
	}
	if st.clearedNID != 0 || st.clearedPhone != 0 {
		t.Errorf("cleared nid=%d phone=%d, want 0 each", st.clearedNID, st.clearedPhone)
	}
}

func TestNotificationTitle(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	trigger := now.Add(-2 * time.Hour)
	r := &models.Reminder{
		ID:        uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000"),
		Descr:     "water the plants",
		Priority:  120,
		TriggerOn: &trigger,
	}

	got := notificationTitle(r, now)
	if !strings.HasPrefix(got, "[a1b2c3d4] Priority=120: water the plants") {
		t.Errorf("title = %q, want NotifyMessage prefix", got)
	}
	if !strings.Contains(got, "2 hours ago") {
		t.Errorf("title = %q, want overdue-since suffix", got)
	}
}

func TestNotificationTitleNoTrigger(t *testing.T) {
	r := &models.Reminder{
		ID:       uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000000"),
		Descr:    "someday",
		Priority: -1,
	}
	got := notificationTitle(r, time.Now())
	if got != r.NotifyMessage() {
		t.Errorf("title = %q, want bare NotifyMessage", got)
	}
}
