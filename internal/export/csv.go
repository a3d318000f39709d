package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"reminderd/internal/models"
)

var header = []string{"id", "priority", "trigger_on", "descr", "notification_id", "phone_notified_on", "created_at", "updated_at"}

// Write dumps the reminders as CSV, one row per reminder, nullable columns
// left empty.
func Write(w io.Writer, reminders []models.Reminder) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range reminders {
		if err := cw.Write(row(&reminders[i])); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile dumps the reminders to path, creating parent directories as
// needed. The file is replaced atomically so a reader never sees a partial
// dump.
func WriteFile(path string, reminders []models.Reminder) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reminders-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, reminders); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func row(r *models.Reminder) []string {
	return []string{
		r.ID.String(),
		strconv.Itoa(r.Priority),
		fmtTime(r.TriggerOn),
		r.Descr,
		fmtNotificationID(r.NotificationID),
		fmtTime(r.PhoneNotifiedOn),
		r.CreatedAt.Format(time.RFC3339),
		r.UpdatedAt.Format(time.RFC3339),
	}
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtNotificationID(id *uint32) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}
