package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"reminderd/internal/models"
)

func sample() []models.Reminder {
	trigger := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	nid := uint32(42)
	return []models.Reminder{
		{
			ID:             uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000001"),
			Descr:          "water the plants",
			Priority:       10,
			TriggerOn:      &trigger,
			NotificationID: &nid,
			CreatedAt:      created,
			UpdatedAt:      created,
		},
		{
			ID:        uuid.MustParse("a1b2c3d4-0000-0000-0000-000000000002"),
			Descr:     "someday, maybe",
			Priority:  -1,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample()); err != nil {
		t.Fatalf("Write error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][3] != "descr" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "2024-05-01T09:00:00Z" {
		t.Errorf("trigger_on = %q, want RFC3339", rows[1][2])
	}
	if rows[1][4] != "42" {
		t.Errorf("notification_id = %q, want 42", rows[1][4])
	}
	// Nullable columns of the dormant row stay empty.
	if rows[2][2] != "" || rows[2][4] != "" || rows[2][5] != "" {
		t.Errorf("dormant row nullable columns = %q %q %q, want empty", rows[2][2], rows[2][4], rows[2][5])
	}
	if rows[2][1] != "-1" {
		t.Errorf("priority = %q, want -1", rows[2][1])
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "var", "reminders.csv")
	if err := WriteFile(path, sample()); err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Errorf("got %d rows, want 3", len(rows))
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("export dir has %d entries, want just the csv", len(entries))
	}
}
