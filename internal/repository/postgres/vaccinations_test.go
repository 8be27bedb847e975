package postgres

import (
	"strings"
	"testing"
)

// The reminder sweep and the update statement encode calendar-day and
// reminder re-arm semantics directly in SQL, so the statement shapes
// are pinned here.

func TestDueForReminderSQLUsesDayWindow(t *testing.T) {
	query := dueForReminderSQL(NewTableNames("test_"))

	if strings.Contains(query, "next_due_date = $1") {
		t.Error("due query compares the due date by strict equality; rows with a time of day would never match")
	}
	for _, want := range []string{"next_due_date >= $1", "next_due_date < $2", "reminder_sent = false"} {
		if !strings.Contains(query, want) {
			t.Errorf("due query missing predicate %q:\n%s", want, query)
		}
	}
}

func TestVaccinationUpdateSQLPreservesReminderFlag(t *testing.T) {
	query := vaccinationUpdateSQL(NewTableNames("test_"))

	if strings.Contains(query, "reminder_sent = $") {
		t.Error("update overwrites reminder_sent from a bind parameter; every edit would re-arm the reminder")
	}
	// The flag resets only when the due date actually moves.
	if !strings.Contains(query, "IS DISTINCT FROM $3") || !strings.Contains(query, "ELSE v.reminder_sent") {
		t.Errorf("update does not gate the reminder reset on a due-date change:\n%s", query)
	}
}
