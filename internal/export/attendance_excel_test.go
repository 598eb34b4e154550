package export_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolattend/internal/attendance"
	"schoolattend/internal/export"
)

func TestClassAttendanceWorkbook(t *testing.T) {
	markedAt := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	records := []attendance.Record{
		{StudentID: "s1", Date: "2024-01-15", Status: attendance.StatusPresent, MarkedAt: markedAt},
		{StudentID: "s2", Date: "2024-01-15", Status: attendance.StatusLate, Notes: "bus", MarkedAt: markedAt},
		{StudentID: "gone", Date: "2024-01-15", Status: attendance.StatusAbsent, MarkedAt: markedAt},
	}
	names := map[string]string{"s1": "Asha", "s2": "Ben"}

	f, err := export.ClassAttendanceWorkbook("12-A", records, names)
	require.NoError(t, err)

	rows, err := f.GetRows("12-A")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "Student", "Status", "Notes", "Marked at"}, rows[0])
	assert.Equal(t, []string{"2024-01-15", "Asha", "present", "", "2024-01-15 09:30:00"}, rows[1])
	assert.Equal(t, "bus", rows[2][3])
	// Unknown roster references fall back to the raw id.
	assert.Equal(t, "gone", rows[3][1])
}
