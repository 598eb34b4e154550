package attendance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolattend/internal/attendance"
	"schoolattend/internal/store/inmem"
)

func TestSubmit_UpsertKeepsOneRecordPerKey(t *testing.T) {
	repo := inmem.NewAttendanceRepo()
	svc := attendance.NewService(repo)
	ctx := context.Background()

	written, err := svc.Submit(ctx, "c1", "2024-01-15", []attendance.Entry{
		{StudentID: "s1", Status: attendance.StatusPresent},
	}, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// Last write wins; the key stays unique.
	written, err = svc.Submit(ctx, "c1", "2024-01-15", []attendance.Entry{
		{StudentID: "s1", Status: attendance.StatusLate, Notes: "bus delay"},
	}, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	recs, err := svc.ListByStudent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, attendance.StatusLate, recs[0].Status)
	assert.Equal(t, "bus delay", recs[0].Notes)
}

func TestSubmit_ValidatesBeforeWriting(t *testing.T) {
	repo := inmem.NewAttendanceRepo()
	svc := attendance.NewService(repo)
	ctx := context.Background()

	cases := []struct {
		name    string
		date    string
		entries []attendance.Entry
		wantErr error
	}{
		{
			name:    "malformed date",
			date:    "15/01/2024",
			entries: []attendance.Entry{{StudentID: "s1", Status: attendance.StatusPresent}},
			wantErr: attendance.ErrBadDate,
		},
		{
			name:    "future date",
			date:    "2999-01-01",
			entries: []attendance.Entry{{StudentID: "s1", Status: attendance.StatusPresent}},
			wantErr: attendance.ErrFutureDate,
		},
		{
			name:    "unknown status",
			date:    "2024-01-15",
			entries: []attendance.Entry{{StudentID: "s1", Status: "vacationing"}},
			wantErr: attendance.ErrBadStatus,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			written, err := svc.Submit(ctx, "c1", tc.date, tc.entries, "t1")
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Zero(t, written)
		})
	}

	// A bad entry anywhere in the batch blocks the whole submission.
	written, err := svc.Submit(ctx, "c1", "2024-01-15", []attendance.Entry{
		{StudentID: "s1", Status: attendance.StatusPresent},
		{StudentID: "s2", Status: "nope"},
	}, "t1")
	assert.ErrorIs(t, err, attendance.ErrBadStatus)
	assert.Zero(t, written)

	recs, err := svc.ListByClassDate(ctx, "c1", "2024-01-15")
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSubmit_AllStatusesAccepted(t *testing.T) {
	repo := inmem.NewAttendanceRepo()
	svc := attendance.NewService(repo)

	entries := []attendance.Entry{
		{StudentID: "s1", Status: attendance.StatusPresent},
		{StudentID: "s2", Status: attendance.StatusAbsent},
		{StudentID: "s3", Status: attendance.StatusLate},
		{StudentID: "s4", Status: attendance.StatusExcused},
		{StudentID: "s5", Status: attendance.StatusMedical},
	}
	written, err := svc.Submit(context.Background(), "c1", "2024-01-15", entries, "t1")
	require.NoError(t, err)
	assert.Equal(t, 5, written)
}

func TestListByStudent_DateDescending(t *testing.T) {
	repo := inmem.NewAttendanceRepo()
	svc := attendance.NewService(repo)
	ctx := context.Background()

	for _, date := range []string{"2024-01-15", "2024-01-17", "2024-01-16"} {
		_, err := svc.Submit(ctx, "c1", date, []attendance.Entry{
			{StudentID: "s1", Status: attendance.StatusPresent},
		}, "t1")
		require.NoError(t, err)
	}

	recs, err := svc.ListByStudent(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "2024-01-17", recs[0].Date)
	assert.Equal(t, "2024-01-16", recs[1].Date)
	assert.Equal(t, "2024-01-15", recs[2].Date)
}

func TestListByClassDate_FiltersByDate(t *testing.T) {
	repo := inmem.NewAttendanceRepo()
	svc := attendance.NewService(repo)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "c1", "2024-01-15", []attendance.Entry{
		{StudentID: "s1", Status: attendance.StatusPresent},
		{StudentID: "s2", Status: attendance.StatusAbsent},
	}, "t1")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "c1", "2024-01-16", []attendance.Entry{
		{StudentID: "s1", Status: attendance.StatusPresent},
	}, "t1")
	require.NoError(t, err)

	recs, err := svc.ListByClassDate(ctx, "c1", "2024-01-15")
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	all, err := svc.ListByClassDate(ctx, "c1", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.ListByClassDate(ctx, "c1", "not-a-date")
	assert.ErrorIs(t, err, attendance.ErrBadDate)
}
