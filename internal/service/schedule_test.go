package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
	"github.com/dreamguard-id/DreamGuard/internal/timeutil"
)

func newTestStore(t *testing.T) *storage.FileStorage {
	t.Helper()
	s, err := storage.NewFileStorage(t.TempDir(), internal.NewNopLogger())
	assert.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser() *internal.User {
	return &internal.User{UID: "u1", Email: "dev@dreamguard.local", Name: "Dev User"}
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func TestCreateSchedule_DerivesPlannedDuration(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, err := CreateSchedule(ctx, store, testUser(), &ScheduleCreateRequest{
		BedTime:    "10:00 PM",
		WakeUpTime: "06:00 AM",
	}, time.Now())
	assert.NoError(t, err)
	assert.Equal(t, "8h0m", rec.PlannedDuration)
	assert.NotEmpty(t, rec.ID)
	assert.Nil(t, rec.ActualDuration)
	assert.Nil(t, rec.Difference)
}

func TestCreateSchedule_BadTimeFormat(t *testing.T) {
	store := newTestStore(t)

	_, err := CreateSchedule(context.Background(), store, testUser(), &ScheduleCreateRequest{
		BedTime:    "25:00",
		WakeUpTime: "06:00 AM",
	}, time.Now())
	assert.ErrorIs(t, err, timeutil.ErrParse)
}

func TestUpdateSchedule_NotesOnlyKeepsPlannedDuration(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, err := CreateSchedule(ctx, store, testUser(), &ScheduleCreateRequest{
		BedTime:    "11:30 PM",
		WakeUpTime: "07:00 AM",
	}, time.Now())
	assert.NoError(t, err)
	planned := rec.PlannedDuration

	updated, err := UpdateSchedule(ctx, store, "u1", rec.ID, &ScheduleUpdateRequest{
		Notes: strPtr("slept with the window open"),
	})
	assert.NoError(t, err)
	assert.Equal(t, planned, updated.PlannedDuration)
	assert.Equal(t, "slept with the window open", *updated.Notes)
	assert.Nil(t, updated.ActualDuration)
}

func TestUpdateSchedule_RecomputesPlannedOnEndpointChange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, _ := CreateSchedule(ctx, store, testUser(), &ScheduleCreateRequest{
		BedTime:    "10:00 PM",
		WakeUpTime: "06:00 AM",
	}, time.Now())

	updated, err := UpdateSchedule(ctx, store, "u1", rec.ID, &ScheduleUpdateRequest{
		WakeUpTime: strPtr("05:00 AM"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "7h0m", updated.PlannedDuration)
}

func TestUpdateSchedule_ActualDurationOnlyWhenBothTimesPresent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, _ := CreateSchedule(ctx, store, testUser(), &ScheduleCreateRequest{
		BedTime:    "10:00 PM",
		WakeUpTime: "06:00 AM",
	}, time.Now())

	updated, err := UpdateSchedule(ctx, store, "u1", rec.ID, &ScheduleUpdateRequest{
		ActualBedTime: strPtr("10:30 PM"),
	})
	assert.NoError(t, err)
	assert.Nil(t, updated.ActualDuration)
	assert.Nil(t, updated.Difference)

	updated, err = UpdateSchedule(ctx, store, "u1", rec.ID, &ScheduleUpdateRequest{
		ActualWakeUpTime: strPtr("06:00 AM"),
	})
	assert.NoError(t, err)
	assert.NotNil(t, updated.ActualDuration)
	assert.Equal(t, "7h30m", *updated.ActualDuration)
	assert.Equal(t, "-0h30m", *updated.Difference)
}

func TestUpdateSchedule_ActualLongerThanPlanned(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec, _ := CreateSchedule(ctx, store, testUser(), &ScheduleCreateRequest{
		BedTime:    "11:00 PM",
		WakeUpTime: "06:00 AM",
	}, time.Now())

	updated, err := UpdateSchedule(ctx, store, "u1", rec.ID, &ScheduleUpdateRequest{
		ActualBedTime:    strPtr("10:45 PM"),
		ActualWakeUpTime: strPtr("06:30 AM"),
		SleepQuality:     intPtr(8),
		WakeUpAlarm:      boolPtr(true),
	})
	assert.NoError(t, err)
	assert.Equal(t, "7h45m", *updated.ActualDuration)
	assert.Equal(t, "+0h45m", *updated.Difference)
	assert.Equal(t, 8, *updated.SleepQuality)
	assert.True(t, updated.WakeUpAlarm)
}

func TestUpdateSchedule_UnknownID(t *testing.T) {
	store := newTestStore(t)

	_, err := UpdateSchedule(context.Background(), store, "u1", "missing", &ScheduleUpdateRequest{
		Notes: strPtr("x"),
	})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
