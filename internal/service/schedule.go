package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
	"github.com/dreamguard-id/DreamGuard/internal/timeutil"
)

// ScheduleCreateRequest holds the planned times as 12-hour clock strings,
// e.g. "10:30 PM".
type ScheduleCreateRequest struct {
	BedTime        string `json:"bedTime" validate:"required"`
	WakeUpTime     string `json:"wakeUpTime" validate:"required"`
	WakeUpAlarm    bool   `json:"wakeUpAlarm"`
	SleepReminders bool   `json:"sleepReminders"`
}

// ScheduleUpdateRequest is a partial update: nil fields leave the stored
// value untouched.
type ScheduleUpdateRequest struct {
	BedTime          *string `json:"bedTime" validate:"omitempty"`
	WakeUpTime       *string `json:"wakeUpTime" validate:"omitempty"`
	WakeUpAlarm      *bool   `json:"wakeUpAlarm"`
	SleepReminders   *bool   `json:"sleepReminders"`
	ActualBedTime    *string `json:"actualBedTime" validate:"omitempty"`
	ActualWakeUpTime *string `json:"actualWakeUpTime" validate:"omitempty"`
	SleepQuality     *int    `json:"sleepQuality" validate:"omitempty,gte=1,lte=10"`
	Notes            *string `json:"notes"`
}

func ValidateScheduleCreateRequest(req *ScheduleCreateRequest) error {
	return validate.Struct(req)
}

func ValidateScheduleUpdateRequest(req *ScheduleUpdateRequest) error {
	return validate.Struct(req)
}

// plannedDuration converts the 12-hour endpoints and computes bed-to-wake
// time, crossing midnight when needed.
func plannedDuration(bedTime, wakeUpTime string) (string, error) {
	bed24, err := timeutil.To24Hour(bedTime)
	if err != nil {
		return "", err
	}
	wake24, err := timeutil.To24Hour(wakeUpTime)
	if err != nil {
		return "", err
	}
	return timeutil.Duration(bed24, wake24)
}

// CreateSchedule builds and persists a schedule with its derived planned
// duration.
func CreateSchedule(ctx context.Context, repo storage.ScheduleRepository, user *internal.User, req *ScheduleCreateRequest, now time.Time) (*internal.ScheduleRecord, error) {
	planned, err := plannedDuration(req.BedTime, req.WakeUpTime)
	if err != nil {
		return nil, err
	}

	rec := &internal.ScheduleRecord{
		ID:              uuid.NewString(),
		UserID:          user.UID,
		BedTime:         req.BedTime,
		WakeUpTime:      req.WakeUpTime,
		WakeUpAlarm:     req.WakeUpAlarm,
		SleepReminders:  req.SleepReminders,
		PlannedDuration: planned,
		CreatedAt:       internal.FormatTimestamp(now),
	}
	if err := repo.SaveSchedule(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateSchedule merges the partial update into the stored record.
// PlannedDuration is recomputed whenever either planned endpoint changes.
// ActualDuration and Difference are derived only once both actual times are
// present in the merged state.
func UpdateSchedule(ctx context.Context, repo storage.ScheduleRepository, uid, id string, req *ScheduleUpdateRequest) (*internal.ScheduleRecord, error) {
	rec, err := repo.GetSchedule(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	timesChanged := false
	if req.BedTime != nil {
		rec.BedTime = *req.BedTime
		timesChanged = true
	}
	if req.WakeUpTime != nil {
		rec.WakeUpTime = *req.WakeUpTime
		timesChanged = true
	}
	if req.WakeUpAlarm != nil {
		rec.WakeUpAlarm = *req.WakeUpAlarm
	}
	if req.SleepReminders != nil {
		rec.SleepReminders = *req.SleepReminders
	}
	if req.ActualBedTime != nil {
		rec.ActualBedTime = req.ActualBedTime
	}
	if req.ActualWakeUpTime != nil {
		rec.ActualWakeUpTime = req.ActualWakeUpTime
	}
	if req.SleepQuality != nil {
		rec.SleepQuality = req.SleepQuality
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if timesChanged {
		planned, err := plannedDuration(rec.BedTime, rec.WakeUpTime)
		if err != nil {
			return nil, err
		}
		rec.PlannedDuration = planned
	}

	actualChanged := req.ActualBedTime != nil || req.ActualWakeUpTime != nil
	if (actualChanged || timesChanged) && rec.ActualBedTime != nil && rec.ActualWakeUpTime != nil {
		actual, err := plannedDuration(*rec.ActualBedTime, *rec.ActualWakeUpTime)
		if err != nil {
			return nil, err
		}
		diff, err := timeutil.DurationDifference(rec.PlannedDuration, actual)
		if err != nil {
			return nil, err
		}
		rec.ActualDuration = &actual
		rec.Difference = &diff
	}

	if err := repo.SaveSchedule(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
