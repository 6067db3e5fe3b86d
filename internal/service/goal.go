package service

import (
	"context"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

// GoalRequest sets the nightly sleep target. Pointers so a zero value still
// counts as provided.
type GoalRequest struct {
	Hours   *int `json:"hours" validate:"required,gte=0,lte=23"`
	Minutes *int `json:"minutes" validate:"required,gte=0,lte=59"`
}

func ValidateGoalRequest(req *GoalRequest) error {
	return validate.Struct(req)
}

// GetSleepGoal returns the stored goal. ErrNotFound when the user never set
// one.
func GetSleepGoal(ctx context.Context, profiles storage.ProfileRepository, uid string) (*internal.SleepGoal, error) {
	profile, err := profiles.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	if profile.SleepGoal == nil {
		return nil, storage.ErrNotFound
	}
	return profile.SleepGoal, nil
}

// UpdateSleepGoal stores the goal on the profile document.
func UpdateSleepGoal(ctx context.Context, profiles storage.ProfileRepository, uid string, req *GoalRequest) (*internal.SleepGoal, error) {
	profile, err := profiles.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	profile.SleepGoal = &internal.SleepGoal{Hours: *req.Hours, Minutes: *req.Minutes}
	if err := profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile.SleepGoal, nil
}
