package service

import (
	"context"
	"time"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

func ValidateFeedbackRequest(req *FeedbackRequest) error {
	return validate.Struct(req)
}

// CreateFeedback appends a numbered feedback entry for the user.
func CreateFeedback(ctx context.Context, repo storage.FeedbackRepository, user *internal.User, req *FeedbackRequest, now time.Time) (*internal.FeedbackEntry, error) {
	number, err := repo.NextFeedbackNumber(ctx, user.UID)
	if err != nil {
		return nil, err
	}
	entry := &internal.FeedbackEntry{
		UserID:         user.UID,
		Feedback:       req.Feedback,
		FeedbackNumber: number,
		CreatedAt:      internal.FormatTimestamp(now),
	}
	if err := repo.SaveFeedback(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
