package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dreamguard-id/DreamGuard/internal"
	"github.com/dreamguard-id/DreamGuard/internal/auth"
	"github.com/dreamguard-id/DreamGuard/internal/blob"
	"github.com/dreamguard-id/DreamGuard/internal/storage"
)

// ProfileUpdateRequest is a partial update of the profile document.
type ProfileUpdateRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Age        *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender     *string `json:"gender" validate:"omitempty,oneof=male female"`
	Occupation *int    `json:"occupation" validate:"omitempty,gte=1,lte=11"`
}

func ValidateProfileUpdateRequest(req *ProfileUpdateRequest) error {
	return validate.Struct(req)
}

// PictureUpload is an in-memory profile picture accepted from a multipart
// form. Size and type limits are enforced at the handler.
type PictureUpload struct {
	Data        []byte
	ContentType string
	Ext         string // including the dot, e.g. ".png"
}

// RegisterUser creates the profile document from verified identity claims.
// Demographic fields start empty and are filled in later via profile
// updates.
func RegisterUser(ctx context.Context, profiles storage.ProfileRepository, user *internal.User, now time.Time) (*internal.UserProfile, error) {
	profile := &internal.UserProfile{
		UID:       user.UID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: internal.FormatTimestamp(now),
	}
	if err := profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func GetProfile(ctx context.Context, profiles storage.ProfileRepository, uid string) (*internal.UserProfile, error) {
	return profiles.GetProfile(ctx, uid)
}

// UpdateProfile merges the partial update into the stored profile. An email
// change is propagated to the identity provider before anything is
// persisted. A new picture is uploaded before the old object is deleted, so
// an upload failure never leaves the profile without an image.
func UpdateProfile(ctx context.Context, profiles storage.ProfileRepository, provider auth.Provider, objects blob.ObjectStore, logger internal.Logger, uid string, req *ProfileUpdateRequest, picture *PictureUpload, now time.Time) (*internal.UserProfile, error) {
	profile, err := profiles.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != profile.Email {
		if err := provider.UpdateEmail(ctx, uid, *req.Email); err != nil {
			return nil, err
		}
		profile.Email = *req.Email
	}
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Age != nil {
		profile.Age = req.Age
	}
	if req.Gender != nil {
		profile.Gender = req.Gender
	}
	if req.Occupation != nil {
		profile.Occupation = req.Occupation
	}

	if picture != nil {
		key := fmt.Sprintf("profile_pictures/%s_%s%s", now.In(time.FixedZone("WIB", 7*3600)).Format("20060102_150405"), uid, picture.Ext)
		url, err := objects.Upload(ctx, key, picture.ContentType, picture.Data)
		if err != nil {
			return nil, err
		}
		if profile.ProfilePicture != nil {
			oldKey := objectKeyFromURL(*profile.ProfilePicture)
			if oldKey != "" {
				if err := objects.Delete(ctx, oldKey); err != nil {
					logger.Warnf("failed to delete old profile picture %s: %v", oldKey, err)
				}
			}
		}
		profile.ProfilePicture = &url
	}

	if err := profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// objectKeyFromURL recovers the storage key from a stored public URL.
func objectKeyFromURL(url string) string {
	const marker = "profile_pictures/"
	for i := 0; i+len(marker) <= len(url); i++ {
		if url[i:i+len(marker)] == marker {
			return url[i:]
		}
	}
	return ""
}

// DeleteAccount removes every owned collection, then the profile, then the
// external identity. Ordered so a failure leaves the identity intact and
// the operation retryable.
func DeleteAccount(ctx context.Context, store storage.Store, provider auth.Provider, uid string) error {
	if err := store.DeletePredictions(ctx, uid); err != nil {
		return err
	}
	if err := store.DeleteSchedules(ctx, uid); err != nil {
		return err
	}
	if err := store.DeleteFeedback(ctx, uid); err != nil {
		return err
	}
	if err := store.DeleteProfile(ctx, uid); err != nil {
		return err
	}
	return provider.DeleteUser(ctx, uid)
}
