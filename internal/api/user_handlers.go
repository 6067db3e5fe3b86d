package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dreamguard-id/DreamGuard/internal/auth"
	"github.com/dreamguard-id/DreamGuard/internal/response"
	"github.com/dreamguard-id/DreamGuard/internal/service"
)

const maxPictureBytes = 1 << 20 // 1MB

// RegisterUser creates the profile document from the verified token claims.
func RegisterUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		profile, err := service.RegisterUser(c.Request.Context(), app.Store(), user, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to register user data")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusCreated,
			"User data has been successfully added to the database.", profile)
	}
}

func GetProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		profile, err := service.GetProfile(c.Request.Context(), app.Store(), user.UID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to retrieve profile data")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Profile retrieved successfully.", profile)
	}
}

// UpdateProfile handles the partial profile update. The body is either JSON
// or a multipart form carrying an optional profilePicture file.
func UpdateProfile(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var (
			req     service.ProfileUpdateRequest
			picture *service.PictureUpload
		)

		if strings.HasPrefix(c.ContentType(), "application/json") {
			if err := c.ShouldBindJSON(&req); err != nil {
				HandleError(c, app.Logger(), err, 400, "Invalid JSON")
				return
			}
		} else {
			if err := bindProfileForm(c, &req); err != nil {
				HandleError(c, app.Logger(), err, 400, "Invalid form data")
				return
			}
			var err error
			picture, err = readPictureUpload(c)
			if err != nil {
				c.JSON(http.StatusBadRequest, response.Error(err.Error()))
				return
			}
		}

		if err := service.ValidateProfileUpdateRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err)
			return
		}

		profile, err := service.UpdateProfile(c.Request.Context(), app.Store(), app.Auth(), app.Objects(), app.Logger(), user.UID, &req, picture, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to update profile")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Profile updated successfully", profile)
	}
}

func bindProfileForm(c *gin.Context, req *service.ProfileUpdateRequest) error {
	if v, ok := c.GetPostForm("email"); ok {
		req.Email = &v
	}
	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("gender"); ok {
		req.Gender = &v
	}
	if v, ok := c.GetPostForm("age"); ok {
		age, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		req.Age = &age
	}
	if v, ok := c.GetPostForm("occupation"); ok {
		occupation, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		req.Occupation = &occupation
	}
	return nil
}

var allowedPictureTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

type uploadError string

func (e uploadError) Error() string { return string(e) }

func readPictureUpload(c *gin.Context) (*service.PictureUpload, error) {
	file, header, err := c.Request.FormFile("profilePicture")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, uploadError("An error occurred during file upload.")
	}
	defer file.Close()

	if header.Size > maxPictureBytes {
		return nil, uploadError("File is too large. Maximum size is 1MB.")
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedPictureTypes[contentType] {
		return nil, uploadError("Invalid file type. Only JPG, JPEG, and PNG are allowed.")
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPictureBytes+1))
	if err != nil {
		return nil, uploadError("An error occurred during file upload.")
	}
	if len(data) > maxPictureBytes {
		return nil, uploadError("File is too large. Maximum size is 1MB.")
	}

	return &service.PictureUpload{
		Data:        data,
		ContentType: contentType,
		Ext:         filepath.Ext(header.Filename),
	}, nil
}

// DeleteAccount cascades over the user's collections, the profile, and the
// external identity.
func DeleteAccount(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		if err := service.DeleteAccount(c.Request.Context(), app.Store(), app.Auth(), user.UID); err != nil {
			HandleError(c, app.Logger(), err, 500, "An error occurred while deleting the account")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK,
			"Account and related data have been successfully deleted.", nil)
	}
}

// PostFeedback appends a numbered feedback entry.
func PostFeedback(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var req service.FeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateFeedbackRequest(&req); err != nil {
			HandleValidationError(c, app.Logger(), err)
			return
		}

		entry, err := service.CreateFeedback(c.Request.Context(), app.Store(), user, &req, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to add feedback")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusCreated, "Feedback successfully added.", entry)
	}
}

// GetStatistics aggregates the prediction history into descriptive
// averages.
func GetStatistics(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		stats, err := service.GetStatistics(c.Request.Context(), app.Store(), user.UID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to calculate statistics")
			return
		}

		HandleSuccess(c, app.Logger(), http.StatusOK, "Statistics retrieved successfully.", stats)
	}
}
