// Copyright (c) 2026 VideoTube. All rights reserved.

package users

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/videotube/videotube/internal/platform/apperr"
)

// # Account Management

// CurrentUser returns the full account entity for the authenticated user.
func (service *Service) CurrentUser(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// UpdateAccountInput carries the updatable profile fields. Empty fields
// keep their current value.
type UpdateAccountInput struct {
	FullName string
	Username string
	Email    string
}

/*
UpdateAccount modifies the user's basic profile details.

Description: At least one field must be provided. Unchanged fields retain
their stored value. Username and email uniqueness is enforced by the
database and surfaces as a Conflict.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateAccountInput

Returns:
  - *User: Updated entity
  - error: Validation, Conflict, or storage failures
*/
func (service *Service) UpdateAccount(context context.Context, userID string, input UpdateAccountInput) (*User, error) {
	fullName := strings.TrimSpace(input.FullName)
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	if fullName == "" && username == "" && email == "" {
		return nil, apperr.BadRequest("All fields are required")
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if fullName != "" {
		user.FullName = fullName
	}
	if username != "" {
		user.Username = strings.ToLower(username)
	}
	if email != "" {
		user.Email = email
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

/*
UpdateAvatar replaces the user's profile picture.

Description: Uploads the new image first, then swaps the URL. The previous
object is deleted best-effort, a dangling file is preferable to a broken
profile.

Parameters:
  - context: context.Context
  - userID: string
  - filename: string
  - file: io.Reader

Returns:
  - *User: Updated entity
  - error: Upload or storage failures
*/
func (service *Service) UpdateAvatar(context context.Context, userID, filename string, file io.Reader) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	avatarURL, err := service.mediaUploader.UploadAvatar(context, filename, file)
	if err != nil {
		return nil, apperr.Dependency("Avatar upload failed", err)
	}

	if err := service.userRepository.UpdateAvatar(context, userID, avatarURL); err != nil {
		return nil, fmt.Errorf("users_service_update_avatar_failed: %w", err)
	}

	if user.Avatar != "" {
		_ = service.mediaUploader.Delete(context, user.Avatar)
	}

	user.Avatar = avatarURL
	return user, nil
}

// UpdateCoverImage replaces the user's channel banner. Same upload-then-swap
// sequence as [Service.UpdateAvatar].
func (service *Service) UpdateCoverImage(context context.Context, userID, filename string, file io.Reader) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	coverImageURL, err := service.mediaUploader.UploadCoverImage(context, filename, file)
	if err != nil {
		return nil, apperr.Dependency("Cover image upload failed", err)
	}

	if err := service.userRepository.UpdateCoverImage(context, userID, coverImageURL); err != nil {
		return nil, fmt.Errorf("users_service_update_cover_image_failed: %w", err)
	}

	if user.CoverImage != "" {
		_ = service.mediaUploader.Delete(context, user.CoverImage)
	}

	user.CoverImage = coverImageURL
	return user, nil
}
