package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/pageza/resep-nusantara/internal/models"
)

// AvatarUpload is an avatar file as received from the user
type AvatarUpload struct {
	// Size is the declared size, checked before anything is read
	Size        int64
	ContentType string
	Body        io.Reader
}

// ProfileService handles the local user profile
type ProfileService struct {
	db      *gorm.DB
	avatars AvatarStore
	logger  *slog.Logger
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB, avatars AvatarStore) *ProfileService {
	if avatars == nil {
		avatars = InlineAvatarStore{}
	}
	return &ProfileService{
		db:      db,
		avatars: avatars,
		logger:  slog.Default().With(slog.String("component", "profile")),
	}
}

// GetProfile returns the stored profile, or the default one when nothing
// has been saved yet
func (s *ProfileService) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).First(&profile, models.LocalProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserProfile{ID: models.LocalProfileID, Username: models.DefaultUsername}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile validates and saves username and bio together
func (s *ProfileService) UpdateProfile(ctx context.Context, username, bio string) (*models.UserProfile, error) {
	username = strings.TrimSpace(username)
	bio = strings.TrimSpace(bio)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if utf8.RuneCountInString(username) > models.MaxUsernameLength {
		return nil, ErrUsernameTooLong
	}
	if utf8.RuneCountInString(bio) > models.MaxBioLength {
		return nil, ErrBioTooLong
	}

	var saved models.UserProfile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := loadOrDefault(tx)
		if err != nil {
			return err
		}
		profile.Username = username
		profile.Bio = bio
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		saved = *profile
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("profile updated", slog.String("username", username))
	return &saved, nil
}

// UpdateAvatar validates the upload, stores the image and saves its URL.
// Oversized uploads are rejected before the body is read.
func (s *ProfileService) UpdateAvatar(ctx context.Context, upload AvatarUpload) (*models.UserProfile, error) {
	if upload.Size > models.MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	// read one byte past the limit to catch a wrong declared size
	data, err := io.ReadAll(io.LimitReader(upload.Body, models.MaxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read avatar: %w", err)
	}
	if len(data) > models.MaxAvatarSize {
		return nil, ErrAvatarTooLarge
	}

	contentType := upload.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	contentType, _, _ = strings.Cut(contentType, ";")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrAvatarNotImage
	}

	url, err := s.avatars.Save(ctx, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", err)
	}

	var saved models.UserProfile
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := loadOrDefault(tx)
		if err != nil {
			return err
		}
		profile.AvatarURL = url
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		saved = *profile
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	s.logger.Info("avatar updated", slog.Int("bytes", len(data)), slog.String("content_type", contentType))
	return &saved, nil
}

func loadOrDefault(tx *gorm.DB) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := tx.First(&profile, models.LocalProfileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserProfile{ID: models.LocalProfileID, Username: models.DefaultUsername}, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
