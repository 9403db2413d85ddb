package service

import "errors"

// FetchErrorMessage is the only fetch failure text views ever see
const FetchErrorMessage = "Gagal memuat data resep"

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrRemoteFailure  = errors.New("remote api request failed")
	ErrPersistFailed  = errors.New("failed to persist favorites")

	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrBioTooLong       = errors.New("bio is too long")
	ErrAvatarTooLarge   = errors.New("avatar file is too large")
	ErrAvatarNotImage   = errors.New("avatar must be an image")

	ErrCapabilityUnsupported = errors.New("capability not supported")
)

// validationNotices maps validation failures to the notice shown to the user
var validationNotices = map[error]string{
	ErrUsernameRequired: "Username tidak boleh kosong",
	ErrUsernameTooLong:  "Username maksimal 50 karakter",
	ErrBioTooLong:       "Bio maksimal 200 karakter",
	ErrAvatarTooLarge:   "Ukuran file maksimal 2MB",
	ErrAvatarNotImage:   "File harus berupa gambar",
}

// Notice returns the user-facing notice for a validation error and whether
// err is one
func Notice(err error) (string, bool) {
	for target, msg := range validationNotices {
		if errors.Is(err, target) {
			return msg, true
		}
	}
	return "", false
}
