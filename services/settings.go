package services

import (
	"errors"
	"strings"

	"github.com/calvinlm/Arco-Prototype/models"
)

var (
	ErrInvalidSetting = errors.New("invalid setting")
	ErrInvalidProfile = errors.New("invalid profile")
)

// DefaultSettings is the settings screen state of a new session.
func DefaultSettings() models.Settings {
	return models.Settings{
		Notifications: models.NotificationSettings{
			Email:        true,
			Push:         false,
			Marketing:    true,
			OrderUpdates: true,
		},
		Preferences: models.Preferences{
			Language:        "en",
			Currency:        "php",
			Theme:           "light",
			DefaultPlatform: string(models.PlatformShopee),
		},
		Privacy: models.PrivacySettings{
			ProfileVisible: true,
			DesignsPublic:  false,
			DataCollection: true,
		},
	}
}

// ApplySettingsPatch returns s with patch applied, or s unchanged and an error
// when any field holds a value outside its allowed set.
func ApplySettingsPatch(s models.Settings, patch models.SettingsPatch) (models.Settings, error) {
	if err := validate.Struct(patch); err != nil {
		return s, InvalidFields(ErrInvalidSetting, err)
	}

	if n := patch.Notifications; n != nil {
		setBool(&s.Notifications.Email, n.Email)
		setBool(&s.Notifications.Push, n.Push)
		setBool(&s.Notifications.Marketing, n.Marketing)
		setBool(&s.Notifications.OrderUpdates, n.OrderUpdates)
	}
	if p := patch.Preferences; p != nil {
		setString(&s.Preferences.Language, p.Language)
		setString(&s.Preferences.Currency, p.Currency)
		setString(&s.Preferences.Theme, p.Theme)
		setString(&s.Preferences.DefaultPlatform, p.DefaultPlatform)
	}
	if p := patch.Privacy; p != nil {
		setBool(&s.Privacy.ProfileVisible, p.ProfileVisible)
		setBool(&s.Privacy.DesignsPublic, p.DesignsPublic)
		setBool(&s.Privacy.DataCollection, p.DataCollection)
	}
	return s, nil
}

// NormalizeProfile trims the free-text fields of p.
func NormalizeProfile(p models.Profile) models.Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Mobile = strings.TrimSpace(p.Mobile)
	p.Address = strings.TrimSpace(p.Address)
	return p
}

// ValidateProfile requires a name and a well-formed email.
func ValidateProfile(p models.Profile) error {
	if err := validate.Struct(NormalizeProfile(p)); err != nil {
		return InvalidFields(ErrInvalidProfile, err)
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
