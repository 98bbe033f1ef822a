package models

// NotificationSettings toggles outbound notifications.
type NotificationSettings struct {
	Email        bool `json:"email"`
	Push         bool `json:"push"`
	Marketing    bool `json:"marketing"`
	OrderUpdates bool `json:"order_updates"`
}

// Preferences holds display and checkout defaults.
type Preferences struct {
	Language        string `json:"language"`
	Currency        string `json:"currency"`
	Theme           string `json:"theme"`
	DefaultPlatform string `json:"default_platform"`
}

// PrivacySettings controls what a user shares.
type PrivacySettings struct {
	ProfileVisible bool `json:"profile_visible"`
	DesignsPublic  bool `json:"designs_public"`
	DataCollection bool `json:"data_collection"`
}

// Settings is the per-session settings screen state.
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Preferences   Preferences          `json:"preferences"`
	Privacy       PrivacySettings      `json:"privacy"`
}

// SettingsPatch carries a partial settings update. Nil fields are left as they are.
type SettingsPatch struct {
	Notifications *NotificationsPatch `json:"notifications"`
	Preferences   *PreferencesPatch   `json:"preferences"`
	Privacy       *PrivacyPatch       `json:"privacy"`
}

type NotificationsPatch struct {
	Email        *bool `json:"email"`
	Push         *bool `json:"push"`
	Marketing    *bool `json:"marketing"`
	OrderUpdates *bool `json:"order_updates"`
}

type PreferencesPatch struct {
	Language        *string `json:"language" binding:"omitempty,oneof=en es fr de"`
	Currency        *string `json:"currency" binding:"omitempty,oneof=php usd eur gbp sgd"`
	Theme           *string `json:"theme" binding:"omitempty,oneof=light dark system"`
	DefaultPlatform *string `json:"default_platform" binding:"omitempty,oneof=shopee lazada"`
}

type PrivacyPatch struct {
	ProfileVisible *bool `json:"profile_visible"`
	DesignsPublic  *bool `json:"designs_public"`
	DataCollection *bool `json:"data_collection"`
}
