package dto

import "github.com/polkiloo/cleanorder/internal/domain/model"

// SettingsPayload is used for both reading and updating settings.
// NotificationPermission is optional on update.
type SettingsPayload struct {
	Language               string `json:"language"`
	Theme                  string `json:"theme"`
	NotificationsEnabled   bool   `json:"notificationsEnabled"`
	AnalyticsEnabled       bool   `json:"analyticsEnabled"`
	NotificationPermission *bool  `json:"notificationPermission,omitempty"`
}

// Model converts payload to domain settings.
func (p SettingsPayload) Model() model.Settings {
	return model.Settings{
		Language:             p.Language,
		Theme:                model.Theme(p.Theme),
		NotificationsEnabled: p.NotificationsEnabled,
		AnalyticsEnabled:     p.AnalyticsEnabled,
	}
}

// NewSettingsPayload maps settings and permission to payload.
func NewSettingsPayload(s model.Settings, permission bool) SettingsPayload {
	return SettingsPayload{
		Language:               s.Language,
		Theme:                  string(s.Theme),
		NotificationsEnabled:   s.NotificationsEnabled,
		AnalyticsEnabled:       s.AnalyticsEnabled,
		NotificationPermission: &permission,
	}
}
