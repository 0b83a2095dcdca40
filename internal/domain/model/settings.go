package model

// Preference keys stored in the local key-value store.
const (
	PrefLanguage               = "selected_language"
	PrefTheme                  = "theme_option"
	PrefNotificationsEnabled   = "notifications_enabled"
	PrefAnalyticsEnabled       = "analytics_enabled"
	PrefNotificationPermission = "notification_permission"
	PrefAuthToken              = "auth_token"
	PrefSearchHistory          = "search_history"
)

// Theme is the UI theme choice.
type Theme string

const (
	ThemeSystem Theme = "SYSTEM"
	ThemeLight  Theme = "LIGHT"
	ThemeDark   Theme = "DARK"
)

// LanguageSystem means "follow the device locale".
const LanguageSystem = "system"

// SupportedLanguages lists language codes the client ships resources for.
var SupportedLanguages = []string{LanguageSystem, "ru", "en", "es", "zh"}

// Settings aggregates user-adjustable preferences.
type Settings struct {
	Language             string
	Theme                Theme
	NotificationsEnabled bool
	AnalyticsEnabled     bool
}
