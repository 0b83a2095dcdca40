package usecase

import (
	"context"
	"fmt"
	"slices"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/domain/repository"
)

// SettingsUseCase reads and writes user preferences.
type SettingsUseCase struct {
	prefs repository.PreferenceRepository
}

// NewSettingsUseCase constructs SettingsUseCase.
func NewSettingsUseCase(prefs repository.PreferenceRepository) *SettingsUseCase {
	return &SettingsUseCase{prefs: prefs}
}

// Get returns stored settings with defaults for missing keys.
func (u *SettingsUseCase) Get(ctx context.Context) (model.Settings, error) {
	s := model.Settings{Language: model.LanguageSystem, Theme: model.ThemeSystem}

	if lang, ok, err := u.prefs.Get(ctx, model.PrefLanguage); err != nil {
		return s, err
	} else if ok && slices.Contains(model.SupportedLanguages, lang) {
		s.Language = lang
	}

	if theme, ok, err := u.prefs.Get(ctx, model.PrefTheme); err != nil {
		return s, err
	} else if ok && validTheme(model.Theme(theme)) {
		s.Theme = model.Theme(theme)
	}

	var err error
	if s.NotificationsEnabled, err = boolPreference(ctx, u.prefs, model.PrefNotificationsEnabled); err != nil {
		return s, err
	}
	if s.AnalyticsEnabled, err = boolPreference(ctx, u.prefs, model.PrefAnalyticsEnabled); err != nil {
		return s, err
	}
	return s, nil
}

// Update validates and stores every setting.
func (u *SettingsUseCase) Update(ctx context.Context, s model.Settings) error {
	if !slices.Contains(model.SupportedLanguages, s.Language) {
		return fmt.Errorf("%w: language %q", domainErrors.ErrInvalidPreference, s.Language)
	}
	if !validTheme(s.Theme) {
		return fmt.Errorf("%w: theme %q", domainErrors.ErrInvalidPreference, s.Theme)
	}

	if err := u.prefs.Set(ctx, model.PrefLanguage, s.Language); err != nil {
		return err
	}
	if err := u.prefs.Set(ctx, model.PrefTheme, string(s.Theme)); err != nil {
		return err
	}
	if err := setBoolPreference(ctx, u.prefs, model.PrefNotificationsEnabled, s.NotificationsEnabled); err != nil {
		return err
	}
	return setBoolPreference(ctx, u.prefs, model.PrefAnalyticsEnabled, s.AnalyticsEnabled)
}

// SetNotificationPermission records the OS-level permission state.
func (u *SettingsUseCase) SetNotificationPermission(ctx context.Context, granted bool) error {
	return setBoolPreference(ctx, u.prefs, model.PrefNotificationPermission, granted)
}

// NotificationPermission reports the recorded OS-level permission.
func (u *SettingsUseCase) NotificationPermission(ctx context.Context) (bool, error) {
	return boolPreference(ctx, u.prefs, model.PrefNotificationPermission)
}

func validTheme(t model.Theme) bool {
	switch t {
	case model.ThemeSystem, model.ThemeLight, model.ThemeDark:
		return true
	}
	return false
}
