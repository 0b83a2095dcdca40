package repository

// Factory describes access to local repositories.
type Factory interface {
	Preferences() PreferenceRepository
	Reminders() ReminderRepository
}
