package model

// AnalyticsEvent is a single usage event.
type AnalyticsEvent struct {
	UserID  *int64
	Type    string
	Details string
}
