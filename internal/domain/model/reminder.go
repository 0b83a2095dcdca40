package model

import "time"

// ReminderStatus describes a local reminder job state.
type ReminderStatus string

const (
	ReminderStatusPending ReminderStatus = "PENDING"
	ReminderStatusFiring  ReminderStatus = "FIRING"
	ReminderStatusDone    ReminderStatus = "DONE"
)

// Reminder is a one-shot deferred notification tied to an order.
type Reminder struct {
	ID        int64
	OrderID   string
	FireAt    time.Time
	Status    ReminderStatus
	CreatedAt time.Time
}
