package model

import (
	"slices"
	"time"
)

// OrderDraft is the in-progress order composed by the user.
type OrderDraft struct {
	ID               string
	SelectedImages   []string
	SelectedServices map[ServiceID]bool
	ScheduledAt      *time.Time
	Address          string
	PromoCode        string
	PromoError       *string
	DiscountApplied  bool
	Total            Money
	Submitting       bool
	SubmittedOrderID string
	LastError        string
}

// ChosenServices returns ids of selected services in ascending order.
func (d OrderDraft) ChosenServices() []ServiceID {
	ids := make([]ServiceID, 0, len(d.SelectedServices))
	for id, selected := range d.SelectedServices {
		if selected {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Clone returns a deep copy so snapshots never share mutable state.
func (d OrderDraft) Clone() OrderDraft {
	out := d
	out.SelectedImages = append([]string(nil), d.SelectedImages...)
	out.SelectedServices = make(map[ServiceID]bool, len(d.SelectedServices))
	for id, v := range d.SelectedServices {
		out.SelectedServices[id] = v
	}
	if d.ScheduledAt != nil {
		at := *d.ScheduledAt
		out.ScheduledAt = &at
	}
	if d.PromoError != nil {
		msg := *d.PromoError
		out.PromoError = &msg
	}
	return out
}
