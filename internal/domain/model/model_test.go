package model

import (
	"testing"
	"time"
)

func TestOrderDraftChosenServicesSorted(t *testing.T) {
	d := OrderDraft{SelectedServices: map[ServiceID]bool{3: true, 1: true, 2: false}}
	got := d.ChosenServices()
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected [1 3], got %v", got)
	}
}

func TestOrderDraftCloneIsDeep(t *testing.T) {
	at := time.Unix(100, 0)
	msg := "bad"
	d := OrderDraft{
		SelectedImages:   []string{"a"},
		SelectedServices: map[ServiceID]bool{1: true},
		ScheduledAt:      &at,
		PromoError:       &msg,
	}
	c := d.Clone()
	c.SelectedImages[0] = "b"
	c.SelectedServices[1] = false
	*c.ScheduledAt = time.Unix(200, 0)
	*c.PromoError = "other"

	if d.SelectedImages[0] != "a" {
		t.Fatalf("images shared between clones")
	}
	if !d.SelectedServices[1] {
		t.Fatalf("services shared between clones")
	}
	if !d.ScheduledAt.Equal(time.Unix(100, 0)) {
		t.Fatalf("schedule shared between clones")
	}
	if *d.PromoError != "bad" {
		t.Fatalf("promo error shared between clones")
	}
}

func TestStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   string
		value string
	}{
		{"order new", string(OrderStatusNew), "NEW"},
		{"reminder pending", string(ReminderStatusPending), "PENDING"},
		{"reminder firing", string(ReminderStatusFiring), "FIRING"},
		{"reminder done", string(ReminderStatusDone), "DONE"},
		{"theme dark", string(ThemeDark), "DARK"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestSubmitOutcomeString(t *testing.T) {
	cases := map[SubmitOutcome]string{
		SubmitSuccess:          "success",
		SubmitValidationFailed: "validation_failed",
		SubmitServerError:      "server_error",
		SubmitNetworkError:     "network_error",
		SubmitOutcome(42):      "unknown",
	}
	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}
