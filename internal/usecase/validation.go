package usecase

import (
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

// Draft precondition violations.
const (
	ViolationNoServices = "at least one service must be selected"
	ViolationNoAddress  = "address must not be blank"
	ViolationNoSchedule = "pickup date and time must be set"
)

// ValidateDraft lists unmet submission preconditions. An empty result means
// the draft may be sent.
func ValidateDraft(d model.OrderDraft) []string {
	var violations []string
	if len(d.ChosenServices()) == 0 {
		violations = append(violations, ViolationNoServices)
	}
	if strings.TrimSpace(d.Address) == "" {
		violations = append(violations, ViolationNoAddress)
	}
	if d.ScheduledAt == nil {
		violations = append(violations, ViolationNoSchedule)
	}
	return violations
}

// ValidateRegistration trims the form and checks required fields.
func ValidateRegistration(reg model.Registration) (model.Registration, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Phone = strings.TrimSpace(reg.Phone)
	if reg.Email == "" || reg.Name == "" || reg.Phone == "" || strings.TrimSpace(reg.Password) == "" {
		return reg, fmt.Errorf("%w: all fields are required", domainErrors.ErrValidation)
	}
	if len(reg.Password) < MinPasswordLength {
		return reg, fmt.Errorf("%w: password must be at least %d characters", domainErrors.ErrValidation, MinPasswordLength)
	}
	return reg, nil
}
