package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/cleanorder/internal/analytics"
	"github.com/polkiloo/cleanorder/internal/attachment"
)

// Module provides core client use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewProfileUseCase,
	NewOrderUseCase,
	NewPromotionUseCase,
	NewSettingsUseCase,
	NewReminderUseCase,
	NewSubmissionUseCase,
	asEventTracker,
	asAttachmentPreparer,
	asReminderScheduler,
)

func asEventTracker(t *analytics.Tracker) EventTracker { return t }

func asAttachmentPreparer(p *attachment.Preparer) AttachmentPreparer { return p }

func asReminderScheduler(r *ReminderUseCase) ReminderScheduler { return r }
