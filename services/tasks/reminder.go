package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"warrapay/models"
)

const TypeTrialEndingReminder = "trial:ending"

// reminderLead is how long before the trial ends (and the card is
// charged) the reminder fires.
const reminderLead = 24 * time.Hour

// TrialReminderPayload carries everything the reminder needs about the
// upcoming first charge.
type TrialReminderPayload struct {
	CustomerID string                 `json:"customerId"`
	Name       string                 `json:"name"`
	Email      string                 `json:"email"`
	TrialEnd   int64                  `json:"trialEnd"`
	Metadata   models.BookingMetadata `json:"metadata"`
}

// NewTrialReminderTask builds a reminder task scheduled ahead of the
// trial end, floored at now so short trials still get one reminder.
func NewTrialReminderTask(payload TrialReminderPayload, now time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	fireAt := time.Unix(payload.TrialEnd, 0).Add(-reminderLead)
	if fireAt.Before(now) {
		fireAt = now
	}
	return asynq.NewTask(TypeTrialEndingReminder, b), []asynq.Option{asynq.ProcessAt(fireAt)}, nil
}

// HandleTrialReminderTask processes a due reminder. Delivery is a
// structured log entry the studio's ops tooling picks up.
func HandleTrialReminderTask(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload TrialReminderPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return err
		}
		logger.Info("trial ending soon",
			zap.String("customerID", payload.CustomerID),
			zap.String("email", payload.Email),
			zap.Int64("trialEnd", payload.TrialEnd),
			zap.String("method", payload.Metadata.Method),
			zap.String("plan", payload.Metadata.Plan),
			zap.String("bookingDate", payload.Metadata.BookingDate),
		)
		return nil
	}
}
