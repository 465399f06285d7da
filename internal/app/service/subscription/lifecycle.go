package subscription

import (
	"fmt"
	"time"

	"github.com/natashawa225/sea-catering/internal/models"
	"github.com/natashawa225/sea-catering/pkg/types"
)

// StatusChange is a requested lifecycle transition. PauseStart and PauseEnd are calendar
// dates (YYYY-MM-DD) and are required when pausing.
type StatusChange struct {
	Status     types.SubscriptionStatus `json:"status"`
	PauseStart string                   `json:"pause_start,omitempty"`
	PauseEnd   string                   `json:"pause_end,omitempty"`
}

// Transition applies change to sub in memory.
//
//	active  -> paused     (pause window required, start <= end)
//	paused  -> active     (clears the pause window)
//	active  -> cancelled
//	paused  -> cancelled
//
// cancelled is terminal. Requests for the current status are rejected as well. Every accepted
// transition sets UpdatedAt to now.
func Transition(sub *models.Subscription, change StatusChange, now time.Time) error {
	if sub == nil {
		return types.ErrNotFound
	}
	target := change.Status
	if !target.Valid() {
		return types.NewValidationError("status", fmt.Sprintf("unknown status %q", target))
	}
	from := sub.Status
	if from == types.SubscriptionStatusCancelled {
		return fmt.Errorf("%w: subscription is cancelled", types.ErrInvalidTransition)
	}
	if from == target {
		return fmt.Errorf("%w: subscription is already %s", types.ErrInvalidTransition, target)
	}

	switch target {
	case types.SubscriptionStatusPaused:
		if from != types.SubscriptionStatusActive {
			return fmt.Errorf("%w: %s -> %s", types.ErrInvalidTransition, from, target)
		}
		start, end, err := parsePauseWindow(change.PauseStart, change.PauseEnd)
		if err != nil {
			return err
		}
		sub.PauseStart, sub.PauseEnd = &start, &end
	case types.SubscriptionStatusActive:
		if from != types.SubscriptionStatusPaused {
			return fmt.Errorf("%w: %s -> %s", types.ErrInvalidTransition, from, target)
		}
		sub.PauseStart, sub.PauseEnd = nil, nil
	case types.SubscriptionStatusCancelled:
		sub.PauseStart, sub.PauseEnd = nil, nil
	}

	sub.Status = target
	sub.UpdatedAt = now
	return nil
}

func parsePauseWindow(start, end string) (string, string, error) {
	if start == "" {
		return "", "", types.NewValidationError("pause_start", "required")
	}
	if end == "" {
		return "", "", types.NewValidationError("pause_end", "required")
	}
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return "", "", types.NewValidationError("pause_start", "must be a YYYY-MM-DD date")
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return "", "", types.NewValidationError("pause_end", "must be a YYYY-MM-DD date")
	}
	if e.Before(s) {
		return "", "", types.NewValidationError("pause_end", "must not be before pause_start")
	}
	return s.Format(time.DateOnly), e.Format(time.DateOnly), nil
}
