package events

import (
	"context"

	"go.uber.org/zap"
)

// RegisterLogListener subscribes a structured-log handler to every issue
// lifecycle event. It stands in for outbound notifications.
func RegisterLogListener(d Dispatcher, logger *zap.Logger) {
	handler := func(_ context.Context, event Event) error {
		logger.Info("issue event",
			zap.String("type", string(event.Type)),
			zap.String("issue_id", event.IssueID),
			zap.String("actor_id", event.Actor.UserID),
			zap.String("actor_role", string(event.Actor.Role)),
		)
		return nil
	}

	d.Subscribe(EventIssueCreated, handler)
	d.Subscribe(EventIssueStatusChanged, handler)
	d.Subscribe(EventIssueDeleted, handler)
}
