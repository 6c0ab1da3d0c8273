// Package notify holds notification presenters that need no external service.
package notify

import (
	"alarmclock/internal/application/service"
	"alarmclock/internal/pkg/logger"
	"context"
	"fmt"
)

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	log logger.Logger
}

var _ service.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.With("notify")}
}

func (n *LogNotifier) Notify(_ context.Context, msg service.Notification) error {
	n.log.Info(fmt.Sprintf("🔔 [%s/%d] %s: %s", msg.ChannelID, msg.ID, msg.ChannelName, msg.Message))
	return nil
}
