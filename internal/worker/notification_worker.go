package worker

import (
	"context"

	"sportclub/internal/infra"
)

// NotificationWorker delivers queued notification emails via SMTP.
type NotificationWorker struct {
	mailer *infra.Mailer
}

func NewNotificationWorker(mailer *infra.Mailer) *NotificationWorker {
	return &NotificationWorker{mailer: mailer}
}

func (w *NotificationWorker) Handle(_ context.Context, payload NotificationPayload) error {
	return w.mailer.Send(payload.To, payload.Subject, payload.Body)
}
