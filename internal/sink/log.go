package sink

import (
	"context"
	"log/slog"

	"traffic-sim-registration-api-server/internal/registration"
)

// LogSink writes each completed registration to the diagnostic log. It is
// always attached and never fails.
type LogSink struct {
	Logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{Logger: logger}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Emit(_ context.Context, rec registration.Record) error {
	s.Logger.Info("registration submitted",
		"recordID", rec.RecordID,
		"name", rec.PersonalInfo.Name,
		"city", rec.PersonalInfo.City,
		"state", rec.PersonalInfo.State,
		"vehicles", len(rec.Vehicles),
		"registeredAt", rec.RegisteredAt,
	)
	return nil
}

// LogNotifier is the fallback Notifier when no client is listening on the
// websocket stream.
type LogNotifier struct {
	Logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Notify(sessionID string, notif Notification) {
	n.Logger.Info("notification",
		"sessionID", sessionID,
		"title", notif.Title,
		"description", notif.Description,
		"destructive", notif.Destructive,
	)
}
