package services

import (
	"context"
	"log/slog"

	"citybeat/internal/domain"
	"citybeat/internal/metrics"
)

type contactService struct {
	sender  domain.ContactSender
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewContactService returns a ContactService that hands submissions to
// the given sender.
func NewContactService(sender domain.ContactSender, logger *slog.Logger, m *metrics.Metrics) domain.ContactService {
	return &contactService{sender: sender, logger: logger, metrics: m}
}

// Submit delivers a submission. A sender failure is reported in the
// result, not as an HTTP error; the submission path is best-effort.
func (s *contactService) Submit(ctx context.Context, sub domain.ContactSubmission) (bool, string) {
	if err := s.sender.Send(ctx, sub); err != nil {
		s.logger.Error("contact submission failed", "err", err, "from", sub.Email)
		return false, err.Error()
	}
	s.metrics.ContactTotal.Inc()
	return true, "submission recorded"
}
