package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/workers-united/verify-api/internal/models"
	"github.com/workers-united/verify-api/pkg/brevo"
)

// ApprovalNotifier informs a candidate that their application was approved.
type ApprovalNotifier interface {
	NotifyApproved(ctx context.Context, candidate models.Candidate) error
}

// EmailApprovalNotifier delivers the approval message through Brevo.
type EmailApprovalNotifier struct {
	client *brevo.Client
	logger zerolog.Logger
}

// NewEmailApprovalNotifier constructs an email-backed notifier.
func NewEmailApprovalNotifier(client *brevo.Client, logger zerolog.Logger) *EmailApprovalNotifier {
	return &EmailApprovalNotifier{
		client: client,
		logger: logger.With().Str("component", "approval_notifier").Logger(),
	}
}

// NotifyApproved sends the approval email.
func (n *EmailApprovalNotifier) NotifyApproved(ctx context.Context, candidate models.Candidate) error {
	subject := "Your documents are verified - application approved"
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>All your documents have been verified and your application is now approved. "+
			"We will match you with suitable employers and contact you with next steps.</p>"+
			"<p>The Workers United team</p>",
		candidate.Name,
	)

	if err := n.client.Send(ctx, candidate.Email, candidate.Name, subject, body); err != nil {
		return err
	}

	n.logger.Info().Uint("candidate_id", candidate.ID).Msg("approval email sent")
	return nil
}

// LogApprovalNotifier is the fallback when no email provider is configured.
type LogApprovalNotifier struct {
	logger zerolog.Logger
}

// NewLogApprovalNotifier constructs a logging notifier.
func NewLogApprovalNotifier(logger zerolog.Logger) *LogApprovalNotifier {
	return &LogApprovalNotifier{logger: logger.With().Str("component", "approval_notifier").Logger()}
}

// NotifyApproved logs the approval and returns nil.
func (n *LogApprovalNotifier) NotifyApproved(_ context.Context, candidate models.Candidate) error {
	n.logger.Info().
		Uint("candidate_id", candidate.ID).
		Str("email", candidate.Email).
		Msg("candidate approved (no email provider configured)")
	return nil
}
