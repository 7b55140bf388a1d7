package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"librarium-backend/internal/repository"
)

// sendgridNotifier delivers member notifications as email through
// SendGrid. The send is synchronous; callers decide what a failure
// means for their unit of work.
type sendgridNotifier struct {
	apiKey     string
	fromEmail  string
	fromName   string
	memberRepo repository.MemberRepository
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string, memberRepo repository.MemberRepository) NotificationGateway {
	return &sendgridNotifier{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		memberRepo: memberRepo,
	}
}

func (n *sendgridNotifier) NotifyUser(ctx context.Context, memberID int32, subject, message string) error {
	member, err := n.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return fmt.Errorf("resolve member %d: %w", memberID, err)
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(member.Name, member.Email)
	msg := mail.NewSingleEmail(from, subject, to, message, "")

	client := sendgrid.NewSendClient(n.apiKey)
	response, err := client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("send notification email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
