package notify

import (
	"context"
	"fmt"
	"time"
)

// Notifier composes the account emails.
type Notifier struct {
	sender Sender
	ttl    time.Duration
}

// NewNotifier creates a Notifier. ttl is shown to users as the token lifetime.
func NewNotifier(sender Sender, ttl time.Duration) *Notifier {
	return &Notifier{sender: sender, ttl: ttl}
}

func (n *Notifier) SendVerification(ctx context.Context, to, name, token string) error {
	return n.sender.Send(ctx, Message{
		To:      to,
		Subject: "Verify your email address",
		Body: fmt.Sprintf("Hello %s,\n\nUse this code to verify your email address:\n\n    %s\n\nThe code expires in %s.\n",
			name, token, n.ttl),
	})
}

func (n *Notifier) SendPasswordReset(ctx context.Context, to, name, token string) error {
	return n.sender.Send(ctx, Message{
		To:      to,
		Subject: "Reset your password",
		Body: fmt.Sprintf("Hello %s,\n\nUse this code to reset your password:\n\n    %s\n\nThe code expires in %s. If you did not ask for a reset, ignore this email.\n",
			name, token, n.ttl),
	})
}
