package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"

	"github.com/jakechorley/weekly-roster/pkg/core/services"
)

// EmailInterval is the minimum gap between two sends
const EmailInterval = 3 * time.Second

// SendEmail sends an email with the specified subject and body
// Throttles requests to respect Gmail API rate limits
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	// Check if we need to wait before sending
	if !c.lastSendTime.IsZero() {
		if wait := c.interval - time.Since(c.lastSendTime); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	gmailMessage := &gmail.Message{
		Raw: encodeMessage(to, subject, body),
	}

	if err := c.send(ctx, c.userID, gmailMessage); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.lastSendTime = time.Now()

	return nil
}

// PublishRoster emails the rendered roster to every configured recipient
func (c *Client) PublishRoster(ctx context.Context, roster *services.PublishedRoster) error {
	if len(c.recipients) == 0 {
		return fmt.Errorf("no email recipients configured")
	}

	subject := RosterSubject(roster)
	body := services.FormatPublishedRoster(roster)

	for _, recipient := range c.recipients {
		c.logger.Debug("Sending roster email",
			zap.String("to", recipient),
			zap.String("run_id", roster.RunID))

		if err := c.SendEmail(ctx, recipient, subject, body); err != nil {
			return fmt.Errorf("failed to email roster to %s: %w", recipient, err)
		}
	}

	c.logger.Info("Roster emailed", zap.Int("recipients", len(c.recipients)))

	return nil
}

// RosterSubject returns the email subject line for a published roster
func RosterSubject(roster *services.PublishedRoster) string {
	return fmt.Sprintf("Roster for the week of %s", roster.WeekStart.Format("Mon Jan 02 2006"))
}

// encodeMessage builds an RFC 2822 plain text message, base64url encoded
func encodeMessage(to, subject, body string) string {
	message := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body)
	return base64.URLEncoding.EncodeToString([]byte(message))
}
