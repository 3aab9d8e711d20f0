package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jakechorley/weekly-roster/internal/config"
	"github.com/jakechorley/weekly-roster/pkg/utils"
)

// sendFunc delivers a raw message on behalf of a Gmail user
type sendFunc func(ctx context.Context, userID string, message *gmail.Message) error

// Client wraps the Gmail API client
type Client struct {
	send         sendFunc
	userID       string
	recipients   []string
	interval     time.Duration
	logger       *zap.Logger
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a new Gmail client using an existing OAuth token
// The token should already contain the gmail.send scope
func NewClient(
	ctx context.Context,
	oauthCfg *config.OAuthClientConfig,
	token *oauth2.Token,
	userID string,
	recipients []string,
	logger *zap.Logger,
) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	send := func(ctx context.Context, userID string, message *gmail.Message) error {
		_, err := service.Users.Messages.Send(userID, message).Context(ctx).Do()
		return err
	}

	return newClient(send, userID, recipients, EmailInterval, logger), nil
}

func newClient(send sendFunc, userID string, recipients []string, interval time.Duration, logger *zap.Logger) *Client {
	if userID == "" {
		userID = "me"
	}
	return &Client{
		send:       send,
		userID:     userID,
		recipients: recipients,
		interval:   interval,
		logger:     logger,
	}
}
