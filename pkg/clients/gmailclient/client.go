package gmailclient

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/wolfxl/campbuddy/internal/config"
	"github.com/wolfxl/campbuddy/pkg/utils"
)

// DefaultUserID sends as the authenticated user
const DefaultUserID = "me"

// Client wraps the Gmail API client
type Client struct {
	userID string
	sender string

	// send delivers one message, replaced in tests
	send func(ctx context.Context, userID string, msg *gmail.Message) error

	interval     time.Duration
	lastSendTime time.Time
	sendMutex    sync.Mutex
}

// NewClient creates a Gmail client from an existing OAuth token.
// The token should already carry the gmail.send scope.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token, userID, sender string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return newClient(userID, sender, func(ctx context.Context, userID string, msg *gmail.Message) error {
		_, err := service.Users.Messages.Send(userID, msg).Context(ctx).Do()
		return err
	}), nil
}

func newClient(userID, sender string, send func(ctx context.Context, userID string, msg *gmail.Message) error) *Client {
	if userID == "" {
		userID = DefaultUserID
	}
	return &Client{
		userID:   userID,
		sender:   sender,
		send:     send,
		interval: EmailInterval,
	}
}
