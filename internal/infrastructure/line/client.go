package line

import (
	"alarmclock/internal/application/service"
	"alarmclock/internal/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/line/line-bot-sdk-go/v7/linebot"
)

// Client wraps the linebot.Client.
type Client struct {
	*linebot.Client
	log logger.Logger
}

var (
	lineClientInstance *Client
	lineClientErr      error
	once               sync.Once
)

// NewClient creates a singleton instance of the LINE Bot client.
func NewClient(channelSecret, channelToken string, log logger.Logger) (*Client, error) {
	once.Do(func() {
		if channelSecret == "" || channelToken == "" {
			lineClientErr = errors.New("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set")
			return
		}
		bot, err := linebot.New(channelSecret, channelToken)
		if err != nil {
			lineClientErr = fmt.Errorf("failed to create LINE Bot client: %w", err)
			return
		}
		log.Info("Successfully created LINE Bot client.")
		lineClientInstance = &Client{
			Client: bot,
			log:    log.With("line"),
		}
	})
	return lineClientInstance, lineClientErr
}

// SendMessages sends one or more messages using the ReplyMessage API.
func (c *Client) SendMessages(replyToken string, messages ...linebot.SendingMessage) error {
	if _, err := c.ReplyMessage(replyToken, messages...).Do(); err != nil {
		return err
	}
	c.log.Debug("Successfully sent reply message.")
	return nil
}

// PushMessages sends one or more messages using the PushMessage API.
func (c *Client) PushMessages(ctx context.Context, to string, messages ...linebot.SendingMessage) error {
	if _, err := c.PushMessage(to, messages...).WithContext(ctx).Do(); err != nil {
		return err
	}
	c.log.Debug("Successfully sent push message.")
	return nil
}

// ParseRequest parses incoming webhook requests.
func (c *Client) ParseRequest(r *http.Request) ([]*linebot.Event, error) {
	return c.Client.ParseRequest(r)
}

// Notifier pushes alarm notifications to a single LINE user, group or room.
type Notifier struct {
	client *Client
	to     string
}

var _ service.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier pushing to the given LINE destination ID.
func NewNotifier(client *Client, to string) *Notifier {
	return &Notifier{client: client, to: to}
}

func (n *Notifier) Notify(ctx context.Context, msg service.Notification) error {
	return n.client.PushMessages(ctx, n.to, linebot.NewTextMessage(FormatNotification(msg)))
}

// FormatNotification renders a notification as a chat message.
func FormatNotification(n service.Notification) string {
	return fmt.Sprintf("[%s] %s", n.ChannelName, n.Message)
}
