package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const DefaultEndpoint = "https://api.telegram.org"

const sendRequestTimeout = 10 * time.Second

// Client publishes into a channel through the Telegram Bot API. Image and
// voice payloads are file identifiers the platform already holds; the bot
// re-sends them by reference.
type Client struct {
	endpoint string
	token    string
	client   *http.Client
}

func New(endpoint, token string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: sendRequestTimeout},
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) call(ctx context.Context, method string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.endpoint, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}

	defer res.Body.Close()

	var parsedData apiResponse
	var buf bytes.Buffer

	if _, err := buf.ReadFrom(res.Body); err != nil {
		return fmt.Errorf("failed to read from response body: %w", err)
	}

	if err := json.Unmarshal(buf.Bytes(), &parsedData); err != nil {
		return fmt.Errorf("failed to unmarshal %s response: %w", method, err)
	}

	if !parsedData.OK {
		return fmt.Errorf("%s rejected: %s", method, parsedData.Description)
	}

	return nil
}

func (c *Client) SendText(ctx context.Context, chatID, text string) error {
	return c.call(ctx, "sendMessage", map[string]string{
		"chat_id": chatID,
		"text":    text,
	})
}

func (c *Client) SendImage(ctx context.Context, chatID, fileID, caption string) error {
	return c.call(ctx, "sendPhoto", map[string]string{
		"chat_id": chatID,
		"photo":   fileID,
		"caption": caption,
	})
}

func (c *Client) SendVoice(ctx context.Context, chatID, fileID, caption string) error {
	return c.call(ctx, "sendVoice", map[string]string{
		"chat_id": chatID,
		"voice":   fileID,
		"caption": caption,
	})
}
