package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const apiBase = "https://api.telegram.org/bot"

// Client is a thin JSON client for the Bot API methods this bot uses.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		endpoint: apiBase + token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// call posts one Bot API method and returns the raw result payload.
func (c *Client) call(method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal: %w", method, err)
	}

	resp, err := c.http.Post(c.endpoint+"/"+method, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", method, err)
	}

	var wrapped APIResponse
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", method, err)
	}
	if !wrapped.OK {
		return nil, fmt.Errorf("%s: api error: %s", method, wrapped.Description)
	}
	return wrapped.Result, nil
}

// SendMessage delivers a message and returns its id so callers can edit it
// later. replyMarkup may be nil or any keyboard type from types.go.
func (c *Client) SendMessage(chatID int64, text, parseMode string, replyMarkup interface{}) (int64, error) {
	req := SendMessageRequest{ChatID: chatID, Text: text, ParseMode: parseMode}
	if replyMarkup != nil {
		rm, err := json.Marshal(replyMarkup)
		if err != nil {
			return 0, err
		}
		req.ReplyMarkup = rm
	}

	result, err := c.call("sendMessage", req)
	if err != nil {
		return 0, err
	}

	var msg MessageResult
	if err := json.Unmarshal(result, &msg); err != nil {
		return 0, fmt.Errorf("sendMessage: decode result: %w", err)
	}
	return msg.MessageID, nil
}

func (c *Client) EditMessageText(chatID, messageID int64, text, parseMode string, replyMarkup interface{}) error {
	req := EditMessageTextRequest{ChatID: chatID, MessageID: messageID, Text: text, ParseMode: parseMode}
	if replyMarkup != nil {
		rm, err := json.Marshal(replyMarkup)
		if err != nil {
			return err
		}
		req.ReplyMarkup = rm
	}
	_, err := c.call("editMessageText", req)
	return err
}

func (c *Client) AnswerCallbackQuery(callbackID, text string, showAlert bool) error {
	_, err := c.call("answerCallbackQuery", AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	})
	return err
}

func (c *Client) SetWebhook(url, secretToken string) error {
	_, err := c.call("setWebhook", SetWebhookRequest{URL: url, SecretToken: secretToken})
	return err
}

func (c *Client) DeleteWebhook() error {
	_, err := c.call("deleteWebhook", struct{}{})
	return err
}
