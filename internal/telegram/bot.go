package telegram

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Bot owns the webhook lifecycle for the single configured bot token. The
// webhook path embeds a secret derived from the token so update posts cannot
// be forged by guessing the route.
type Bot struct {
	client  *Client
	handler *UpdateHandler

	webhookBaseURL string
	secret         string
}

func NewBot(client *Client, handler *UpdateHandler, token, webhookBaseURL string) *Bot {
	return &Bot{
		client:         client,
		handler:        handler,
		webhookBaseURL: webhookBaseURL,
		secret:         tokenSecret(token),
	}
}

func tokenSecret(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h[:16])
}

func (b *Bot) Start() error {
	webhookURL := fmt.Sprintf("%s/webhook/bot/%s", b.webhookBaseURL, b.secret)
	if err := b.client.SetWebhook(webhookURL, ""); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	log.Printf("[bot] webhook registered: %s", webhookURL)
	return nil
}

func (b *Bot) Stop() {
	if err := b.client.DeleteWebhook(); err != nil {
		log.Printf("[bot] delete webhook: %v", err)
	}
	log.Println("[bot] stopped")
}

func (b *Bot) HandleWebhook(c *gin.Context) {
	if c.Param("secret") != b.secret {
		c.Status(http.StatusNotFound)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var upd Update
	if err := json.Unmarshal(body, &upd); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	go b.handler.Handle(upd)

	c.Status(http.StatusOK)
}
