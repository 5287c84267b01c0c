package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/trmops/internal/phone"
)

const (
	defaultAfricasTalkingURL = "https://api.africastalking.com/version1/messaging"
	sandboxAfricasTalkingURL = "https://api.sandbox.africastalking.com/version1/messaging"
	sandboxUsername          = "sandbox"
	africasTalkingTimeout    = 15 * time.Second

	// statusCodeSuccess is the per-recipient code Africa's Talking uses for a sent message.
	statusCodeSuccess = 101
)

// AfricasTalkingConfig holds gateway credentials.
type AfricasTalkingConfig struct {
	APIKey   string
	Username string
	SenderID string
	BaseURL  string
}

// Configured reports whether both credentials are present.
func (c AfricasTalkingConfig) Configured() bool {
	return c.APIKey != "" && c.Username != ""
}

func (c AfricasTalkingConfig) endpoint() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Username == sandboxUsername {
		return sandboxAfricasTalkingURL
	}
	return defaultAfricasTalkingURL
}

type africasTalkingRecipient struct {
	StatusCode int    `json:"statusCode"`
	Number     string `json:"number"`
	Status     string `json:"status"`
	Cost       string `json:"cost"`
	MessageID  string `json:"messageId"`
}

type africasTalkingResponse struct {
	SMSMessageData struct {
		Message    string                    `json:"Message"`
		Recipients []africasTalkingRecipient `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// AfricasTalkingGateway sends codes through the Africa's Talking SMS API.
type AfricasTalkingGateway struct {
	cfg        AfricasTalkingConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewAfricasTalkingGateway builds a live gateway with a bounded HTTP timeout.
func NewAfricasTalkingGateway(cfg AfricasTalkingConfig, logger *logrus.Logger) *AfricasTalkingGateway {
	return &AfricasTalkingGateway{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: africasTalkingTimeout},
		logger:     logger,
	}
}

// Deliver sends a single-recipient SMS and interprets the recipient status.
// The code itself is never logged.
func (g *AfricasTalkingGateway) Deliver(ctx context.Context, number, code string) (result DeliveryResult) {
	masked := phone.Mask(number)

	defer func() {
		if r := recover(); r != nil {
			g.logger.WithField("panic", r).Error("Africa's Talking send panicked")
			result = DeliveryResult{Success: false, Error: "Failed to send SMS"}
		}
	}()

	recipient, err := g.send(ctx, number, fmt.Sprintf(OTPMessage, code))
	if err != nil {
		g.logger.WithError(err).WithField("phone", masked).Error("Failed to send SMS")
		return DeliveryResult{Success: false, Error: err.Error()}
	}

	if recipient.Status == "Success" || recipient.StatusCode == statusCodeSuccess {
		g.logger.WithFields(logrus.Fields{
			"phone":      masked,
			"message_id": recipient.MessageID,
			"cost":       recipient.Cost,
		}).Info("SMS sent")
		return DeliveryResult{Success: true}
	}

	status := recipient.Status
	if status == "" {
		status = fmt.Sprintf("gateway status code %d", recipient.StatusCode)
	}
	g.logger.WithFields(logrus.Fields{
		"phone":       masked,
		"status":      recipient.Status,
		"status_code": recipient.StatusCode,
	}).Warn("SMS rejected by gateway")
	return DeliveryResult{Success: false, Error: status}
}

func (g *AfricasTalkingGateway) send(ctx context.Context, to, message string) (africasTalkingRecipient, error) {
	form := url.Values{}
	form.Set("username", g.cfg.Username)
	form.Set("to", to)
	form.Set("message", message)
	if g.cfg.SenderID != "" {
		form.Set("from", g.cfg.SenderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return africasTalkingRecipient{}, fmt.Errorf("africastalking request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return africasTalkingRecipient{}, fmt.Errorf("africastalking request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return africasTalkingRecipient{}, fmt.Errorf("africastalking read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return africasTalkingRecipient{}, fmt.Errorf("africastalking send failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed africasTalkingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return africasTalkingRecipient{}, fmt.Errorf("africastalking unmarshal: %w", err)
	}
	if len(parsed.SMSMessageData.Recipients) == 0 {
		msg := parsed.SMSMessageData.Message
		if msg == "" {
			msg = "no recipients in gateway response"
		}
		return africasTalkingRecipient{}, fmt.Errorf("africastalking: %s", msg)
	}
	return parsed.SMSMessageData.Recipients[0], nil
}
