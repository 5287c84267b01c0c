package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrDeliveryFailed wraps every unsuccessful DeliveryResult.
var ErrDeliveryFailed = errors.New("otp delivery failed")

// OTPMessage is the text sent to the subscriber.
const OTPMessage = "Your TRM Ops verification code is: %s. Valid for 5 minutes. Do not share this code."

// DeliveryResult is the outcome of a single send attempt.
type DeliveryResult struct {
	Success bool
	Error   string
}

// Err converts a failed result into an error matching ErrDeliveryFailed.
func (r DeliveryResult) Err() error {
	if r.Success {
		return nil
	}
	if r.Error == "" {
		return ErrDeliveryFailed
	}
	return fmt.Errorf("%w: %s", ErrDeliveryFailed, r.Error)
}

// DeliveryGateway sends a one-time code to a canonical phone number.
// Implementations never return transport failures any other way than
// through DeliveryResult.
type DeliveryGateway interface {
	Deliver(ctx context.Context, phone, code string) DeliveryResult
}

// NewDeliveryGateway picks the live gateway when credentials are present and
// the demo gateway otherwise. The choice is made once, at construction.
func NewDeliveryGateway(cfg AfricasTalkingConfig, logger *logrus.Logger) DeliveryGateway {
	if !cfg.Configured() {
		logger.Warn("Africa's Talking credentials not configured, OTP delivery running in demo mode")
		return NewNullGateway(logger)
	}
	return NewAfricasTalkingGateway(cfg, logger)
}

// NullGateway logs codes instead of sending them. It is the demo mode for
// environments without gateway credentials.
type NullGateway struct {
	logger *logrus.Logger
}

// NewNullGateway constructs a NullGateway.
func NewNullGateway(logger *logrus.Logger) *NullGateway {
	return &NullGateway{logger: logger}
}

// Deliver always succeeds and surfaces the code in the log.
func (g *NullGateway) Deliver(_ context.Context, phone, code string) DeliveryResult {
	if g != nil && g.logger != nil {
		g.logger.WithFields(logrus.Fields{
			"phone": phone,
			"otp":   code,
			"mode":  "demo",
		}).Log(demoLevel(g.logger), "OTP not sent, use this code to verify")
	}
	return DeliveryResult{Success: true}
}

// demoLevel is warn, raised to the logger's threshold when warn is filtered
// so the code stays visible. Panic is never used; fatal is the ceiling.
func demoLevel(logger *logrus.Logger) logrus.Level {
	if logger.IsLevelEnabled(logrus.WarnLevel) {
		return logrus.WarnLevel
	}
	if level := logger.GetLevel(); level > logrus.PanicLevel {
		return level
	}
	return logrus.FatalLevel
}
