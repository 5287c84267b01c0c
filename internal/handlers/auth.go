package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/example/trmops/internal/cookies"
	"github.com/example/trmops/internal/directory"
	"github.com/example/trmops/internal/otp"
	"github.com/example/trmops/internal/phone"
	"github.com/example/trmops/internal/services"
	"github.com/example/trmops/internal/session"
)

const (
	loginPath  = "/login"
	verifyPath = "/login/verify"

	intentResend = "resend"
)

// AuthDeps bundles the collaborators of the login flow.
type AuthDeps struct {
	Generator  otp.Generator
	Gateway    services.DeliveryGateway
	Challenges *otp.ChallengeStore
	Verifier   *otp.Verifier
	Directory  directory.Directory
	Sessions   *session.Manager
	Promoter   *session.Promoter
	Logger     *logrus.Logger
	Now        func() time.Time
}

// AuthHandler serves the OTP login endpoints.
type AuthHandler struct {
	generator  otp.Generator
	gateway    services.DeliveryGateway
	challenges *otp.ChallengeStore
	verifier   *otp.Verifier
	directory  directory.Directory
	sessions   *session.Manager
	promoter   *session.Promoter
	logger     *logrus.Logger
	now        func() time.Time
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(deps AuthDeps) *AuthHandler {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &AuthHandler{
		generator:  deps.Generator,
		gateway:    deps.Gateway,
		challenges: deps.Challenges,
		verifier:   deps.Verifier,
		directory:  deps.Directory,
		sessions:   deps.Sessions,
		promoter:   deps.Promoter,
		logger:     deps.Logger,
		now:        now,
	}
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
}

// Login validates the phone, sends a code and starts the verification step.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	canonical, err := phone.Normalize(req.PhoneNumber)
	if err != nil {
		return err
	}

	challenge, err := h.sendCode(c.UserContext(), canonical)
	if err != nil {
		return err
	}

	setCookie(c, challenge)
	return c.Redirect(verifyPath, fiber.StatusSeeOther)
}

// VerifyPage describes the pending challenge for the verification screen.
func (h *AuthHandler) VerifyPage(c *fiber.Ctx) error {
	challenge, ok := h.challenges.Read(c.Cookies(otp.ChallengeCookieName))
	if !ok {
		return c.Redirect(loginPath, fiber.StatusFound)
	}

	return c.JSON(fiber.Map{
		"masked_phone": phone.Mask(challenge.PhoneNumber),
		"expires_in":   int(challenge.Remaining(h.now()) / time.Second),
	})
}

type verifyRequest struct {
	OTP    string `json:"otp" form:"otp"`
	Intent string `json:"intent" form:"intent"`
}

// Verify checks the submitted code and promotes the caller to a session, or
// resends a code when the resend intent is present.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Intent == intentResend {
		return h.resend(c)
	}

	if err := otp.ValidateCodeFormat(req.OTP); err != nil {
		return err
	}

	verified, err := h.verifier.Verify(c.Cookies(otp.ChallengeCookieName), req.OTP)
	if err != nil {
		return err
	}

	role, err := h.directory.ResolveRole(c.UserContext(), verified)
	if err != nil {
		return err
	}

	promotion, err := h.promoter.Promote(verified, role)
	if err != nil {
		return err
	}

	h.logger.WithFields(logrus.Fields{
		"phone": phone.Mask(verified),
		"role":  string(role),
	}).Info("user signed in")

	setCookies(c, promotion.Cookies)
	return c.Redirect(promotion.Location, fiber.StatusSeeOther)
}

// resend issues a fresh code to the phone bound to the existing challenge.
// An expired but intact challenge still identifies the phone.
func (h *AuthHandler) resend(c *fiber.Ctx) error {
	existing, ok := h.challenges.Read(c.Cookies(otp.ChallengeCookieName))
	if !ok {
		return otp.ErrNoChallenge
	}

	challenge, err := h.sendCode(c.UserContext(), existing.PhoneNumber)
	if err != nil {
		if errors.Is(err, services.ErrDeliveryFailed) {
			return fiber.NewError(fiber.StatusBadGateway, MsgResendFailed)
		}
		return err
	}

	setCookie(c, challenge)
	return c.JSON(fiber.Map{"success": true, "message": MsgResendSucceeded})
}

// Logout clears the session and returns to the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	setCookie(c, h.sessions.Destroy())
	return c.Redirect(loginPath, fiber.StatusSeeOther)
}

// sendCode generates and delivers a code, then seals the challenge. Nothing
// is persisted when delivery fails, so the previous challenge stays in place.
func (h *AuthHandler) sendCode(ctx context.Context, canonical string) (cookies.Cookie, error) {
	code, err := h.generator.Generate()
	if err != nil {
		return cookies.Cookie{}, err
	}

	if err := h.gateway.Deliver(ctx, canonical, code).Err(); err != nil {
		h.logger.WithError(err).WithField("phone", phone.Mask(canonical)).Warn("otp delivery failed")
		return cookies.Cookie{}, err
	}

	return h.challenges.Create(canonical, code)
}

// LoginRateKey throttles code sends on login per canonical phone, falling
// back to the client IP for unparsable input.
func (h *AuthHandler) LoginRateKey(c *fiber.Ctx) string {
	var req loginRequest
	if err := c.BodyParser(&req); err == nil {
		if canonical, err := phone.Normalize(req.PhoneNumber); err == nil {
			return canonical
		}
	}
	return c.IP()
}

// ResendRateKey throttles resends per challenge phone. Code submissions
// without the resend intent are exempt.
func (h *AuthHandler) ResendRateKey(c *fiber.Ctx) string {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil || req.Intent != intentResend {
		return ""
	}
	if existing, ok := h.challenges.Read(c.Cookies(otp.ChallengeCookieName)); ok {
		return existing.PhoneNumber
	}
	return c.IP()
}
