package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"identity-service/app/metrics"
	"identity-service/app/port"
	"identity-service/app/utils/logger"
	appvalidator "identity-service/app/utils/validator"
)

// AuthHandler handles identification HTTP requests
type AuthHandler struct {
	authUsecase port.AuthUsecase
	validator   *appvalidator.Validator
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase port.AuthUsecase, validator *appvalidator.Validator, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      log.With("component", "auth_handler"),
	}
}

// Identify handles POST /v1/identify.
// @Summary Start identification
// @Description Resolve the identifier, dispatch a one-time code, and return a session token
// @Tags identification
// @Accept json
// @Produce json
// @Param request body IdentifyRequest true "Identification request"
// @Success 200 {object} IdentifyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/identify [post]
func (h *AuthHandler) Identify(c echo.Context) error {
	start := time.Now()
	ctx := c.Request().Context()

	var req IdentifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_INPUT",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		metrics.RecordIdentify(req.Method, "validation_failed", time.Since(start).Seconds())
		return writeError(c, h.logger, err)
	}

	token, err := h.authUsecase.Identify(ctx, req.Method, req.Identifier)
	if err != nil {
		metrics.RecordIdentify(req.Method, "error", time.Since(start).Seconds())
		return writeError(c, h.logger, err)
	}

	h.logger.Info("identification started",
		"method", req.Method,
		"session_token", logger.TruncateToken(token),
		"ip", c.RealIP())
	metrics.RecordIdentify(req.Method, "success", time.Since(start).Seconds())

	return c.JSON(http.StatusOK, IdentifyResponse{IdentifierToken: token})
}

// Verify handles POST /v1/verify.
// @Summary Complete identification
// @Description Exchange a session token and one-time code for an access token
// @Tags identification
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification request"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /v1/verify [post]
func (h *AuthHandler) Verify(c echo.Context) error {
	start := time.Now()
	ctx := c.Request().Context()

	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_INPUT",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		metrics.RecordVerify("validation_failed", time.Since(start).Seconds())
		return writeError(c, h.logger, err)
	}

	accessToken, err := h.authUsecase.Verify(ctx, req.IdentifierToken, req.Otp)
	if err != nil {
		metrics.RecordVerify("error", time.Since(start).Seconds())
		return writeError(c, h.logger, err)
	}

	h.logger.Info("identification verified",
		"session_token", logger.TruncateToken(req.IdentifierToken),
		"ip", c.RealIP())
	metrics.RecordVerify("success", time.Since(start).Seconds())

	return c.JSON(http.StatusOK, VerifyResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}
