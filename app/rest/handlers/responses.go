package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "identity-service/app/utils/errors"
	appvalidator "identity-service/app/utils/validator"
)

// ErrorResponse is the JSON body returned for all failed requests.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// IdentifyRequest is the body of POST /v1/identify.
type IdentifyRequest struct {
	Method     string `json:"method" validate:"required,max=32"`
	Identifier string `json:"identifier" validate:"required,max=254"`
}

// IdentifyResponse carries the short-lived session token back to the client.
type IdentifyResponse struct {
	IdentifierToken string `json:"identifier_token"`
}

// VerifyRequest is the body of POST /v1/verify.
type VerifyRequest struct {
	IdentifierToken string `json:"identifier_token" validate:"required,uuid4"`
	Otp             string `json:"otp" validate:"omitempty,otp_code"`
}

// VerifyResponse carries the access token for a completed verification.
type VerifyResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// writeError maps application errors onto HTTP responses. Validation
// errors get a field map; everything else uses the error code taxonomy.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	var validationErr *appvalidator.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "validation failed",
			Code:   string(apperrors.ErrCodeValidationFailed),
			Fields: validationErr.Errors,
		})
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status := apperrors.GetHTTPStatusCode(appErr)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "code", appErr.Code, "error", err)
		}
		return c.JSON(status, ErrorResponse{
			Error:   appErr.Message,
			Code:    string(appErr.Code),
			Details: appErr.Details,
		})
	}

	logger.Error("unexpected error", "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: "internal server error",
		Code:  string(apperrors.ErrCodeInternalError),
	})
}
