package handlers

import (
	"errors"
	"net/http"
	"strings"

	"fieldservice_quotes/internal/usecase"
	"fieldservice_quotes/pkg"
	"fieldservice_quotes/pkg/logger"

	"github.com/gin-gonic/gin"
)

// mapQuoteError turns a use case error into the HTTP envelope. Specific
// causes are checked before the four error kinds.
func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrStatusTransitionNotAllowed):
		return withValidationDetail(pkg.NewDomainErrorSimple("STATUS_TRANSITION_NOT_ALLOWED", "Status transition not allowed", http.StatusConflict), err)
	case errors.Is(err, usecase.ErrTooManyItems):
		return pkg.NewDomainErrorSimple("TOO_MANY_ITEMS", "Too many items in a single request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotApproved):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_APPROVED", "Quote not approved", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteTotalNotPayable):
		return pkg.NewDomainErrorSimple("QUOTE_TOTAL_NOT_PAYABLE", "Quote total must be greater than zero", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_BAD_REQUEST", "Payment provider rejected the request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayMissing):
		return pkg.NewDomainErrorSimple("PAYMENT_GATEWAY_UNAVAILABLE", "Payment gateway not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrValidation):
		return withValidationDetail(pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Invalid request", http.StatusBadRequest), err)
	case errors.Is(err, usecase.ErrNotFound):
		var nf *usecase.NotFoundError
		if errors.As(err, &nf) {
			return pkg.NewDomainErrorSimple(notFoundCode(nf.Resource), capitalize(nf.Resource)+" not found", http.StatusNotFound)
		}
		return pkg.NewDomainErrorSimple("NOT_FOUND", "Resource not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrReferenceIntegrity):
		appErr := pkg.NewDomainErrorSimple("REFERENCE_INTEGRITY", "Referenced record does not exist or does not belong to the client", http.StatusUnprocessableEntity)
		var ri *usecase.ReferenceIntegrityError
		if errors.As(err, &ri) {
			appErr = appErr.WithDetail(ri.Field, ri.Reason)
		}
		return appErr
	case errors.Is(err, usecase.ErrCollaborator):
		return pkg.NewDomainError("UPSTREAM_FAILURE", "A dependent service failed", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func withValidationDetail(appErr *pkg.AppError, err error) *pkg.AppError {
	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return appErr.WithDetail(ve.Field, ve.Reason)
	}
	return appErr
}

func notFoundCode(resource string) string {
	return strings.ToUpper(strings.ReplaceAll(resource, " ", "_")) + "_NOT_FOUND"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeError logs err and writes its envelope. Server-side failures are
// logged at error level, caller mistakes at debug.
func writeError(c *gin.Context, log *logger.Logger, msg string, err error) {
	appErr := mapQuoteError(err)
	ctx := log.WithField(c.Request.Context(), "code", appErr.Code)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error(ctx, msg, err)
	} else {
		log.Debug(log.WithField(ctx, "error", err.Error()), msg)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
