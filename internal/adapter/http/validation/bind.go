package validation

import (
	"errors"
	"net/http"
	"strings"

	"fieldservice_quotes/pkg"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

var (
	ErrInvalidBody   = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest)
	ErrInvalidFields = pkg.NewDomainErrorSimple("VALIDATION_ERROR", "Request validation failed", http.StatusBadRequest)
)

// BindJSON only decodes the JSON body into out.
func BindJSON(c *gin.Context, out interface{}) *pkg.AppError {
	if err := c.ShouldBindJSON(out); err != nil {
		return ErrInvalidBody.WithDetail("body", err.Error())
	}
	return nil
}

// BindAndValidate decodes the JSON body into out and runs the struct tags.
// The returned error is always a *pkg.AppError ready to be written.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) *pkg.AppError {
	if appErr := BindJSON(c, out); appErr != nil {
		return appErr
	}
	return Validate(out, v)
}

// Validate runs struct validation on an already decoded value.
func Validate(out interface{}, v *validatorv10.Validate) *pkg.AppError {
	err := v.Struct(out)
	if err == nil {
		return nil
	}
	var fieldErrs validatorv10.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return pkg.NewDomainError(ErrInvalidFields.Code, ErrInvalidFields.Message, err, http.StatusBadRequest)
	}
	appErr := ErrInvalidFields
	for _, fe := range fieldErrs {
		appErr = appErr.WithDetail(fieldPath(fe.Namespace()), describe(fe))
	}
	return appErr
}

// fieldPath drops the root struct name: "CreateQuoteRequest.items[0].kind"
// becomes "items[0].kind".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validatorv10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "quote_status":
		return "must be one of PENDING, APPROVED, REJECTED, CANCELED"
	}
	return "failed on " + fe.Tag()
}
