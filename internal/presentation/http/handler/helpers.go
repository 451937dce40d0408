package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/policy"
	"github.com/sangkips/gopos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gopos-api/internal/presentation/http/middleware"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/money"
	"github.com/shopspring/decimal"
)

// UseJSONFieldNames makes validation errors report json tag names
func UseJSONFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	}
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return nil
	}
	return &userID
}

// GetPolicy extracts the caller's policy from the Gin context
func GetPolicy(c *gin.Context) *policy.Policy {
	p, ok := middleware.GetPolicy(c)
	if !ok {
		return nil
	}
	return p
}

// parseID reads a uuid path parameter, writing a 400 when it is malformed
func parseID(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body. Tag violations answer 422 with field
// errors; anything else is a malformed body.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		writeBindError(c, err, "Invalid request body")
		return false
	}
	return true
}

// bindQuery is bindJSON for query parameters
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeBindError(c, err, "Invalid query parameters")
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error, fallback string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.ValidationError(c, fieldErrors(verrs))
		return
	}
	response.BadRequest(c, fallback)
}

func fieldErrors(verrs validator.ValidationErrors) []apperror.FieldError {
	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{
			Field:   fieldPath(fe),
			Message: validationMessage(fe),
		})
	}
	return out
}

// fieldPath strips the top-level struct name from the namespace, e.g.
// CreateOrderRequest.items[0].name -> items[0].name
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	case "eqfield":
		return "does not match"
	}
	return "is invalid"
}

// amounts converts request decimals to cents, collecting every field that
// falls outside the range the ledger stores
type amounts struct {
	errs []apperror.FieldError
}

func (a *amounts) cents(field string, d decimal.Decimal) int64 {
	c, err := money.Parse(d)
	if err != nil {
		a.errs = append(a.errs, apperror.FieldError{Field: field, Message: "must be at most " + money.Format(money.MaxCents)})
	}
	return c
}

func (a *amounts) optional(field string, d *decimal.Decimal) *int64 {
	if d == nil {
		return nil
	}
	c := a.cents(field, *d)
	return &c
}

// err answers 400 with the collected field errors, or nil
func (a *amounts) err() error {
	if len(a.errs) == 0 {
		return nil
	}
	appErr := apperror.NewBadRequestError(a.errs[0].Field + ": " + a.errs[0].Message)
	appErr.Errors = a.errs
	return appErr
}
