package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/middleware"
	"github.com/sangkips/fuelinvoice-api/pkg/apperror"
	"github.com/sangkips/fuelinvoice-api/pkg/pagination"
	"github.com/sangkips/fuelinvoice-api/pkg/utils"
)

// AllVehicles selects every vehicle of a company in tax invoice requests
const AllVehicles = "all"

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserName extracts the user name from the Gin context
func GetUserName(c *gin.Context) string {
	return c.GetString(middleware.ContextUserName)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	return c.GetString(middleware.ContextUserRole)
}

// bindError reports validation failures as 422 field errors and anything
// else as a malformed body
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		response.BadRequest(c, "Invalid request body")
		return
	}

	fieldErrors := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   toSnake(fe.Field()),
			Message: validationMessage(fe),
		})
	}
	response.ValidationError(c, fieldErrors)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "oneof":
		return "Must be one of: " + fe.Param()
	}
	return "Is invalid"
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pathUUID parses a UUID path parameter
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewBadRequestError("Invalid " + strings.ReplaceAll(name, "_", " "))
	}
	return id, nil
}

// pageParams reads page and per_page query parameters
func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// fieldParser collects field errors while converting request strings
type fieldParser struct {
	loc    *time.Location
	errors []apperror.FieldError
}

func newFieldParser(loc *time.Location) *fieldParser {
	return &fieldParser{loc: loc}
}

func (p *fieldParser) date(field, value string) time.Time {
	t, err := utils.ParseDate(value, p.loc)
	if err != nil {
		p.errors = append(p.errors, apperror.FieldError{Field: field, Message: "Must be a date in YYYY-MM-DD format"})
	}
	return t
}

func (p *fieldParser) optionalDate(field, value string) *time.Time {
	t, err := utils.ParseOptionalDate(value, p.loc)
	if err != nil {
		p.errors = append(p.errors, apperror.FieldError{Field: field, Message: "Must be a date in YYYY-MM-DD format"})
		return nil
	}
	return t
}

func (p *fieldParser) uuid(field, value string) uuid.UUID {
	id, err := utils.ParseUUID(value)
	if err != nil {
		p.errors = append(p.errors, apperror.FieldError{Field: field, Message: "Must be a valid ID"})
	}
	return id
}

func (p *fieldParser) optionalUUID(field, value string) *uuid.UUID {
	id, err := utils.ParseOptionalUUID(value)
	if err != nil {
		p.errors = append(p.errors, apperror.FieldError{Field: field, Message: "Must be a valid ID"})
		return nil
	}
	return id
}

// vehicle parses a vehicle selector: "all" or empty selects every vehicle
func (p *fieldParser) vehicle(field, value string) *uuid.UUID {
	if strings.EqualFold(strings.TrimSpace(value), AllVehicles) {
		return nil
	}
	return p.optionalUUID(field, value)
}

func (p *fieldParser) err() error {
	if len(p.errors) == 0 {
		return nil
	}
	return apperror.NewValidationError(p.errors)
}
