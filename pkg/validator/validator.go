package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/primeitclub/ict-meetup-api/pkg/response"
	"github.com/primeitclub/ict-meetup-api/pkg/utils"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// DateRange is implemented by payloads that carry an optional start/end date
// pair. The range is only checked when both ends are present.
type DateRange interface {
	DateRange() (start *string, end *string)
}

type CustomValidator struct {
	validator *validator.Validate
}

// New builds the validator used by echo. Every type in dateRangeTypes gets the
// start-before-end struct rule.
func New(dateRangeTypes ...interface{}) *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseDate(fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("onedecimal", func(fl validator.FieldLevel) bool {
		scaled := fl.Field().Float() * 10
		return math.Abs(scaled-math.Round(scaled)) < 1e-9
	})

	if len(dateRangeTypes) > 0 {
		v.RegisterStructValidation(validateDateRange, dateRangeTypes...)
	}

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validateDateRange(sl validator.StructLevel) {
	payload, ok := sl.Current().Interface().(DateRange)
	if !ok {
		return
	}

	start, end := payload.DateRange()
	if start == nil || end == nil {
		return
	}

	startDate, err := utils.ParseDate(*start)
	if err != nil {
		return
	}

	endDate, err := utils.ParseDate(*end)
	if err != nil {
		return
	}

	if !startDate.Before(endDate) {
		sl.ReportError(*start, "start_date", "StartDate", "before_end_date", "")
	}
}

// Details converts validator errors into the field-level list returned to
// clients. Other errors produce no details.
func Details(err error) []response.ValidationError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	details := make([]response.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		details = append(details, response.ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}

	return details
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "slug":
		return "Slug must be alphanumeric with hyphens"
	case "date":
		return fmt.Sprintf("Invalid %s format", fe.Field())
	case "onedecimal":
		return fmt.Sprintf("%s must have at most one decimal place", fe.Field())
	case "before_end_date":
		return "start_date must be before end_date"
	}

	return fmt.Sprintf("%s is invalid", fe.Field())
}
