package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/St1cky1/task-tracker/internal/entity"
)

// RequestValidator checks create/update payloads before they reach the service.
type RequestValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewRequestValidator() *RequestValidator {
	return newRequestValidator(time.Now)
}

func newRequestValidator(now func() time.Time) *RequestValidator {
	v := &RequestValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.validate.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if dt, ok := f.Interface().(entity.DateTime); ok {
			return dt.Time
		}
		return nil
	}, entity.DateTime{})

	// registration only fails on empty tags or nil funcs
	_ = v.validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.validate.RegisterValidation("futureorpresent", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		// the wire format has second precision
		return !t.Before(v.now().Truncate(time.Second))
	})

	return v
}

func (v *RequestValidator) ValidateCreate(req *entity.CreateTaskRequest) error {
	return v.check(req)
}

func (v *RequestValidator) ValidateUpdate(req *entity.UpdateTaskRequest) error {
	return v.check(req)
}

func (v *RequestValidator) check(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return entity.NewValidationError("invalid request: %v", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return entity.NewValidationError("%s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "title":
		switch fe.Tag() {
		case "required", "notblank":
			return "Title is mandatory"
		case "max":
			return "Title must be less than 255 characters"
		}
	case "description":
		if fe.Tag() == "max" {
			return "Description must be less than 2000 characters"
		}
	case "dueDate":
		if fe.Tag() == "futureorpresent" {
			return "Due date must be in present or future"
		}
	case "status":
		if fe.Tag() == "oneof" {
			return fmt.Sprintf("Status must be one of %s", fe.Param())
		}
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}
