package service

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ranazonai/enquiry-relay/internal/model"
)

// SubmissionInput is the raw contact form. Keys match the form field names.
type SubmissionInput struct {
	Name     string `json:"Name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"Phone" validate:"required,phone"`
	City     string `json:"City" validate:"required"`
	Company  string `json:"Company" validate:"required"`
	Services string `json:"Services" validate:"required"`
	Message  string `json:"Message" validate:"required"`
}

// Fields converts validated input to model fields.
func (in SubmissionInput) Fields() model.Fields {
	return model.Fields{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		City:     in.City,
		Company:  in.Company,
		Services: in.Services,
		Message:  in.Message,
	}
}

// FieldError describes one invalid form field.
type FieldError struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// ValidationError carries every field error of a rejected submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	paths := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		paths[i] = f.Path
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(paths, ", "))
}

// fieldMessages maps form fields to the message reported when they are invalid.
var fieldMessages = map[string]string{
	"Name":     "Name is required.",
	"email":    "Valid email is required.",
	"Phone":    "Valid phone number required.",
	"City":     "City is required.",
	"Company":  "Company is required.",
	"Services": "Services is required.",
	"Message":  "Message is required.",
}

// phoneChars accepts an optional "+", an optional short country prefix, at
// most one bracketed area code, and digit groups joined by single spaces,
// dots or hyphens: "+91 98765 43210", "(555) 010-0100", "+1-555-0100".
var phoneChars = regexp.MustCompile(`^\+?([0-9]{1,4}[ .\-]?)?(\([0-9]{1,5}\)[ .\-]?)?[0-9]+([ .\-]?[0-9]+)*$`)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15 // E.164
)

func validPhone(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if !phoneChars.MatchString(v) {
		return false
	}
	digits := 0
	for _, r := range v {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits && digits <= maxPhoneDigits
}

// Validator checks contact form input.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the phone rule registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("phone", validPhone); err != nil {
		panic(err)
	}

	return &Validator{validate: v}
}

// Validate trims every field of in and returns one FieldError per invalid
// field, in form order. A nil result means the input is valid.
func (v *Validator) Validate(in *SubmissionInput) []FieldError {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.City = strings.TrimSpace(in.City)
	in.Company = strings.TrimSpace(in.Company)
	in.Services = strings.TrimSpace(in.Services)
	in.Message = strings.TrimSpace(in.Message)

	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Type: "field", Msg: err.Error(), Location: "body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Type:     "field",
			Value:    fmt.Sprint(fe.Value()),
			Msg:      fieldMessages[fe.Field()],
			Path:     fe.Field(),
			Location: "body",
		})
	}
	return out
}
