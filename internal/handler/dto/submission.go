// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"encoding/json"
	"strconv"

	"github.com/ranazonai/enquiry-relay/internal/service"
)

// Response messages.
const (
	MessageSent       = "Email sent successfully!"
	MessageMailFailed = "Email failed to send."
	MessageTooLarge   = "Request body too large."
	MessageNotFound   = "Not found."
	MessageBadMethod  = "Method not allowed."
)

// Form field names, as posted by the contact form.
const (
	FieldName     = "Name"
	FieldEmail    = "email"
	FieldPhone    = "Phone"
	FieldCity     = "City"
	FieldCompany  = "Company"
	FieldServices = "Services"
	FieldMessage  = "Message"
)

// MessageResponse is the body of every non-validation response.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// InfoResponse describes the service on GET /.
type InfoResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

// ValidationErrorResponse lists every invalid field.
type ValidationErrorResponse struct {
	Success bool                 `json:"success"`
	Errors  []service.FieldError `json:"errors"`
}

// SubmissionFromValues builds input from form-style lookups.
func SubmissionFromValues(get func(key string) string) service.SubmissionInput {
	return service.SubmissionInput{
		Name:     get(FieldName),
		Email:    get(FieldEmail),
		Phone:    get(FieldPhone),
		City:     get(FieldCity),
		Company:  get(FieldCompany),
		Services: get(FieldServices),
		Message:  get(FieldMessage),
	}
}

// SubmissionFromJSON builds input from a decoded JSON object.
// Numbers and booleans are accepted in their literal form; any other
// non-string value is treated as missing.
func SubmissionFromJSON(body map[string]any) service.SubmissionInput {
	return SubmissionFromValues(func(key string) string {
		return stringValue(body[key])
	})
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
