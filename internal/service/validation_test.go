package service

import (
	"testing"
)

func validInput() SubmissionInput {
	return SubmissionInput{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Phone:    "+1-555-0100",
		City:     "Pune",
		Company:  "Acme",
		Services: "Web Development",
		Message:  "Looking for a quote.",
	}
}

func TestValidator_Valid(t *testing.T) {
	v := NewValidator()
	in := validInput()
	in.Name = "  Jane Doe  "

	if errs := v.Validate(&in); errs != nil {
		t.Fatalf("expected no errors, got %+v", errs)
	}
	if in.Name != "Jane Doe" {
		t.Errorf("expected name to be trimmed, got %q", in.Name)
	}
}

func TestValidator_EmptyBodyReportsEveryField(t *testing.T) {
	v := NewValidator()
	in := SubmissionInput{}

	errs := v.Validate(&in)

	wantPaths := []string{"Name", "email", "Phone", "City", "Company", "Services", "Message"}
	if len(errs) != len(wantPaths) {
		t.Fatalf("expected %d errors, got %d: %+v", len(wantPaths), len(errs), errs)
	}
	for i, path := range wantPaths {
		if errs[i].Path != path {
			t.Errorf("error %d path = %q, want %q", i, errs[i].Path, path)
		}
		if errs[i].Type != "field" || errs[i].Location != "body" {
			t.Errorf("error %d has type=%q location=%q", i, errs[i].Type, errs[i].Location)
		}
		if errs[i].Msg == "" {
			t.Errorf("error %d has empty message", i)
		}
	}
}

func TestValidator_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *SubmissionInput)
		wantErr string // path of the single expected error, "" for valid
		wantMsg string
	}{
		{"valid", func(in *SubmissionInput) {}, "", ""},
		{"whitespace name", func(in *SubmissionInput) { in.Name = "   " }, "Name", "Name is required."},
		{"bad email", func(in *SubmissionInput) { in.Email = "not-an-email" }, "email", "Valid email is required."},
		{"email missing domain", func(in *SubmissionInput) { in.Email = "jane@" }, "email", "Valid email is required."},
		{"email with spaces trimmed", func(in *SubmissionInput) { in.Email = " jane@example.com " }, "", ""},
		{"phone letters", func(in *SubmissionInput) { in.Phone = "call me" }, "Phone", "Valid phone number required."},
		{"phone too short", func(in *SubmissionInput) { in.Phone = "12345" }, "Phone", "Valid phone number required."},
		{"phone too long", func(in *SubmissionInput) { in.Phone = "+1234567890123456" }, "Phone", "Valid phone number required."},
		{"phone with spaces", func(in *SubmissionInput) { in.Phone = "+91 98765 43210" }, "", ""},
		{"phone with parens", func(in *SubmissionInput) { in.Phone = "(555) 010-0100" }, "", ""},
		{"phone with country and area code", func(in *SubmissionInput) { in.Phone = "+44 (20) 7946 0958" }, "", ""},
		{"phone nested brackets", func(in *SubmissionInput) { in.Phone = "(((((1234567)))))" }, "Phone", "Valid phone number required."},
		{"phone two bracket groups", func(in *SubmissionInput) { in.Phone = "(555) (010) 0100" }, "Phone", "Valid phone number required."},
		{"phone unbalanced bracket", func(in *SubmissionInput) { in.Phone = "(555 010 0100" }, "Phone", "Valid phone number required."},
		{"phone doubled separator", func(in *SubmissionInput) { in.Phone = "555--010--0100" }, "Phone", "Valid phone number required."},
		{"phone trailing separator", func(in *SubmissionInput) { in.Phone = "5550100100-" }, "Phone", "Valid phone number required."},
		{"empty city", func(in *SubmissionInput) { in.City = "" }, "City", "City is required."},
		{"empty company", func(in *SubmissionInput) { in.Company = "" }, "Company", "Company is required."},
		{"empty services", func(in *SubmissionInput) { in.Services = "\t" }, "Services", "Services is required."},
		{"empty message", func(in *SubmissionInput) { in.Message = "" }, "Message", "Message is required."},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			errs := v.Validate(&in)
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected valid, got %+v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %+v", errs)
			}
			if errs[0].Path != tt.wantErr || errs[0].Msg != tt.wantMsg {
				t.Errorf("got %s %q, want %s %q", errs[0].Path, errs[0].Msg, tt.wantErr, tt.wantMsg)
			}
		})
	}
}

func TestValidator_ReportsValue(t *testing.T) {
	v := NewValidator()
	in := validInput()
	in.Email = " nope "

	errs := v.Validate(&in)
	if len(errs) != 1 || errs[0].Value != "nope" {
		t.Fatalf("expected trimmed value in error, got %+v", errs)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Path: "Name"}, {Path: "email"}}}
	if got := err.Error(); got != "validation failed: Name, email" {
		t.Errorf("Error() = %q", got)
	}
}
