package validate

import (
	"errors"
	"fmt"
	"testing"
)

func TestNonEmpty(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"plain", "hello", "hello", false},
		{"surrounding space", "  hello \n", "hello", false},
		{"empty", "", "", true},
		{"whitespace only", " \t\n ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NonEmpty("prompt", tt.value, "Prompt cannot be empty")
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Error() != "Prompt cannot be empty" {
					t.Errorf("error = %q, want %q", err.Error(), "Prompt cannot be empty")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("NonEmpty(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "demo", "demo", false},
		{"trimmed", "  demo  ", "demo", false},
		{"spaces inside", "My App", "My App", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"dot", ".", "", true},
		{"dot dot", "..", "", true},
		{"slash", "a/b", "", true},
		{"backslash", `a\b`, "", true},
		{"control char", "a\x00b", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProjectName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ProjectName(%q) expected error", tt.input)
				}
				if !IsValidation(err) {
					t.Errorf("expected validation error, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ProjectName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	sentinel := &Error{Field: "prompt"}
	_, err := NonEmpty("prompt", "", "Prompt cannot be empty")

	wrapped := fmt.Errorf("generating: %w", err)
	if !errors.Is(wrapped, sentinel) {
		t.Error("wrapped prompt error should match field sentinel")
	}
	if errors.Is(wrapped, &Error{Field: "projectName"}) {
		t.Error("prompt error should not match projectName sentinel")
	}
	if IsValidation(errors.New("disk full")) {
		t.Error("plain error should not be a validation error")
	}
}
