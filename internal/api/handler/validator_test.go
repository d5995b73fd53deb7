package handler

import (
	"strings"
	"testing"
)

func TestValidator_FieldMessages(t *testing.T) {
	v := NewValidator()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "missing required field",
			in:   loginRequest{Password: "pw"},
			want: "username is required",
		},
		{
			name: "malformed email",
			in:   registerRequest{Username: "x", Email: "not-an-email", Password: "pw"},
			want: "email must be a valid email",
		},
		{
			name: "value outside enumeration",
			in:   tabRequest{Tab: "settings"},
			want: "tab must be one of: dashboard users tasks",
		},
		{
			name: "work item status enumeration",
			in:   workItemRequest{Title: "t", Status: "blocked"},
			want: "status must be one of: pending in_progress completed",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Validate(tc.in)
			if err == nil {
				t.Fatalf("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("message %q does not mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestValidator_AcceptsValidPayloads(t *testing.T) {
	v := NewValidator()

	valid := []any{
		loginRequest{Username: "admin", Password: "pw"},
		registerRequest{Username: "x", Email: "x@example.com", Password: "pw"},
		accountRequest{Username: "x", Email: "x@example.com", Role: "manager"},
		workItemRequest{Title: "t", Status: "pending", Priority: "high"},
	}
	for _, in := range valid {
		if err := v.Validate(in); err != nil {
			t.Fatalf("valid payload %+v rejected: %v", in, err)
		}
	}
}
