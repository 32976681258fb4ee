package clierr

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantMsg string
	}{
		{
			name:    "simple error message",
			err:     New(Validation, "latitude out of range", nil),
			wantMsg: "latitude out of range",
		},
		{
			name:    "error with underlying error",
			err:     New(Upload, "upload failed", errors.New("connection reset")),
			wantMsg: "upload failed",
		},
		{
			name:    "empty message",
			err:     New(Internal, "", nil),
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("refresh token revoked")
	err := New(Auth, "session expired", inner)

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
	if New(Auth, "no inner", nil).Unwrap() != nil {
		t.Error("Unwrap of an error without a cause should be nil")
	}
}
