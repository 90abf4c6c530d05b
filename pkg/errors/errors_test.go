package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidSection, "section %q has no id", "panel-3")

	if err.Code != ErrCodeInvalidSection {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidSection)
	}
	want := `INVALID_SECTION: section "panel-3" has no id`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(ErrCodeInternal, cause, "packing failed")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if got := err.Error(); got != "INTERNAL_ERROR: packing failed: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidStrategy, "no such strategy")

	if !Is(err, ErrCodeInvalidStrategy) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeNotFound) {
		t.Error("Is should not match plain errors")
	}

	// Matches through wrapping layers.
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeInvalidStrategy) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeLayoutNotFound, "gone")); got != ErrCodeLayoutNotFound {
		t.Errorf("GetCode = %q", got)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "gap must not be negative")
	if got := UserMessage(err); got != "gap must not be negative" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
