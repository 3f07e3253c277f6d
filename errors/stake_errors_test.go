package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestStakeErrorBody(t *testing.T) {
	err := NewError(ErrCodeNothingStaked, ErrMsgNothingStaked)

	body := err.Error()
	if body == "" || body[0] != '{' {
		t.Errorf("Expected JSON body, got %q", body)
	}

	if CodeOf(err) != ErrCodeNothingStaked {
		t.Errorf("Expected nothing_staked, got %v", CodeOf(err))
	}
}

func TestStakeErrorIsMatchesByCode(t *testing.T) {
	err := NewError(ErrCodeUnauthorized, "custom detail")
	target := NewError(ErrCodeUnauthorized, ErrMsgUnauthorized)

	if !stderrors.Is(err, target) {
		t.Error("Errors with the same code must match")
	}

	other := NewError(ErrCodeInvalidAmount, ErrMsgInvalidAmount)
	if stderrors.Is(err, other) {
		t.Error("Errors with different codes must not match")
	}
}

func TestCodeOfWrappedError(t *testing.T) {
	err := fmt.Errorf("context: %w", NewError(ErrCodeRecordNotFound, ErrMsgRecordNotFound))
	if CodeOf(err) != ErrCodeRecordNotFound {
		t.Errorf("Expected record_not_found through wrapping, got %v", CodeOf(err))
	}

	if CodeOf(stderrors.New("plain")) != ErrCodeInternal {
		t.Error("Plain errors must map to internal_error")
	}
	if CodeOf(nil) != ErrCodeInternal {
		t.Error("nil must map to internal_error")
	}
}
