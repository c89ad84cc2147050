// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code lookup across chains

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/syncd/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "configuration_error",
			code:    errors.ErrConfiguration,
			message: "path outside home",
			wantStr: "[CONFIGURATION] path outside home",
		},
		{
			name:    "ledger_corrupt_error",
			code:    errors.ErrLedgerCorrupt,
			message: "bad metadata",
			wantStr: "[LEDGER_CORRUPT] bad metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFatalIO, "cannot create tree")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[FATAL_IO] cannot create tree: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrSkippableIO, "copy failed").
		WithDetail("spec", "~/.config/nvim").
		WithDetail("step", "copy")

	if err.Details["spec"] != "~/.config/nvim" {
		t.Errorf("WithDetail() spec = %v", err.Details["spec"])
	}
	if err.Details["step"] != "copy" {
		t.Errorf("WithDetail() step = %v", err.Details["step"])
	}
	if got := errors.GetErrorDetails(err)["step"]; got != "copy" {
		t.Errorf("GetErrorDetails() step = %v", got)
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotFound, "error 1")
	err2 := errors.New(errors.ErrNotFound, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if stderrors.Is(err1, err3) {
		t.Error("errors.Is() should not match different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "x"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "x"), errors.ErrInternal, false},
		{"fmt_wrapped", fmt.Errorf("outer: %w", errors.New(errors.ErrLedgerCorrupt, "x")), errors.ErrLedgerCorrupt, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHasErrorCode(t *testing.T) {
	rootCause := stderrors.New("root cause")
	corrupt := errors.Wrap(rootCause, errors.ErrLedgerCorrupt, "cannot parse ledger")
	fatal := errors.Wrap(corrupt, errors.ErrFatalIO, "restore aborted")

	if !errors.IsErrorCode(fatal, errors.ErrFatalIO) {
		t.Error("outermost code should be FATAL_IO")
	}
	if errors.IsErrorCode(fatal, errors.ErrLedgerCorrupt) {
		t.Error("IsErrorCode should only look at the outermost SyncError")
	}
	if !errors.HasErrorCode(fatal, errors.ErrLedgerCorrupt) {
		t.Error("HasErrorCode should find the nested code")
	}
	if errors.HasErrorCode(fatal, errors.ErrConfiguration) {
		t.Error("HasErrorCode should not invent codes")
	}
	if !stderrors.Is(fatal, rootCause) {
		t.Error("root cause should stay reachable")
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrGitClone, "x")); got != errors.ErrGitClone {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v", got)
	}
}
