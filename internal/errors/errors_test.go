package errors

import (
	"fmt"
	"testing"
)

func TestWrapKeepsCode(t *testing.T) {
	base := EmptyColumn("region")
	wrapped := Wrap(base, "aggregation failed")

	if GetCode(wrapped) != CodeEmptyColumn {
		t.Errorf("Expected code %s, got %s", CodeEmptyColumn, GetCode(wrapped))
	}
	if wrapped.Error() != `aggregation failed: column "region" has no data` {
		t.Errorf("Unexpected message: %s", wrapped.Error())
	}
}

func TestWrapForeignError(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("disk full"), "writing %s", "a.png")
	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("Expected INTERNAL_ERROR, got %s", GetCode(wrapped))
	}
	if Wrap(nil, "noop") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"direct", MissingColumn("x"), CodeMissingColumn, true},
		{"through fmt wrap", fmt.Errorf("job: %w", IOError("open", fmt.Errorf("eperm"))), CodeIOError, true},
		{"through app wrap", Wrap(RenderError("save", nil), "column x"), CodeRenderError, true},
		{"different code", ConfigInvalid("bad"), CodeIOError, false},
		{"plain error", fmt.Errorf("plain"), CodeIOError, false},
		{"nil", nil, CodeIOError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasCode(tt.err, tt.code); got != tt.want {
				t.Errorf("HasCode(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}
