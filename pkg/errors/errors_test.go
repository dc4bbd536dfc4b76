package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestWrapItemAndConfigErrors(t *testing.T) {
	item := Invalid(3, "weight", "must be non-negative, got %v", -2.0)
	cfg := InvalidConfig("max_radius", "must exceed min_radius")

	tests := []struct {
		name string
		err  error
		code Code
		msg  string
	}{
		{
			name: "item error wrapped by stage",
			err:  fmt.Errorf("layout: %w", item),
			code: ErrCodeInvalidItem,
			msg:  "item 3: weight: must be non-negative, got -2",
		},
		{
			name: "config error wrapped by stage",
			err:  fmt.Errorf("configure engine: %w", cfg),
			code: ErrCodeInvalidConfig,
			msg:  "config max_radius: must exceed min_radius",
		},
		{
			name: "item error as cause of a coded error",
			err:  Wrap(ErrCodeInvalidItem, item, "records.csv"),
			code: ErrCodeInvalidItem,
			msg:  "records.csv",
		},
		{
			name: "config error under a different code",
			err:  Wrap(ErrCodeInvalidInput, cfg, "bigbang.toml"),
			code: ErrCodeInvalidInput,
			msg:  "bigbang.toml",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %s, want %s", got, tt.code)
			}
			if !Is(tt.err, tt.code) {
				t.Errorf("Is(%s) = false", tt.code)
			}
			if got := UserMessage(tt.err); got != tt.msg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.msg)
			}
		})
	}
}

func TestWrappedValidationErrorKeepsIndex(t *testing.T) {
	err := Wrap(ErrCodeInvalidItem, Invalid(7, "id", "duplicate id %q", "bubble-2"), "run")

	verr, ok := AsValidation(err)
	if !ok {
		t.Fatal("AsValidation() found no ValidationError")
	}
	if verr.Index != 7 || verr.Field != "id" {
		t.Errorf("got index=%d field=%s, want 7/id", verr.Index, verr.Field)
	}
	want := `INVALID_ITEM: run: INVALID_ITEM: item 7: id: duplicate id "bubble-2"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestLayoutNotFound(t *testing.T) {
	err := fmt.Errorf("GET /v1/layouts/abc: %w", New(ErrCodeLayoutNotFound, "layout %q not found", "abc"))

	if !Is(err, ErrCodeLayoutNotFound) {
		t.Errorf("Is(LAYOUT_NOT_FOUND) = false for %v", err)
	}
	if Is(err, ErrCodeNotFound) || Is(err, ErrCodeFileNotFound) {
		t.Error("layout lookup error matched a different not-found code")
	}
	if got := UserMessage(err); got != `layout "abc" not found` {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestFileNotFoundKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, io.ErrUnexpectedEOF, "open %s", "words.csv")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("cause not reachable through errors.Is")
	}
	if err.Error() != "FILE_NOT_FOUND: open words.csv: unexpected EOF" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestUncodedErrors(t *testing.T) {
	plain := errors.New("disk full")
	if GetCode(plain) != "" {
		t.Errorf("GetCode(plain) = %q", GetCode(plain))
	}
	if Is(plain, "") {
		t.Error("empty code matched an uncoded error")
	}
	if UserMessage(plain) != "disk full" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) returned a code")
	}
}
