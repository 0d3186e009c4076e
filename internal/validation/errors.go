package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-errors"
)

const ErrCodeUnknownField = "UNKNOWN_FIELD"

// ErrUnknownField marks a form that was handed, or asked about, a field it does
// not own. It signals a mis-wired form rather than bad user input.
var ErrUnknownField = errors.New("unknown field", errors.CategoryBadInput).
	WithTextCode(ErrCodeUnknownField)

func unknownFieldError(form string, names []string) error {
	err := ErrUnknownField.Clone()
	err.Message = fmt.Sprintf("form %q has no field %s", form, strings.Join(quote(names), ", "))
	return err.WithMetadata(map[string]any{
		"form":   form,
		"fields": names,
	})
}

// ErrorCode returns the text code carried by err, or "" when err is not a
// go-errors value.
func ErrorCode(err error) string {
	var ge *errors.Error
	if stderrors.As(err, &ge) {
		return ge.TextCode
	}
	return ""
}

// HasCode reports whether err, or any error it wraps, carries the given text code.
func HasCode(err error, code string) bool {
	for err != nil {
		var ge *errors.Error
		if !stderrors.As(err, &ge) {
			return false
		}
		if ge.TextCode == code {
			return true
		}
		err = stderrors.Unwrap(ge)
	}
	return false
}

func quote(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}
