// internal/app/system/normalize/normalize.go
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Name trims and collapses internal whitespace while preserving case.
// "  First   Love  Campus " becomes "First Love Campus".
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Key derives the case-insensitive lookup key for a display name:
// whitespace-collapsed, then case-folded. This is the value stored in the
// *_ci fields and the only form names are ever compared in.
func Key(s string) string {
	return text.Fold(Name(s))
}

// Email lowercases and trims an email address. Empty or all-whitespace
// input folds to "".
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Identifier normalizes a login identifier the same way Key normalizes a
// name. Identifiers may be emails or display names; folding covers both
// since Fold lowercases ASCII like ToLower does.
func Identifier(s string) string {
	return Key(s)
}
