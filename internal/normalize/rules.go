package normalize

import (
	"strings"

	"github.com/handiism/musiclib/internal/model"
)

// NeedsRepair reports whether name contains an illegal character or ends
// with a period.
func NeedsRepair(name string) bool {
	return strings.ContainsFunc(name, model.IsIllegalChar) || strings.HasSuffix(name, ".")
}

// Repair returns name with illegal characters replaced or removed and
// trailing periods stripped. Repair is idempotent.
//
// Examples:
//
//	Repair("Live: Disc 1")    // "Live - Disc 1"
//	Repair("What's Going On?") // "What's Going On"
//	Repair(`The "Best" Of`)    // "The 'Best' Of"
//	Repair("Et cetera...")     // "Et cetera"
func Repair(name string) string {
	runes := []rune(name)

	var sb strings.Builder
	sb.Grow(len(name) + 2)
	for i, r := range runes {
		switch {
		case r == ':':
			sb.WriteString(colonReplacement(runes, i))
		case r == '"':
			sb.WriteRune('\'')
		case model.IsIllegalChar(r):
			// removed
		default:
			sb.WriteRune(r)
		}
	}

	return trimTrailingPeriods(sb.String())
}

// colonReplacement picks the dash spacing for the colon at runes[i], looking
// at its neighbours in the original name.
func colonReplacement(runes []rune, i int) string {
	if i == 0 || i == len(runes)-1 {
		return "-"
	}

	spaceBefore := runes[i-1] == ' '
	spaceAfter := runes[i+1] == ' '
	switch {
	case spaceBefore && !spaceAfter:
		return "- "
	case !spaceBefore && spaceAfter:
		return " -"
	default:
		return "-"
	}
}

// trimTrailingPeriods strips a trailing ellipsis, or failing that a single
// trailing period, until the name no longer ends with a period.
func trimTrailingPeriods(name string) string {
	for strings.HasSuffix(name, ".") {
		if strings.HasSuffix(name, "...") {
			name = strings.TrimSuffix(name, "...")
		} else {
			name = strings.TrimSuffix(name, ".")
		}
	}
	return name
}
