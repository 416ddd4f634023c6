package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Request shape limits. Registration items come straight from spreadsheet
// rows, so the caps are generous but bounded.
const (
	MaxItemsPerRequest = 500
	MaxIdentifierLen   = 255
	MaxTagsLen         = 1024
)

// identifierRe matches YouTube IDs and the characters a channel URL can
// carry (scheme, slashes, dots).
var identifierRe = regexp.MustCompile(`^[A-Za-z0-9_:/.\-]+$`)

// ValidateItems checks the items list of a registration request. Returns an
// empty string when valid, otherwise a client-facing message. Per-item
// resolution failures are the registration service's business; this only
// rejects shapes that can never be valid.
func ValidateItems(items [][]string) string {
	if len(items) == 0 {
		return "no items supplied"
	}
	if len(items) > MaxItemsPerRequest {
		return fmt.Sprintf("too many items: %d (limit %d)", len(items), MaxItemsPerRequest)
	}

	for i, item := range items {
		if len(item) == 0 {
			return fmt.Sprintf("item %d is empty", i)
		}
		id := strings.TrimSpace(item[0])
		if len(id) > MaxIdentifierLen {
			return fmt.Sprintf("item %d: identifier exceeds %d characters", i, MaxIdentifierLen)
		}
		if id != "" && !identifierRe.MatchString(id) {
			return fmt.Sprintf("item %d: identifier contains invalid characters", i)
		}
		if len(item) > 1 && len(item[1]) > MaxTagsLen {
			return fmt.Sprintf("item %d: tags exceed %d characters", i, MaxTagsLen)
		}
	}

	return ""
}
