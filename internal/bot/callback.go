package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback wire format: "dl|<token>|<index-hex>"
const (
	CallbackAction    = "dl"
	CallbackPrefix    = CallbackAction + "|"
	callbackSeparator = "|"
)

// FormatCallback encodes a selection for a button payload. The index is
// lowercase hex, which together with the short token keeps the payload well
// inside Telegram's 64-byte callback-data limit.
func FormatCallback(token string, index int) string {
	return fmt.Sprintf("%s%s%s%x", CallbackPrefix, token, callbackSeparator, index)
}

// ParseCallback decodes a selection payload. ok is false for anything that
// is not a well-formed selection.
func ParseCallback(data string) (token string, index int, ok bool) {
	parts := strings.SplitN(data, callbackSeparator, 3)
	if len(parts) != 3 || parts[0] != CallbackAction || parts[1] == "" {
		return "", 0, false
	}

	idx, err := strconv.ParseInt(parts[2], 16, 32)
	if err != nil || idx < 0 {
		return "", 0, false
	}
	return parts[1], int(idx), true
}
