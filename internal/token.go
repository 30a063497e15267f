package internal

import "strings"

// TokenSeparator joins the id and secret halves of a session token.
const TokenSeparator = "."

// FormatToken builds the bearer token handed to clients.
func FormatToken(id, secret string) string {
	return id + TokenSeparator + secret
}

// ParseToken splits token into its id and secret. ok is false unless the
// token has exactly two segments. Empty segments are not rejected here;
// they simply never match a stored session.
func ParseToken(token string) (id, secret string, ok bool) {
	parts := strings.Split(token, TokenSeparator)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
