package stonapi

import "strings"

// The quote service rejects an Initial simulation for an already
// provisioned pair with one known payload shape, e.g.
//
//	1020: pool already exists for selected type of router: [EQabc, EQdef]
//
// The match below is deliberately narrow: both the numeric code marker
// and the router-conflict phrase must appear, so that unrelated
// failures (auth, malformed request, transport noise) never take the
// existing-pool fallback.
const (
	existingPoolCode   = "1020:"
	existingPoolPhrase = "already exists for selected type of router"
)

// IsExistingPoolError reports whether an API payload is the known
// "pool already exists" rejection.
func IsExistingPoolError(payload string) bool {
	return strings.Contains(payload, existingPoolCode) &&
		strings.Contains(payload, existingPoolPhrase)
}

// ExtractPoolAddress pulls the first pool address out of the bracketed
// list embedded in an existing-pool payload. The second return is
// false when no bracketed list is present or it is empty; callers must
// treat that as a hard failure of the fallback, not something to retry.
func ExtractPoolAddress(payload string) (string, bool) {
	open := strings.Index(payload, "[")
	if open < 0 {
		return "", false
	}
	length := strings.Index(payload[open:], "]")
	if length < 0 {
		return "", false
	}

	inner := payload[open+1 : open+length]
	first := strings.TrimSpace(strings.Split(inner, ",")[0])
	if first == "" {
		return "", false
	}
	return first, true
}
