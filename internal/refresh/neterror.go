package refresh

import "strings"

// networkErrorTokens are substrings that mark a failure message as a
// probable connectivity problem rather than a provider or parse error.
// The match is heuristic; it only selects the "offline" wording shown
// alongside stale data.
var networkErrorTokens = []string{
	"timed out",
	"timeout",
	"deadline exceeded",
	"dns",
	"network",
	"connection",
	"connect",
	"host",
	"resolve",
	"name or service not known",
	"temporary failure",
	"connection reset",
	"connection refused",
	"tls",
	"certificate",
	"no route",
	"unreachable",
}

// isProbableNetworkError reports whether the failure message looks like
// a transport problem.
func isProbableNetworkError(message string) bool {
	lower := strings.ToLower(message)
	for _, token := range networkErrorTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}
