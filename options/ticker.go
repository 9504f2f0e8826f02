package options

import (
	"regexp"
	"strings"
)

var (
	futuresRoot = regexp.MustCompile(`^[A-Z]{1,3}`)
	nonLetter   = regexp.MustCompile(`[^A-Z]`)
)

// NormalizeTicker reduces a broker symbol to its base root. Futures
// symbols carry a leading slash and month/year codes (/MESH5 -> MES),
// option symbols may carry a leading dot.
func NormalizeTicker(ticker string) string {
	ticker = strings.ReplaceAll(ticker, "/", "")
	ticker = strings.TrimPrefix(ticker, ".")
	ticker = strings.ToUpper(ticker)

	// A digit marks a futures contract code: root is at most 3 letters.
	if strings.ContainsAny(ticker, "0123456789") {
		if root := futuresRoot.FindString(ticker); root != "" {
			return root
		}
	}
	return nonLetter.ReplaceAllString(ticker, "")
}
