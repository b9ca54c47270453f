package classify

import "regexp"

// Words that anchor a query to the present moment.
var temporalDeixis = map[string]bool{
	"today": true, "tonight": true, "tomorrow": true, "yesterday": true,
	"now": true, "currently": true, "latest": true, "current": true,
	"recent": true, "recently": true, "upcoming": true, "live": true,
}

// Domains whose answers go stale within hours or days.
var volatileDomains = map[string]bool{
	"weather": true, "forecast": true, "temperature": true,
	"news": true, "headlines": true,
	"stock": true, "stocks": true, "price": true, "prices": true,
	"score": true, "scores": true, "standings": true, "schedule": true,
	"traffic": true, "election": true, "exchange": true, "rate": true,
	"rates": true, "trending": true,
}

// Explicit year references suggest the answer depends on when it is asked.
var yearPattern = regexp.MustCompile(`\b20\d{2}\b`)

// isTimeSensitive reports whether a query's answer goes stale quickly.
// Only consulted for valid queries; invalid ones skip the check.
func isTimeSensitive(query string, tokens []string) bool {
	for _, t := range tokens {
		if temporalDeixis[t] || volatileDomains[t] {
			return true
		}
	}
	return yearPattern.MatchString(query)
}
