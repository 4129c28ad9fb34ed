package orders

import "strings"

// FilterProviders returns the providers whose business name, phone, or
// address contains the query, case-insensitively. The result is always a
// fresh slice, so callers may reorder or truncate it without touching the
// directory it was filtered from.
func FilterProviders(providers []Provider, query string) []Provider {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Provider(nil), providers...)
	}
	var out []Provider
	for _, p := range providers {
		if strings.Contains(strings.ToLower(p.BusinessName), q) ||
			strings.Contains(strings.ToLower(p.Phone), q) ||
			strings.Contains(strings.ToLower(p.Address), q) {
			out = append(out, p)
		}
	}
	return out
}
