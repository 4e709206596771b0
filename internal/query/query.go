// Package query extracts parameters from a page's query string.
package query

import (
	"encoding/hex"
	"net/url"
	"strings"
)

// Params holds the values of each key in the order they appeared.
type Params map[string][]string

// Parse reads the part of search after the first '?'. Repeated keys keep
// every value. Parse accepts any string; malformed pairs and bad escapes
// degrade instead of failing.
func Parse(search string) Params {
	params := Params{}

	idx := strings.IndexByte(search, '?')
	if idx < 0 {
		return params
	}
	rest := search[idx+1:]
	if hash := strings.IndexByte(rest, '#'); hash >= 0 {
		rest = rest[:hash]
	}

	for _, pair := range strings.Split(rest, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		params[name] = append(params[name], unescape(value))
	}
	return params
}

// unescape decodes each valid %XX sequence and keeps the rest as written.
// '+' is a literal plus.
func unescape(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+3 <= len(s) {
			if v, err := hex.DecodeString(s[i+1 : i+3]); err == nil {
				b = append(b, v[0])
				i += 2
				continue
			}
		}
		b = append(b, s[i])
	}
	return string(b)
}

// Escape encodes a value so that Parse decodes it back unchanged.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Get returns the first value for key, or "".
func (p Params) Get(key string) string {
	if values := p[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// Values returns every value for key in order.
func (p Params) Values(key string) []string {
	return p[key]
}

// ID returns the page's id parameter, or "" when there is none.
func ID(search string) string {
	return Parse(search).Get("id")
}

// IDs returns every id parameter of the page in order.
func IDs(search string) []string {
	return Parse(search).Values("id")
}
