package urlstate

import (
	"fmt"
	"net/url"
	"strings"
)

// Address is the current location of a browsing session. It has exactly one
// entry: Replace and Clear overwrite it rather than adding history.
type Address struct {
	base  url.URL
	query url.Values
}

// ParseAddress parses rawURL, which may be absolute ("https://host/path?q=x"),
// a path ("/path?q=x") or just a query string ("?q=x" or "q=x").
func ParseAddress(rawURL string) (*Address, error) {
	var base url.URL
	rawQuery := rawURL

	if IsLocation(rawURL) {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("urlstate: parse address: %w", err)
		}
		rawQuery = u.RawQuery
		u.RawQuery = ""
		u.ForceQuery = false
		u.Fragment = ""
		base = *u
	}

	// Malformed pairs are skipped; ParseQuery keeps the rest.
	query, _ := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	return &Address{base: base, query: query}, nil
}

// IsLocation reports whether raw names a path or an absolute URL rather than
// a bare query string. Only the text before the first '?', '=' or '&' is
// inspected, so a value such as "q=http://x" stays a query string.
func IsLocation(raw string) bool {
	head := raw
	if i := strings.IndexAny(raw, "?=&"); i >= 0 {
		head = raw[:i]
	}
	return strings.HasPrefix(head, "/") || strings.Contains(head, "://")
}

// Params returns a copy of the current parameters.
func (a *Address) Params() url.Values {
	out := make(url.Values, len(a.query))
	for k, v := range a.query {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Replace overwrites the current parameters.
func (a *Address) Replace(values url.Values) {
	a.query = values
}

// Clear drops every parameter.
func (a *Address) Clear() {
	a.query = url.Values{}
}

// HasActiveParams reports whether the address carries any parameter.
func (a *Address) HasActiveParams() bool {
	return len(a.query) > 0
}

// RawQuery is the encoded query string without the leading "?".
func (a *Address) RawQuery() string {
	return a.query.Encode()
}

// String is the path plus query, the part a browser shows after the host.
func (a *Address) String() string {
	path := a.base.Path
	if q := a.RawQuery(); q != "" {
		return path + "?" + q
	}
	return path
}

// ShareURL is the absolute address to hand to someone else.
func (a *Address) ShareURL() string {
	u := a.base
	u.RawQuery = a.RawQuery()
	return u.String()
}
