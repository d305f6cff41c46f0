package model

import (
	"fmt"
	"net/url"
	"strings"
)

// SearchParams holds the user supplied search parameters.
// A nil field was absent from the query string.
type SearchParams struct {
	SearchKey *string `json:"searchKey,omitempty"`
	Country   *string `json:"country,omitempty"`
	Category  *string `json:"category,omitempty"`
}

// ParamsFromQuery extracts searchKey, country and category verbatim.
func ParamsFromQuery(q url.Values) SearchParams {
	return SearchParams{
		SearchKey: optional(q, "searchKey"),
		Country:   optional(q, "country"),
		Category:  optional(q, "category"),
	}
}

func optional(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

// Canonical returns a stable representation of the parameters. Absent and
// empty values render differently.
func (p SearchParams) Canonical() string {
	var b strings.Builder
	writeCanonical(&b, "q", p.SearchKey)
	b.WriteByte('&')
	writeCanonical(&b, "country", p.Country)
	b.WriteByte('&')
	writeCanonical(&b, "category", p.Category)
	return b.String()
}

func writeCanonical(b *strings.Builder, key string, v *string) {
	if v == nil {
		b.WriteString(key + "!")
		return
	}
	b.WriteString(key + "=" + url.QueryEscape(*v))
}

func (p SearchParams) String() string {
	return fmt.Sprintf("{searchKey: %s, country: %s, category: %s}",
		display(p.SearchKey), display(p.Country), display(p.Category))
}

func display(v *string) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%q", *v)
}

// StringPtr is a convenience for building params in code.
func StringPtr(s string) *string {
	return &s
}
