package model

import (
	"net/url"
	"testing"
)

func TestParamsFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		rawQuery  string
		searchKey *string
		country   *string
		category  *string
	}{
		{"nothing given", "", nil, nil, nil},
		{"empty searchKey is present", "searchKey=", StringPtr(""), nil, nil},
		{"all given", "searchKey=go&country=us&category=technology", StringPtr("go"), StringPtr("us"), StringPtr("technology")},
		{"values kept verbatim", "searchKey=a+b%26c&country=US", StringPtr("a b&c"), StringPtr("US"), nil},
		{"first value wins", "country=us&country=gb", nil, StringPtr("us"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.rawQuery)
			if err != nil {
				t.Fatalf("Failed to parse query: %v", err)
			}
			p := ParamsFromQuery(q)

			checkParam(t, "searchKey", p.SearchKey, tt.searchKey)
			checkParam(t, "country", p.Country, tt.country)
			checkParam(t, "category", p.Category, tt.category)
		})
	}
}

func checkParam(t *testing.T, name string, got, want *string) {
	t.Helper()
	switch {
	case want == nil && got != nil:
		t.Errorf("Expected %s to be absent, got %q", name, *got)
	case want != nil && got == nil:
		t.Errorf("Expected %s to be %q, got absent", name, *want)
	case want != nil && *got != *want:
		t.Errorf("Expected %s to be %q, got %q", name, *want, *got)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		params   SearchParams
		expected string
	}{
		{"all absent", SearchParams{}, "q!&country!&category!"},
		{"empty searchKey", SearchParams{SearchKey: StringPtr("")}, "q=&country!&category!"},
		{"values escaped", SearchParams{SearchKey: StringPtr("a&b"), Country: StringPtr("us")}, "q=a%26b&country=us&category!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Canonical(); got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestCanonicalAbsentDiffersFromEmpty(t *testing.T) {
	absent := SearchParams{Country: StringPtr("us")}
	empty := SearchParams{SearchKey: StringPtr(""), Country: StringPtr("us")}

	if absent.Canonical() == empty.Canonical() {
		t.Errorf("Expected absent and empty searchKey to differ, both got '%s'", absent.Canonical())
	}
}

func TestSearchParamsString(t *testing.T) {
	p := SearchParams{SearchKey: StringPtr("go")}
	expected := `{searchKey: "go", country: undefined, category: undefined}`

	if p.String() != expected {
		t.Errorf("Expected '%s', got '%s'", expected, p.String())
	}
}
