package catalog

import "testing"

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Failed to parse default catalog: %v", err)
	}

	if len(c.Categories) != 7 {
		t.Errorf("Expected 7 categories, got %d", len(c.Categories))
	}

	found := false
	for _, country := range c.Countries {
		if country.Code == "us" {
			found = true
			if country.Name != "United States" {
				t.Errorf("Expected 'United States', got '%s'", country.Name)
			}
		}
	}
	if !found {
		t.Error("Expected catalog to contain 'us'")
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	tests := []string{
		"",
		"categories: [general]",
		"countries: [{code: us, name: United States}]",
		"categories: [",
	}

	for _, input := range tests {
		if _, err := Parse([]byte(input)); err == nil {
			t.Errorf("Expected error for input %q", input)
		}
	}
}
