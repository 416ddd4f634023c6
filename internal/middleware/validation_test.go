package middleware

import (
	"strings"
	"testing"
)

func TestValidateItems_Valid(t *testing.T) {
	items := [][]string{
		{"UC123abc", "miko, vtuber"},
		{"https://www.youtube.com/channel/UC456", "gura"},
		{"dQw4w9WgXcQ"},
	}
	if msg := ValidateItems(items); msg != "" {
		t.Errorf("ValidateItems = %q, want no error", msg)
	}
}

func TestValidateItems_Empty(t *testing.T) {
	if msg := ValidateItems(nil); msg == "" {
		t.Error("ValidateItems accepted nil items")
	}
	if msg := ValidateItems([][]string{}); msg == "" {
		t.Error("ValidateItems accepted empty items")
	}
}

func TestValidateItems_TooMany(t *testing.T) {
	items := make([][]string, MaxItemsPerRequest+1)
	for i := range items {
		items[i] = []string{"UC123"}
	}
	if msg := ValidateItems(items); msg == "" {
		t.Error("ValidateItems accepted oversized batch")
	}
}

func TestValidateItems_EmptyItem(t *testing.T) {
	if msg := ValidateItems([][]string{{}}); msg == "" {
		t.Error("ValidateItems accepted an empty item")
	}
}

func TestValidateItems_IdentifierTooLong(t *testing.T) {
	long := strings.Repeat("a", MaxIdentifierLen+1)
	if msg := ValidateItems([][]string{{long}}); msg == "" {
		t.Error("ValidateItems accepted oversized identifier")
	}
}

func TestValidateItems_InvalidCharacters(t *testing.T) {
	if msg := ValidateItems([][]string{{"UC123; DROP TABLE"}}); msg == "" {
		t.Error("ValidateItems accepted identifier with invalid characters")
	}
}

func TestValidateItems_TagsTooLong(t *testing.T) {
	tags := strings.Repeat("x", MaxTagsLen+1)
	if msg := ValidateItems([][]string{{"UC123", tags}}); msg == "" {
		t.Error("ValidateItems accepted oversized tags")
	}
}

func TestValidateItems_BlankIdentifierPassesShapeCheck(t *testing.T) {
	// A blank ID is a per-item registration failure, not a request-level
	// validation error.
	if msg := ValidateItems([][]string{{"   "}}); msg != "" {
		t.Errorf("ValidateItems = %q, want shape-level pass for blank identifier", msg)
	}
}
