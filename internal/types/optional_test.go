package types_test

import (
	"encoding/json"
	"testing"

	"github.com/trudransh/kpa-formsdb/internal/types"
)

type patchDoc struct {
	Email types.Optional[string] `json:"email"`
	Name  types.Optional[string] `json:"name"`
}

// TestOptionalAbsent verifies a field missing from the body stays unset
func TestOptionalAbsent(t *testing.T) {
	var doc patchDoc
	if err := json.Unmarshal([]byte(`{}`), &doc); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if doc.Email.Set {
		t.Error("Expected absent field to have Set=false")
	}
	if doc.Email.Ptr() != nil {
		t.Error("Expected absent field Ptr to be nil")
	}
}

// TestOptionalNull verifies an explicit null is distinguished from absence
func TestOptionalNull(t *testing.T) {
	var doc patchDoc
	if err := json.Unmarshal([]byte(`{"email": null}`), &doc); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if !doc.Email.Set {
		t.Error("Expected null field to have Set=true")
	}
	if doc.Email.Valid {
		t.Error("Expected null field to have Valid=false")
	}
	if doc.Email.Ptr() != nil {
		t.Error("Expected null field Ptr to be nil")
	}
}

// TestOptionalValue verifies a provided value round-trips
func TestOptionalValue(t *testing.T) {
	var doc patchDoc
	if err := json.Unmarshal([]byte(`{"email": "a@b.c", "name": "x"}`), &doc); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	if !doc.Email.Set || !doc.Email.Valid {
		t.Fatal("Expected value field to be Set and Valid")
	}
	if doc.Email.Value != "a@b.c" {
		t.Errorf("Expected value 'a@b.c', got %q", doc.Email.Value)
	}
	if ptr := doc.Email.Ptr(); ptr == nil || *ptr != "a@b.c" {
		t.Error("Expected Ptr to return the value")
	}
}

// TestOptionalInvalidType verifies wrong types are rejected
func TestOptionalInvalidType(t *testing.T) {
	var doc patchDoc
	if err := json.Unmarshal([]byte(`{"name": 42}`), &doc); err == nil {
		t.Error("Expected type mismatch to error")
	}
}
