package services_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/trudransh/kpa-formsdb/internal/services"
)

func strPtr(s string) *string { return &s }

// TestFormSubmissionCreateAndGet verifies basic persistence
func TestFormSubmissionCreateAndGet(t *testing.T) {
	db := setupTestDB(t)

	form, err := services.CreateFormSubmission(db, services.FormSubmissionInput{
		Name:        "Ravi Kumar",
		PhoneNumber: "9876543210",
		Email:       strPtr("ravi@example.com"),
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create form submission: %v", err)
	}
	if form.ID == 0 {
		t.Fatal("Expected assigned id")
	}
	if form.UserID != nil {
		t.Error("Expected anonymous submission to have nil user")
	}

	got, err := services.GetFormSubmission(db, form.ID)
	if err != nil {
		t.Fatalf("Failed to get form submission: %v", err)
	}
	if got.Name != "Ravi Kumar" || got.PhoneNumber != "9876543210" {
		t.Errorf("Stored fields mismatch: %+v", got)
	}
	if got.Email == nil || *got.Email != "ravi@example.com" {
		t.Error("Expected stored email")
	}
	if got.Address != nil {
		t.Error("Expected absent address to stay null")
	}
}

// TestFormSubmissionListPagination verifies total/skip/limit semantics
func TestFormSubmissionListPagination(t *testing.T) {
	db := setupTestDB(t)

	var ids []uint64
	for _, name := range []string{"first", "second", "third"} {
		form, err := services.CreateFormSubmission(db, services.FormSubmissionInput{
			Name:        name,
			PhoneNumber: "9876543210",
		}, nil)
		if err != nil {
			t.Fatalf("Failed to create form submission: %v", err)
		}
		ids = append(ids, form.ID)
	}

	list, err := services.ListFormSubmissions(db, 1, 1)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if list.Total != 3 {
		t.Errorf("Expected total 3 regardless of pagination, got %d", list.Total)
	}
	if len(list.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(list.Items))
	}
	if list.Items[0].ID != ids[1] {
		t.Errorf("Expected second-created record, got id %d", list.Items[0].ID)
	}
	if list.Skip != 1 || list.Limit != 1 {
		t.Errorf("Expected skip/limit echoed back, got %d/%d", list.Skip, list.Limit)
	}

	// Skip past the end returns an empty page with unchanged total
	list, err = services.ListFormSubmissions(db, 10, 5)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if list.Total != 3 || len(list.Items) != 0 {
		t.Errorf("Expected empty page with total 3, got total=%d items=%d", list.Total, len(list.Items))
	}
}

// TestFormSubmissionPatch verifies partial update semantics: absent fields
// are untouched, provided fields are replaced, explicit nulls clear
func TestFormSubmissionPatch(t *testing.T) {
	db := setupTestDB(t)

	form, err := services.CreateFormSubmission(db, services.FormSubmissionInput{
		Name:        "original",
		PhoneNumber: "9876543210",
		Email:       strPtr("keep@example.com"),
		Address:     strPtr("old address"),
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create form submission: %v", err)
	}

	var patch services.FormSubmissionPatch
	if err := json.Unmarshal([]byte(`{"name": "renamed", "address": null}`), &patch); err != nil {
		t.Fatalf("Failed to unmarshal patch: %v", err)
	}

	updated, err := services.UpdateFormSubmission(db, form.ID, patch)
	if err != nil {
		t.Fatalf("Failed to update: %v", err)
	}

	if updated.Name != "renamed" {
		t.Errorf("Expected name replaced, got %q", updated.Name)
	}
	if updated.PhoneNumber != "9876543210" {
		t.Errorf("Expected absent field untouched, got %q", updated.PhoneNumber)
	}
	if updated.Email == nil || *updated.Email != "keep@example.com" {
		t.Error("Expected absent email untouched")
	}
	if updated.Address != nil {
		t.Error("Expected explicit null to clear address")
	}
}

// TestFormSubmissionUpdateNotFound verifies unknown ids have no side effects
func TestFormSubmissionUpdateNotFound(t *testing.T) {
	db := setupTestDB(t)

	var patch services.FormSubmissionPatch
	if err := json.Unmarshal([]byte(`{"name": "x"}`), &patch); err != nil {
		t.Fatalf("Failed to unmarshal patch: %v", err)
	}

	if _, err := services.UpdateFormSubmission(db, 12345, patch); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

// TestFormSubmissionDelete verifies deletion is terminal and reported as
// not-found on repeat
func TestFormSubmissionDelete(t *testing.T) {
	db := setupTestDB(t)

	form, err := services.CreateFormSubmission(db, services.FormSubmissionInput{
		Name:        "doomed",
		PhoneNumber: "9876543210",
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create form submission: %v", err)
	}

	deleted, err := services.DeleteFormSubmission(db, form.ID)
	if err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if deleted.ID != form.ID {
		t.Errorf("Expected deleted record echoed back")
	}

	if _, err := services.GetFormSubmission(db, form.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected deleted record to be absent, got %v", err)
	}
	if _, err := services.DeleteFormSubmission(db, form.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("Expected second delete to report not-found, got %v", err)
	}

	list, err := services.ListFormSubmissions(db, 0, 10)
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("Expected deleted record absent from list, total=%d", list.Total)
	}
}
