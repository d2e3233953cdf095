package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewMaterial(t *testing.T) {
	owner := uuid.New()

	m, err := NewMaterial(owner, "Plan de clase", MaterialTypePlan, "contenido")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if m.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if m.OwnerID != owner {
		t.Errorf("Expected owner %s, got %s", owner, m.OwnerID)
	}
	if m.CreatedAt.IsZero() || m.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
	if !m.CreatedAt.Equal(m.UpdatedAt) {
		t.Error("Expected CreatedAt and UpdatedAt to match on creation")
	}
}

func TestMaterialValidate(t *testing.T) {
	valid := Material{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Title:        "Plan",
		MaterialType: MaterialTypePlan,
		Body:         "contenido",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	tests := []struct {
		name    string
		modify  func(*Material)
		wantErr error
	}{
		{"empty ID", func(m *Material) { m.ID = uuid.Nil }, ErrEmptyMaterialID},
		{"empty owner", func(m *Material) { m.OwnerID = uuid.Nil }, ErrEmptyMaterialOwnerID},
		{"empty title", func(m *Material) { m.Title = "" }, ErrEmptyMaterialTitle},
		{"bad type", func(m *Material) { m.MaterialType = "poster" }, ErrInvalidMaterialType},
		{"empty body", func(m *Material) { m.Body = "" }, ErrEmptyMaterialBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.modify(&m)
			if err := m.Validate(); err != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUpdateBody(t *testing.T) {
	m, err := NewMaterial(uuid.New(), "Plan", MaterialTypePlan, "original")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	before := m.UpdatedAt

	if err := m.UpdateBody("edited"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.Body != "edited" {
		t.Errorf("Expected body %q, got %q", "edited", m.Body)
	}
	if m.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to advance")
	}

	if err := m.UpdateBody(""); err != ErrEmptyMaterialBody {
		t.Errorf("Expected error %v, got %v", ErrEmptyMaterialBody, err)
	}
}

func TestCompanionKindMaterialType(t *testing.T) {
	if got := CompanionSupportMaterial.MaterialType(); got != MaterialTypeSupport {
		t.Errorf("Expected %v, got %v", MaterialTypeSupport, got)
	}
	if got := CompanionRubric.MaterialType(); got != MaterialTypeRubric {
		t.Errorf("Expected %v, got %v", MaterialTypeRubric, got)
	}
}
