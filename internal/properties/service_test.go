package properties

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestServiceCreateValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	if _, err := svc.Create(context.Background(), "user-1", CreateInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank name: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Maple Duplex",
		PurchasePrice: decimal.NewFromInt(-1),
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative price: got %v, want ErrInvalidInput", err)
	}

	p, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "  Maple Duplex  ",
		PurchasePrice: decimal.NewFromInt(250000),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Maple Duplex" {
		t.Fatalf("name = %q", p.Name)
	}
	if p.Version != 1 {
		t.Fatalf("version = %d", p.Version)
	}
	if p.Documents == nil {
		t.Fatal("documents should be an empty slice")
	}
}

func TestServiceUpdatePatchesOnlyProvidedFields(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo}

	created, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Maple Duplex",
		Address:       Address{City: "Austin"},
		PurchasePrice: decimal.NewFromInt(250000),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	value := decimal.NewFromInt(310000)
	updated, err := svc.Update(context.Background(), "user-1", created.ID, UpdateInput{
		CurrentValue: &value,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Maple Duplex" || updated.Address.City != "Austin" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.CurrentValue == nil || !updated.CurrentValue.Equal(value) {
		t.Fatalf("current value = %v", updated.CurrentValue)
	}
	if updated.Version != created.Version+1 {
		t.Fatalf("version = %d", updated.Version)
	}
}

// conflictOnceRepo fails the first Save with a version conflict to
// exercise the retry loop.
type conflictOnceRepo struct {
	Repo
	conflicted bool
}

func (r *conflictOnceRepo) Save(ctx context.Context, p Property) (Property, error) {
	if !r.conflicted {
		r.conflicted = true
		return Property{}, ErrVersionConflict
	}
	return r.Repo.Save(ctx, p)
}

func TestServiceUpdateRetriesOnVersionConflict(t *testing.T) {
	mem := NewMemoryRepo()
	svc := &Service{Repo: &conflictOnceRepo{Repo: mem}}

	created, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:          "Maple Duplex",
		PurchasePrice: decimal.NewFromInt(250000),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "Oak Duplex"
	updated, err := svc.Update(context.Background(), "user-1", created.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update after conflict: %v", err)
	}
	if updated.Name != "Oak Duplex" {
		t.Fatalf("name = %q", updated.Name)
	}
}

func TestServiceUpdateMissingProperty(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	name := "anything"
	if _, err := svc.Update(context.Background(), "user-1", "prop-ghost", UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: got %v, want ErrNotFound", err)
	}
}
