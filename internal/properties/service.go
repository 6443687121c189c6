package properties

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Retries absorb version conflicts from concurrent document processing.
const maxSaveAttempts = 5

// Service contains business logic for properties.
type Service struct {
	Repo Repo
}

// CreateInput carries the fields a caller supplies when creating a property.
type CreateInput struct {
	Name          string
	Address       Address
	PurchasePrice decimal.Decimal
	CurrentValue  *decimal.Decimal
}

// UpdateInput is a patch: nil fields are left untouched.
type UpdateInput struct {
	Name          *string
	Address       *Address
	PurchasePrice *decimal.Decimal
	CurrentValue  *decimal.Decimal
}

// Create validates and stores a new property for the owner.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Property, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return Property{}, ErrInvalidInput
	}
	if in.PurchasePrice.IsNegative() {
		return Property{}, ErrInvalidInput
	}

	now := time.Now().UTC()
	p := Property{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Name:          in.Name,
		Address:       in.Address,
		PurchasePrice: in.PurchasePrice,
		CurrentValue:  in.CurrentValue,
		Documents:     []Document{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return Property{}, err
	}
	return p, nil
}

// Get returns a single property scoped to its owner.
func (s *Service) Get(ctx context.Context, ownerID, propertyID string) (Property, error) {
	return s.Repo.GetByID(ctx, ownerID, propertyID)
}

// List returns the owner's properties, newest first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Property, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// Update applies a patch to a property, retrying on version conflicts so
// that a concurrent document upload does not fail the edit.
func (s *Service) Update(ctx context.Context, ownerID, propertyID string, in UpdateInput) (Property, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return Property{}, ErrInvalidInput
		}
		in.Name = &trimmed
	}
	if in.PurchasePrice != nil && in.PurchasePrice.IsNegative() {
		return Property{}, ErrInvalidInput
	}

	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		p, err := s.Repo.GetByID(ctx, ownerID, propertyID)
		if err != nil {
			return Property{}, err
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Address != nil {
			p.Address = *in.Address
		}
		if in.PurchasePrice != nil {
			p.PurchasePrice = *in.PurchasePrice
		}
		if in.CurrentValue != nil {
			p.CurrentValue = in.CurrentValue
		}
		saved, err := s.Repo.Save(ctx, p)
		if err == nil {
			return saved, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return Property{}, err
		}
		lastErr = err
	}
	return Property{}, lastErr
}

// Delete removes a property and its recorded documents.
func (s *Service) Delete(ctx context.Context, ownerID, propertyID string) error {
	return s.Repo.Delete(ctx, ownerID, propertyID)
}
