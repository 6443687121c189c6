package properties

import "context"

// Repo defines persistence operations for properties. Save is a
// compare-and-swap on the stored version: it fails with ErrVersionConflict
// when the property was modified since the caller loaded it, which is what
// serializes concurrent document mutations against the same property.
type Repo interface {
	Create(ctx context.Context, p Property) error
	GetByID(ctx context.Context, ownerID, propertyID string) (Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Property, error)
	Save(ctx context.Context, p Property) (Property, error)
	Delete(ctx context.Context, ownerID, propertyID string) error
}
