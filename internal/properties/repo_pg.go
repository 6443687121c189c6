package properties

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PGRepo implements Repo using Postgres. The document collection is stored
// as a JSONB column on the property row, so a Save lands the documents and
// the aggregate pair in one atomic write.
type PGRepo struct {
	DB *sql.DB
}

const propertyColumns = `id, owner_id, name, address, purchase_price, current_value, rental_income, expenses, documents, version, created_at, updated_at`

// Create inserts a new property.
func (r *PGRepo) Create(ctx context.Context, p Property) error {
	const query = `
INSERT INTO properties (
    id,
    owner_id,
    name,
    address,
    purchase_price,
    current_value,
    rental_income,
    expenses,
    documents,
    version,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	address, err := json.Marshal(p.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	docs, err := marshalDocuments(p.Documents)
	if err != nil {
		return err
	}

	version := p.Version
	if version == 0 {
		version = 1
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		p.ID,
		p.OwnerID,
		p.Name,
		address,
		p.PurchasePrice,
		currentValueArg(p.CurrentValue),
		p.RentalIncome,
		p.Expenses,
		docs,
		version,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// GetByID returns a property scoped to its owner.
func (r *PGRepo) GetByID(ctx context.Context, ownerID, propertyID string) (Property, error) {
	query := `
SELECT ` + propertyColumns + `
FROM properties
WHERE id = $1 AND owner_id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, propertyID, ownerID)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Property{}, ErrNotFound
		}
		return Property{}, err
	}
	return p, nil
}

// ListByOwner lists an owner's properties, newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string) ([]Property, error) {
	query := `
SELECT ` + propertyColumns + `
FROM properties
WHERE owner_id = $1
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Save updates a property iff the caller holds the current version,
// bumping the version in the same statement.
func (r *PGRepo) Save(ctx context.Context, p Property) (Property, error) {
	const query = `
UPDATE properties
SET name = $1,
    address = $2,
    purchase_price = $3,
    current_value = $4,
    rental_income = $5,
    expenses = $6,
    documents = $7,
    version = version + 1,
    updated_at = $8
WHERE id = $9 AND owner_id = $10 AND version = $11`

	address, err := json.Marshal(p.Address)
	if err != nil {
		return Property{}, fmt.Errorf("marshal address: %w", err)
	}
	docs, err := marshalDocuments(p.Documents)
	if err != nil {
		return Property{}, err
	}

	now := time.Now().UTC()
	res, err := r.DB.ExecContext(
		ctx,
		query,
		p.Name,
		address,
		p.PurchasePrice,
		currentValueArg(p.CurrentValue),
		p.RentalIncome,
		p.Expenses,
		docs,
		now,
		p.ID,
		p.OwnerID,
		p.Version,
	)
	if err != nil {
		return Property{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Property{}, err
	}
	if affected == 0 {
		// Distinguish a stale version from a missing property.
		var exists bool
		checkErr := r.DB.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1 AND owner_id = $2)`,
			p.ID, p.OwnerID,
		).Scan(&exists)
		if checkErr != nil {
			return Property{}, checkErr
		}
		if !exists {
			return Property{}, ErrNotFound
		}
		return Property{}, ErrVersionConflict
	}

	p.Version++
	p.UpdatedAt = now
	return p, nil
}

// Delete removes a property.
func (r *PGRepo) Delete(ctx context.Context, ownerID, propertyID string) error {
	const query = `DELETE FROM properties WHERE id = $1 AND owner_id = $2`
	res, err := r.DB.ExecContext(ctx, query, propertyID, ownerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (Property, error) {
	var (
		p            Property
		address      []byte
		docs         []byte
		currentValue decimal.NullDecimal
	)
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&address,
		&p.PurchasePrice,
		&currentValue,
		&p.RentalIncome,
		&p.Expenses,
		&docs,
		&p.Version,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return Property{}, err
	}
	if len(address) > 0 {
		if err := json.Unmarshal(address, &p.Address); err != nil {
			return Property{}, fmt.Errorf("unmarshal address: %w", err)
		}
	}
	if len(docs) > 0 {
		if err := json.Unmarshal(docs, &p.Documents); err != nil {
			return Property{}, fmt.Errorf("unmarshal documents: %w", err)
		}
	}
	if currentValue.Valid {
		v := currentValue.Decimal
		p.CurrentValue = &v
	}
	return p, nil
}

func marshalDocuments(docs []Document) ([]byte, error) {
	if docs == nil {
		docs = []Document{}
	}
	out, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}
	return out, nil
}

func currentValueArg(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
