package postgres

import (
	"context"
	"database/sql"

	"pet-qr-tracker/internal/domain/contacts"
)

type ContactsRepo struct {
	db *sql.DB
}

func NewContactsRepo(db *sql.DB) *ContactsRepo {
	return &ContactsRepo{db: db}
}

func (r *ContactsRepo) Add(ctx context.Context, c contacts.Contact) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contacts (pet_id, label, name, phone, whatsapp, priority)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, c.PetID, c.Label, c.Name, c.Phone, c.WhatsApp, c.Priority).Scan(&id)
	return id, err
}

func (r *ContactsRepo) ListByPet(ctx context.Context, petID string) ([]contacts.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, label, name, phone, whatsapp, priority
		FROM contacts
		WHERE pet_id = $1
		ORDER BY priority ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]contacts.Contact, 0)
	for rows.Next() {
		var c contacts.Contact
		if err := rows.Scan(&c.ID, &c.PetID, &c.Label, &c.Name, &c.Phone, &c.WhatsApp, &c.Priority); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
