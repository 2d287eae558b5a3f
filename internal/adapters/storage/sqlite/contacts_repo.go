package sqlite

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
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (pet_id, label, name, phone, whatsapp, priority)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.PetID, c.Label, c.Name, c.Phone, c.WhatsApp, c.Priority)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ContactsRepo) ListByPet(ctx context.Context, petID string) ([]contacts.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, label, name, phone, whatsapp, priority
		FROM contacts
		WHERE pet_id = ?
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
