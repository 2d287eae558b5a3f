package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-qr-tracker/internal/domain/pets"
	"pet-qr-tracker/internal/platform/geo"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, name, photo, status,
	breed, sex, age, size, color, chip,
	vaccinated, neutered, allergies, medication, temperament,
	special_marks, reward, notes,
	home_lat, home_lon,
	last_seen_ms, last_lat, last_lon, last_accuracy,
	created_ms`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, name, photo, status, created_ms)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, p.ID, p.Name, p.Photo, string(p.Status), p.CreatedAt.UnixMilli())
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrAlreadyExists
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, id)
	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) UpdateProfile(ctx context.Context, id string, p pets.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets SET
			name = ?, photo = ?,
			breed = ?, sex = ?, age = ?, size = ?, color = ?, chip = ?,
			vaccinated = ?, neutered = ?, allergies = ?, medication = ?, temperament = ?,
			special_marks = ?, reward = ?, notes = ?
		WHERE id = ?
	`,
		p.Name, p.Photo,
		p.Breed, p.Sex, p.Age, p.Size, p.Color, p.Chip,
		p.Vaccinated, p.Neutered, p.Allergies, p.Medication, p.Temperament,
		p.SpecialMarks, p.Reward, p.Notes,
		id,
	)
	return affected(res, err)
}

func (r *PetsRepo) SetStatus(ctx context.Context, id string, s pets.Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE pets SET status = ? WHERE id = ?`, string(s), id)
	return affected(res, err)
}

func (r *PetsRepo) SetHome(ctx context.Context, id string, home *geo.Point) error {
	var lat, lon sql.NullFloat64
	if home != nil {
		lat = sql.NullFloat64{Float64: home.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: home.Lon, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `UPDATE pets SET home_lat = ?, home_lon = ? WHERE id = ?`, lat, lon, id)
	return affected(res, err)
}

// Delete borra en una transacción. Los hijos se borran a mano además del
// ON DELETE CASCADE: foreign_keys es por conexión en SQLite.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM scans WHERE pet_id = ?`,
		`DELETE FROM contacts WHERE pet_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	if err := affected(tx.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)); err != nil {
		return err
	}
	return tx.Commit()
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(s rowScanner) (pets.Pet, error) {
	var (
		p                         pets.Pet
		status                    string
		homeLat, homeLon          sql.NullFloat64
		lastMs                    sql.NullInt64
		lastLat, lastLon, lastAcc sql.NullFloat64
		createdMs                 int64
	)
	if err := s.Scan(
		&p.ID, &p.Name, &p.Photo, &status,
		&p.Breed, &p.Sex, &p.Age, &p.Size, &p.Color, &p.Chip,
		&p.Vaccinated, &p.Neutered, &p.Allergies, &p.Medication, &p.Temperament,
		&p.SpecialMarks, &p.Reward, &p.Notes,
		&homeLat, &homeLon,
		&lastMs, &lastLat, &lastLon, &lastAcc,
		&createdMs,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Status = pets.Status(status)
	p.CreatedAt = time.UnixMilli(createdMs).UTC()

	if homeLat.Valid && homeLon.Valid {
		p.Home = &geo.Point{Lat: homeLat.Float64, Lon: homeLon.Float64}
	}
	if lastMs.Valid {
		p.LastSeen = &pets.LastSeen{
			At:       time.UnixMilli(lastMs.Int64).UTC(),
			Location: toLocation(lastLat, lastLon, lastAcc),
		}
	}
	return p, nil
}

func toLocation(lat, lon, acc sql.NullFloat64) *geo.Location {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	loc := &geo.Location{Point: geo.Point{Lat: lat.Float64, Lon: lon.Float64}}
	if acc.Valid {
		a := acc.Float64
		loc.Accuracy = &a
	}
	return loc
}

func nullAccuracy(loc *geo.Location) sql.NullFloat64 {
	if loc == nil || loc.Accuracy == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *loc.Accuracy, Valid: true}
}
