package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

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
	last_seen_at, last_lat, last_lon, last_accuracy,
	created_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, name, photo, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, p.ID, p.Name, p.Photo, string(p.Status), p.CreatedAt)
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
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
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
		UPDATE pets
		SET
			name = $2,
			photo = $3,
			breed = $4,
			sex = $5,
			age = $6,
			size = $7,
			color = $8,
			chip = $9,
			vaccinated = $10,
			neutered = $11,
			allergies = $12,
			medication = $13,
			temperament = $14,
			special_marks = $15,
			reward = $16,
			notes = $17
		WHERE id = $1
	`,
		id,
		p.Name, p.Photo,
		p.Breed, p.Sex, p.Age, p.Size, p.Color, p.Chip,
		p.Vaccinated, p.Neutered, p.Allergies, p.Medication, p.Temperament,
		p.SpecialMarks, p.Reward, p.Notes,
	)
	return affected(res, err)
}

func (r *PetsRepo) SetStatus(ctx context.Context, id string, s pets.Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE pets SET status = $2 WHERE id = $1`, id, string(s))
	return affected(res, err)
}

func (r *PetsRepo) SetHome(ctx context.Context, id string, home *geo.Point) error {
	var lat, lon sql.NullFloat64
	if home != nil {
		lat = sql.NullFloat64{Float64: home.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: home.Lon, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `UPDATE pets SET home_lat = $2, home_lon = $3 WHERE id = $1`, id, lat, lon)
	return affected(res, err)
}

// Delete confía en ON DELETE CASCADE para scans y contacts.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	return affected(res, err)
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
		lastAt                    sql.NullTime
		lastLat, lastLon, lastAcc sql.NullFloat64
	)
	if err := s.Scan(
		&p.ID, &p.Name, &p.Photo, &status,
		&p.Breed, &p.Sex, &p.Age, &p.Size, &p.Color, &p.Chip,
		&p.Vaccinated, &p.Neutered, &p.Allergies, &p.Medication, &p.Temperament,
		&p.SpecialMarks, &p.Reward, &p.Notes,
		&homeLat, &homeLon,
		&lastAt, &lastLat, &lastLon, &lastAcc,
		&p.CreatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Status = pets.Status(status)
	p.CreatedAt = p.CreatedAt.UTC()

	if homeLat.Valid && homeLon.Valid {
		p.Home = &geo.Point{Lat: homeLat.Float64, Lon: homeLon.Float64}
	}
	if lastAt.Valid {
		p.LastSeen = &pets.LastSeen{
			At:       lastAt.Time.UTC(),
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
