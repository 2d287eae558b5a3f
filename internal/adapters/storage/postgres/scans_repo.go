package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-qr-tracker/internal/domain/scans"
)

type ScansRepo struct {
	db *sql.DB
}

func NewScansRepo(db *sql.DB) *ScansRepo {
	return &ScansRepo{db: db}
}

const scanColumns = `id, pet_id, kind, ts, ip, user_agent, referrer, note, lat, lon, accuracy`

// Record bloquea la fila de la mascota (FOR UPDATE) para que insert + last_seen
// queden serializados por mascota.
func (r *ScansRepo) Record(ctx context.Context, e scans.ScanEvent) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM pets WHERE id = $1 FOR UPDATE`, e.PetID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, scans.ErrPetNotFound
		}
		return 0, err
	}

	var lat, lon sql.NullFloat64
	if e.Location != nil {
		lat = sql.NullFloat64{Float64: e.Location.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: e.Location.Lon, Valid: true}
	}

	var id int64
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO scans (pet_id, kind, ts, ip, user_agent, referrer, note, lat, lon, accuracy)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		e.PetID,
		string(e.Kind),
		e.Timestamp.UTC(),
		e.IP,
		e.UserAgent,
		e.Referrer,
		e.Note,
		lat, lon, nullAccuracy(e.Location),
	).Scan(&id); err != nil {
		return 0, err
	}

	if e.Location != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE pets
			SET last_seen_at = $2, last_lat = $3, last_lon = $4, last_accuracy = $5
			WHERE id = $1
		`, e.PetID, e.Timestamp.UTC(), lat, lon, nullAccuracy(e.Location))
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE pets SET last_seen_at = $2 WHERE id = $1`, e.PetID, e.Timestamp.UTC())
	}
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ScansRepo) Recent(ctx context.Context, q scans.RecentQuery) ([]scans.ScanEvent, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + scanColumns + ` FROM scans WHERE pet_id = $1`)
	if q.LocatedOnly {
		sb.WriteString(` AND lat IS NOT NULL AND lon IS NOT NULL`)
	}
	sb.WriteString(` ORDER BY id DESC LIMIT $2`)

	return r.query(ctx, sb.String(), q.PetID, q.Limit)
}

func (r *ScansRepo) CountSince(ctx context.Context, petID string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scans WHERE pet_id = $1 AND ts >= $2`,
		petID, since.UTC(),
	).Scan(&n)
	return n, err
}

func (r *ScansRepo) Count(ctx context.Context, f scans.ListFilter) (int, error) {
	where, args := filterSQL(f)
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scans`+where, args...).Scan(&n)
	return n, err
}

func (r *ScansRepo) Page(ctx context.Context, f scans.ListFilter, offset, limit int) ([]scans.ScanEvent, error) {
	where, args := filterSQL(f)
	n := len(args)
	args = append(args, limit, offset)
	q := fmt.Sprintf(`SELECT %s FROM scans%s ORDER BY id DESC LIMIT $%d OFFSET $%d`, scanColumns, where, n+1, n+2)
	return r.query(ctx, q, args...)
}

// filterSQL: la fecha se compara como texto YYYY-MM-DD en UTC, igual que en SQLite.
func filterSQL(f scans.ListFilter) (string, []any) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)
	argN := 1

	if f.PetID != "" {
		conds = append(conds, fmt.Sprintf("pet_id = $%d", argN))
		args = append(args, f.PetID)
		argN++
	}
	if f.LocatedOnly {
		conds = append(conds, "lat IS NOT NULL AND lon IS NOT NULL")
	}
	if f.DateFrom != "" {
		conds = append(conds, fmt.Sprintf("to_char(ts AT TIME ZONE 'UTC', 'YYYY-MM-DD') >= $%d", argN))
		args = append(args, f.DateFrom)
		argN++
	}
	if f.DateTo != "" {
		conds = append(conds, fmt.Sprintf("to_char(ts AT TIME ZONE 'UTC', 'YYYY-MM-DD') <= $%d", argN))
		args = append(args, f.DateTo)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *ScansRepo) query(ctx context.Context, q string, args ...any) ([]scans.ScanEvent, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scans.ScanEvent, 0)
	for rows.Next() {
		var (
			e             scans.ScanEvent
			kind          string
			lat, lon, acc sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.PetID, &kind, &e.Timestamp, &e.IP, &e.UserAgent, &e.Referrer, &e.Note, &lat, &lon, &acc); err != nil {
			return nil, err
		}
		e.Kind = scans.Kind(kind)
		e.Timestamp = e.Timestamp.UTC()
		e.Location = toLocation(lat, lon, acc)
		out = append(out, e)
	}
	return out, rows.Err()
}
