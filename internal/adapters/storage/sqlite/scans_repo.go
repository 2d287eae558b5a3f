package sqlite

import (
	"context"
	"database/sql"
	"errors"
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

const scanColumns = `id, pet_id, kind, ts_unix_ms, ip, user_agent, referrer, note, lat, lon, accuracy`

// Record inserta el escaneo y actualiza last_seen en la misma transacción.
// Las columnas last_lat/last_lon/last_accuracy solo se tocan si el evento trae ubicación.
func (r *ScansRepo) Record(ctx context.Context, e scans.ScanEvent) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var one int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM pets WHERE id = ?`, e.PetID).Scan(&one); err != nil {
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

	res, err := tx.ExecContext(ctx, `
		INSERT INTO scans (pet_id, kind, ts_utc, ts_unix_ms, ip, user_agent, referrer, note, lat, lon, accuracy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.PetID,
		string(e.Kind),
		e.Timestamp.UTC().Format(scans.TimestampLayout),
		e.Timestamp.UnixMilli(),
		e.IP,
		e.UserAgent,
		e.Referrer,
		e.Note,
		lat, lon, nullAccuracy(e.Location),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if e.Location != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE pets SET last_seen_ms = ?, last_lat = ?, last_lon = ?, last_accuracy = ?
			WHERE id = ?
		`, e.Timestamp.UnixMilli(), lat, lon, nullAccuracy(e.Location), e.PetID)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE pets SET last_seen_ms = ? WHERE id = ?`, e.Timestamp.UnixMilli(), e.PetID)
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
	sb.WriteString(`SELECT ` + scanColumns + ` FROM scans WHERE pet_id = ?`)
	if q.LocatedOnly {
		sb.WriteString(` AND lat IS NOT NULL AND lon IS NOT NULL`)
	}
	sb.WriteString(` ORDER BY id DESC LIMIT ?`)

	return r.query(ctx, sb.String(), q.PetID, q.Limit)
}

func (r *ScansRepo) CountSince(ctx context.Context, petID string, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scans WHERE pet_id = ? AND ts_unix_ms >= ?`,
		petID, since.UnixMilli(),
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
	args = append(args, limit, offset)
	return r.query(ctx, `SELECT `+scanColumns+` FROM scans`+where+` ORDER BY id DESC LIMIT ? OFFSET ?`, args...)
}

// filterSQL compara la fecha como texto sobre el prefijo de ts_utc (ambos extremos inclusive).
func filterSQL(f scans.ListFilter) (string, []any) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if f.PetID != "" {
		conds = append(conds, "pet_id = ?")
		args = append(args, f.PetID)
	}
	if f.LocatedOnly {
		conds = append(conds, "lat IS NOT NULL AND lon IS NOT NULL")
	}
	if f.DateFrom != "" {
		conds = append(conds, "substr(ts_utc, 1, 10) >= ?")
		args = append(args, f.DateFrom)
	}
	if f.DateTo != "" {
		conds = append(conds, "substr(ts_utc, 1, 10) <= ?")
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
			tsMs          int64
			lat, lon, acc sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.PetID, &kind, &tsMs, &e.IP, &e.UserAgent, &e.Referrer, &e.Note, &lat, &lon, &acc); err != nil {
			return nil, err
		}
		e.Kind = scans.Kind(kind)
		e.Timestamp = time.UnixMilli(tsMs).UTC()
		e.Location = toLocation(lat, lon, acc)
		out = append(out, e)
	}
	return out, rows.Err()
}
