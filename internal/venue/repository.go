package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/komalrathore0521/BookVenue/internal/availability"
	"github.com/komalrathore0521/BookVenue/internal/db"
)

const venueColumns = `id, name, location, capacity, price_per_hour, created_by, is_active, created_at, updated_at`

type PostgresRepository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type unavailableRow struct {
	VenueID int64             `db:"venue_id"`
	Date    availability.Date `db:"unavailable_date"`
}

func (r *PostgresRepository) CreateVenue(ctx context.Context, v *Venue) (*Venue, error) {
	query := `
		INSERT INTO venues (name, location, capacity, price_per_hour, created_by, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + venueColumns

	var created Venue
	err := db.Conn(ctx, r.db).GetContext(ctx, &created, query,
		v.Name, v.Location, v.Capacity, v.PricePerHour, v.CreatedBy, v.IsActive)
	if err != nil {
		return nil, err
	}

	created.UnavailableDates = availability.NewDateSet()
	return &created, nil
}

// GetVenueByID returns the venue regardless of its active flag.
func (r *PostgresRepository) GetVenueByID(ctx context.Context, id int64) (*Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetVenueByIDForUpdate locks the venue row until the surrounding
// transaction ends.
func (r *PostgresRepository) GetVenueByIDForUpdate(ctx context.Context, id int64) (*Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) FindByNameIgnoreCase(ctx context.Context, name string) (*Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE LOWER(name) = LOWER($1)
		ORDER BY id ASC
		LIMIT 1
	`
	return r.getOne(ctx, query, name)
}

func (r *PostgresRepository) ListActiveVenues(ctx context.Context) ([]Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query)
}

// ListActiveByLocation matches location as a case-insensitive substring.
// Wildcard characters in the input are matched literally.
func (r *PostgresRepository) ListActiveByLocation(ctx context.Context, location string) ([]Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE is_active = TRUE AND strpos(lower(location), lower($1)) > 0
		ORDER BY name ASC
	`
	return r.list(ctx, query, location)
}

func (r *PostgresRepository) ListActiveByCapacityRange(ctx context.Context, min, max int) ([]Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE is_active = TRUE AND capacity BETWEEN $1 AND $2
		ORDER BY capacity ASC, id ASC
	`
	return r.list(ctx, query, min, max)
}

func (r *PostgresRepository) ListActiveByPriceRange(ctx context.Context, min, max float64) ([]Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE is_active = TRUE AND price_per_hour BETWEEN $1 AND $2
		ORDER BY price_per_hour ASC, id ASC
	`
	return r.list(ctx, query, min, max)
}

func (r *PostgresRepository) ListByCreator(ctx context.Context, createdBy string) ([]Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, createdBy)
}

// ListVenuesByIDs returns the venues with the given ids keyed by id.
func (r *PostgresRepository) ListVenuesByIDs(ctx context.Context, ids []int64) (map[int64]*Venue, error) {
	out := make(map[int64]*Venue, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	q := db.Conn(ctx, r.db)
	query, args, err := sqlx.In(`SELECT `+venueColumns+` FROM venues WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	var venues []Venue
	if err := q.SelectContext(ctx, &venues, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	if err := r.attachDates(ctx, venues); err != nil {
		return nil, err
	}

	for i := range venues {
		out[venues[i].ID] = &venues[i]
	}
	return out, nil
}

// UpdateVenue overwrites the descriptive fields only. It returns
// sql.ErrNoRows when the venue does not exist.
func (r *PostgresRepository) UpdateVenue(ctx context.Context, id int64, req UpdateVenueRequest) (*Venue, error) {
	query := `
		UPDATE venues
		SET name = $1, location = $2, capacity = $3, price_per_hour = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + venueColumns

	var v Venue
	err := db.Conn(ctx, r.db).GetContext(ctx, &v, query, req.Name, req.Location, req.Capacity, req.PricePerHour, id)
	if err != nil {
		return nil, err
	}

	venues := []Venue{v}
	if err := r.attachDates(ctx, venues); err != nil {
		return nil, err
	}
	return &venues[0], nil
}

// Deactivate soft deletes the venue and reports whether a row changed.
func (r *PostgresRepository) Deactivate(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE venues SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`

	result, err := db.Conn(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// ReplaceUnavailableDates makes the stored set equal to dates.
func (r *PostgresRepository) ReplaceUnavailableDates(ctx context.Context, venueID int64, dates availability.DateSet) error {
	q := db.Conn(ctx, r.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM venue_unavailable_dates WHERE venue_id = $1`, venueID); err != nil {
		return fmt.Errorf("failed to clear unavailable dates: %w", err)
	}

	for _, d := range dates.Sorted() {
		_, err := q.ExecContext(ctx,
			`INSERT INTO venue_unavailable_dates (venue_id, unavailable_date) VALUES ($1, $2)`,
			venueID, d)
		if err != nil {
			return fmt.Errorf("failed to store unavailable date %s: %w", d, err)
		}
	}

	if _, err := q.ExecContext(ctx, `UPDATE venues SET updated_at = NOW() WHERE id = $1`, venueID); err != nil {
		return fmt.Errorf("failed to touch venue: %w", err)
	}
	return nil
}

// AddUnavailableDate blocks a single date; blocking twice is a no-op.
func (r *PostgresRepository) AddUnavailableDate(ctx context.Context, venueID int64, d availability.Date) error {
	q := db.Conn(ctx, r.db)

	_, err := q.ExecContext(ctx, `
		INSERT INTO venue_unavailable_dates (venue_id, unavailable_date)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, venueID, d)
	if err != nil {
		return err
	}

	_, err = q.ExecContext(ctx, `UPDATE venues SET updated_at = NOW() WHERE id = $1`, venueID)
	return err
}

func (r *PostgresRepository) CountVenues(ctx context.Context) (int, error) {
	var count int
	err := db.Conn(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM venues`)
	return count, err
}

func (r *PostgresRepository) CountActiveVenues(ctx context.Context) (int, error) {
	var count int
	err := db.Conn(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM venues WHERE is_active = TRUE`)
	return count, err
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...interface{}) (*Venue, error) {
	var v Venue
	if err := db.Conn(ctx, r.db).GetContext(ctx, &v, query, args...); err != nil {
		return nil, err
	}

	venues := []Venue{v}
	if err := r.attachDates(ctx, venues); err != nil {
		return nil, err
	}
	return &venues[0], nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]Venue, error) {
	venues := []Venue{}
	if err := db.Conn(ctx, r.db).SelectContext(ctx, &venues, query, args...); err != nil {
		return nil, err
	}
	if err := r.attachDates(ctx, venues); err != nil {
		return nil, err
	}
	return venues, nil
}

// attachDates loads the unavailable dates for all venues in one query.
func (r *PostgresRepository) attachDates(ctx context.Context, venues []Venue) error {
	if len(venues) == 0 {
		return nil
	}

	ids := make([]int64, len(venues))
	index := make(map[int64]int, len(venues))
	for i := range venues {
		ids[i] = venues[i].ID
		index[venues[i].ID] = i
		venues[i].UnavailableDates = availability.NewDateSet()
	}

	q := db.Conn(ctx, r.db)
	query, args, err := sqlx.In(`
		SELECT venue_id, unavailable_date
		FROM venue_unavailable_dates
		WHERE venue_id IN (?)
	`, ids)
	if err != nil {
		return err
	}

	var rows []unavailableRow
	if err := q.SelectContext(ctx, &rows, q.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to load unavailable dates: %w", err)
	}

	for _, row := range rows {
		if i, ok := index[row.VenueID]; ok {
			venues[i].UnavailableDates.Block(row.Date)
		}
	}
	return nil
}
