package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"bikedash/internal/dataset"
	"bikedash/internal/model"
	"bikedash/internal/repository"
)

const (
	rentalsTable = "rentals"
	insertChunk  = 500
)

// rentalRow mirrors one row of the rentals table.
type rentalRow struct {
	Date   string        `db:"dateday"`
	Year   int           `db:"year"`
	Month  int           `db:"month"`
	Hour   sql.NullInt64 `db:"hour"`
	Season string        `db:"season"`
	Count  int64         `db:"rental_count"`
}

// RentalRepository implements repository.RentalRepository for SQLite.
type RentalRepository struct {
	db *DB
}

var _ repository.RentalRepository = (*RentalRepository)(nil)

// NewRentalRepository creates a new SQLite rental repository.
func NewRentalRepository(db *DB) *RentalRepository {
	return &RentalRepository{db: db}
}

// InsertBatch adds records in a single transaction, in chunks.
func (r *RentalRepository) InsertBatch(records []model.RentalRecord) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRows(tx, records); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceAll swaps the stored records for records in one transaction. On
// failure the previous rows are kept.
func (r *RentalRepository) ReplaceAll(records []model.RentalRecord) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query, args, err := dialect.Delete(rentalsTable).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to delete rentals: %w", err)
	}

	if err := insertRows(tx, records); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRows(tx *sqlx.Tx, records []model.RentalRecord) error {
	for start := 0; start < len(records); start += insertChunk {
		end := min(start+insertChunk, len(records))

		rows := make([]interface{}, 0, end-start)
		for _, rec := range records[start:end] {
			hour := sql.NullInt64{Int64: int64(rec.Hour), Valid: rec.HasHour}
			rows = append(rows, goqu.Record{
				"dateday":      rec.Date.Format("2006-01-02"),
				"year":         rec.Year,
				"month":        rec.Month,
				"hour":         hour,
				"season":       rec.Season,
				"rental_count": rec.Count,
			})
		}

		query, args, err := dialect.Insert(rentalsTable).Rows(rows...).Prepared(true).ToSQL()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to insert rentals: %w", err)
		}
	}
	return nil
}

// GetAll returns every stored record in insertion order.
func (r *RentalRepository) GetAll() ([]model.RentalRecord, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query, args, err := dialect.From(rentalsTable).
		Select("dateday", "year", "month", "hour", "season", "rental_count").
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var rows []rentalRow
	if err := r.db.Conn().Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query rentals: %w", err)
	}

	records := make([]model.RentalRecord, 0, len(rows))
	for _, row := range rows {
		date, err := dataset.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to read rental row: %w", err)
		}
		records = append(records, model.RentalRecord{
			Date:    date,
			Year:    row.Year,
			Month:   row.Month,
			Hour:    int(row.Hour.Int64),
			HasHour: row.Hour.Valid,
			Season:  row.Season,
			Count:   row.Count,
		})
	}
	return records, nil
}

// Count returns the number of stored records.
func (r *RentalRepository) Count() (int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query, args, err := dialect.From(rentalsTable).Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("failed to build count: %w", err)
	}

	var count int
	if err := r.db.Conn().Get(&count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count rentals: %w", err)
	}
	return count, nil
}

// YearTotals sums stored rentals per year.
func (r *RentalRepository) YearTotals() ([]repository.YearTotal, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	query, args, err := dialect.From(rentalsTable).
		Select(goqu.C("year"), goqu.SUM("rental_count").As("total")).
		GroupBy("year").
		Order(goqu.C("year").Asc()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build totals: %w", err)
	}

	var totals []repository.YearTotal
	if err := r.db.Conn().Select(&totals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	return totals, nil
}

// DeleteAll removes every stored record.
func (r *RentalRepository) DeleteAll() error {
	r.db.Lock()
	defer r.db.Unlock()

	query, args, err := dialect.Delete(rentalsTable).ToSQL()
	if err != nil {
		return fmt.Errorf("failed to build delete: %w", err)
	}
	if _, err := r.db.Conn().Exec(query, args...); err != nil {
		return fmt.Errorf("failed to delete rentals: %w", err)
	}
	return nil
}
