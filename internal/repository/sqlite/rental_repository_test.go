package sqlite_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikedash/internal/model"
	"bikedash/internal/repository"
	"bikedash/internal/repository/sqlite"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func testRecords() []model.RentalRecord {
	return []model.RentalRecord{
		{Date: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), Year: 2011, Month: 1, Hour: 0, HasHour: true, Season: "Spring", Count: 16},
		{Date: time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC), Year: 2011, Month: 1, Season: "Spring", Count: 801},
		{Date: time.Date(2012, 6, 15, 0, 0, 0, 0, time.UTC), Year: 2012, Month: 6, Hour: 14, HasHour: true, Season: "Summer", Count: 25},
	}
}

func TestRentalRepository_RoundTrip(t *testing.T) {
	repo := sqlite.NewRentalRepository(setupTestDB(t))

	require.NoError(t, repo.InsertBatch(testRecords()))

	got, err := repo.GetAll()
	require.NoError(t, err)
	assert.Equal(t, testRecords(), got)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRentalRepository_LargeBatch(t *testing.T) {
	repo := sqlite.NewRentalRepository(setupTestDB(t))

	var records []model.RentalRecord
	start := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 1234; i++ {
		d := start.AddDate(0, 0, i/24)
		records = append(records, model.RentalRecord{
			Date: d, Year: d.Year(), Month: int(d.Month()), Hour: i % 24, HasHour: true, Season: "Spring", Count: 1,
		})
	}

	require.NoError(t, repo.InsertBatch(records))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1234, count)
}

func TestRentalRepository_YearTotals(t *testing.T) {
	repo := sqlite.NewRentalRepository(setupTestDB(t))
	require.NoError(t, repo.InsertBatch(testRecords()))

	totals, err := repo.YearTotals()
	require.NoError(t, err)
	assert.Equal(t, []repository.YearTotal{{Year: 2011, Total: 817}, {Year: 2012, Total: 25}}, totals)
}

func TestRentalRepository_DeleteAll(t *testing.T) {
	repo := sqlite.NewRentalRepository(setupTestDB(t))
	require.NoError(t, repo.InsertBatch(testRecords()))

	require.NoError(t, repo.DeleteAll())

	got, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRentalRepository_ReplaceAll(t *testing.T) {
	repo := sqlite.NewRentalRepository(setupTestDB(t))
	require.NoError(t, repo.InsertBatch(testRecords()))

	replacement := []model.RentalRecord{
		{Date: time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC), Year: 2013, Month: 3, Season: "Spring", Count: 42},
	}
	require.NoError(t, repo.ReplaceAll(replacement))

	totals, err := repo.YearTotals()
	require.NoError(t, err)
	assert.Equal(t, []repository.YearTotal{{Year: 2013, Total: 42}}, totals)
}

func TestRentalRepository_ReplaceAllKeepsRowsOnFailure(t *testing.T) {
	repo := sqlite.NewRentalRepository(setupTestDB(t))
	require.NoError(t, repo.InsertBatch(testRecords()))

	bad := []model.RentalRecord{
		{Date: time.Date(2013, 3, 1, 0, 0, 0, 0, time.UTC), Year: 2013, Month: 3, Season: "Spring", Count: 5},
		{Date: time.Date(2013, 3, 2, 0, 0, 0, 0, time.UTC), Year: 2013, Month: 3, Season: "Spring", Count: -1},
	}
	assert.Error(t, repo.ReplaceAll(bad))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, len(testRecords()), count)
}

func TestOpen_ReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	db, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewRentalRepository(db).InsertBatch(testRecords()))
	require.NoError(t, db.Close())

	ro, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { ro.Close() })

	repo := sqlite.NewRentalRepository(ro)
	got, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, got, len(testRecords()))

	assert.Error(t, repo.InsertBatch(testRecords()))
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := sqlite.Open(filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
