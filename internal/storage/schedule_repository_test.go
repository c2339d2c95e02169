package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myturn82/dragonj/internal/storage/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db))
	return db
}

func newTestOwner(t *testing.T, db *DB, email string) string {
	t.Helper()

	user := &models.User{Email: email, PasswordHash: "x"}
	require.NoError(t, NewUserRepository(db).CreateUser(context.Background(), user))
	return user.ID
}

func record(title, start, end string) models.ScheduleRecord {
	return models.ScheduleRecord{
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Color:     models.DefaultColor,
	}
}

func TestInsertManyAssignsIDs(t *testing.T) {
	db := newTestDB(t)
	owner := newTestOwner(t, db, "owner@example.com")
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	created, err := repo.InsertMany(ctx, owner, []models.ScheduleRecord{
		record("standup", "2024-03-04", "2024-03-04"),
		record("retreat", "2024-03-10", "2024-03-12"),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, rec := range created {
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, owner, rec.OwnerID)
		assert.False(t, rec.CreatedAt.IsZero())
	}

	count, err := repo.CountByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInsertManyIsAtomic(t *testing.T) {
	db := newTestDB(t)
	owner := newTestOwner(t, db, "owner@example.com")
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	// The second record violates the start <= end check constraint, so
	// the whole batch must roll back.
	_, err := repo.InsertMany(ctx, owner, []models.ScheduleRecord{
		record("ok", "2024-03-04", "2024-03-04"),
		record("inverted", "2024-03-10", "2024-03-01"),
	})
	require.Error(t, err)

	count, err := repo.CountByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestListByOwnerIsScoped(t *testing.T) {
	db := newTestDB(t)
	alice := newTestOwner(t, db, "alice@example.com")
	bob := newTestOwner(t, db, "bob@example.com")
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	_, err := repo.InsertMany(ctx, alice, []models.ScheduleRecord{
		record("alice 1", "2024-03-04", "2024-03-04"),
		record("alice 2", "2024-03-05", "2024-03-05"),
	})
	require.NoError(t, err)
	_, err = repo.InsertMany(ctx, bob, []models.ScheduleRecord{
		record("bob 1", "2024-03-04", "2024-03-04"),
	})
	require.NoError(t, err)

	records, err := repo.ListByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "alice 1", records[0].Title)
	assert.Equal(t, "alice 2", records[1].Title)
}

func TestGetByIDWrongOwner(t *testing.T) {
	db := newTestDB(t)
	alice := newTestOwner(t, db, "alice@example.com")
	bob := newTestOwner(t, db, "bob@example.com")
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	created, err := repo.InsertMany(ctx, alice, []models.ScheduleRecord{
		record("private", "2024-03-04", "2024-03-04"),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created[0].ID, bob)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(ctx, created[0].ID, alice)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "private", got.Title)
}

func TestUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	owner := newTestOwner(t, db, "owner@example.com")
	repo := NewScheduleRepository(db)
	ctx := context.Background()

	created, err := repo.InsertMany(ctx, owner, []models.ScheduleRecord{
		record("draft", "2024-03-04", "2024-03-04"),
	})
	require.NoError(t, err)

	rec := created[0]
	rec.Title = "final"
	rec.EndDate = "2024-03-05"
	require.NoError(t, repo.Update(ctx, &rec))

	got, err := repo.GetByID(ctx, rec.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, "2024-03-05", got.EndDate)

	require.NoError(t, repo.Delete(ctx, rec.ID, owner))
	assert.Error(t, repo.Delete(ctx, rec.ID, owner))

	got, err = repo.GetByID(ctx, rec.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMissingRecord(t *testing.T) {
	db := newTestDB(t)
	owner := newTestOwner(t, db, "owner@example.com")
	repo := NewScheduleRepository(db)

	rec := record("ghost", "2024-03-04", "2024-03-04")
	rec.ID = GenerateID()
	rec.OwnerID = owner
	assert.Error(t, repo.Update(context.Background(), &rec))
}
