package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/store"
)

func TestUserFindByNameNotFound(t *testing.T) {
	db, bus := testDB(t)
	repo := NewUserRepository(db, bus)

	_, err := repo.FindByName("nobody")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserCreateThenFindByName(t *testing.T) {
	db, bus := testDB(t)
	repo := NewUserRepository(db, bus)

	user := &model.User{Name: "Minh"}
	require.NoError(t, repo.Create(user))
	require.NotZero(t, user.ID)

	found, err := repo.FindByName("Minh")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := repo.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Minh", byID.Name)
}

func TestUserFindByNameIsCaseSensitiveOnDistinctNames(t *testing.T) {
	db, bus := testDB(t)
	repo := NewUserRepository(db, bus)

	require.NoError(t, repo.Create(&model.User{Name: "An"}))

	_, err := repo.FindByName("an")
	// SQLite LIKE is case-insensitive but equality is not; a differently
	// cased name is a different account.
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserDuplicateNamesResolveToFirst(t *testing.T) {
	db, bus := testDB(t)
	repo := NewUserRepository(db, bus)

	first := &model.User{Name: "Linh"}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(&model.User{Name: "Linh"}))

	found, err := repo.FindByName("Linh")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
}

func TestUserCreatePublishesToBus(t *testing.T) {
	db, bus := testDB(t)
	repo := NewUserRepository(db, bus)

	sub := bus.Subscribe(store.CollectionUsers, "")
	defer sub.Close()

	require.NoError(t, repo.Create(&model.User{Name: "Hoa"}))

	select {
	case ev := <-sub.C:
		assert.Equal(t, store.CollectionUsers, ev.Collection)
	default:
		t.Fatal("expected a users event after create")
	}
}
