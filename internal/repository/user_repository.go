package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/store"
)

type UserRepository interface {
	Create(user *model.User) error
	// FindByName returns the first user with the given name (case-sensitive),
	// or apperr.ErrNotFound. With the lookup-then-create login path this is
	// the natural identity resolution; a duplicate created by a concurrent
	// race resolves to the first match.
	FindByName(name string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
}

type userRepository struct {
	db  *gorm.DB
	bus *store.Bus
}

func NewUserRepository(db *gorm.DB, bus *store.Bus) UserRepository {
	return &userRepository{db: db, bus: bus}
}

func (r *userRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return apperr.Storage("create user", err)
	}
	r.bus.Publish(store.CollectionUsers)
	return nil
}

func (r *userRepository) FindByName(name string) (*model.User, error) {
	var user model.User
	err := r.db.Where("name = ?", name).Order("id ASC").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage("find user by name", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage("find user by id", err)
	}
	return &user, nil
}
