package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/store"
)

// ListOptions narrows an attempt listing. Limit is a hard cap applied after
// sorting; zero means no cap.
type ListOptions struct {
	Limit    int
	TaskType model.TaskType
}

// AttemptRepository persists graded submissions. Attempts are immutable:
// there is deliberately no update or delete operation.
type AttemptRepository interface {
	// Create assigns the identifier and stores the record. AIFeedback is an
	// opaque payload; the store never validates its shape.
	Create(attempt *model.Attempt) error
	// CreateTx is Create inside an existing transaction. The caller is
	// responsible for publishing to the bus after the transaction commits.
	CreateTx(tx *gorm.DB, attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	// FindAllByUser returns the user's attempts ordered by timestamp
	// descending.
	FindAllByUser(userID uint, opts ListOptions) ([]model.Attempt, error)
	// NotifyCreated publishes the post-commit notification for an attempt
	// written via CreateTx.
	NotifyCreated(attempt *model.Attempt)
}

type attemptRepository struct {
	db  *gorm.DB
	bus *store.Bus
}

func NewAttemptRepository(db *gorm.DB, bus *store.Bus) AttemptRepository {
	return &attemptRepository{db: db, bus: bus}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	if err := r.db.Create(attempt).Error; err != nil {
		return apperr.Storage("create attempt", err)
	}
	r.NotifyCreated(attempt)
	return nil
}

func (r *attemptRepository) CreateTx(tx *gorm.DB, attempt *model.Attempt) error {
	if err := tx.Create(attempt).Error; err != nil {
		return apperr.Storage("create attempt", err)
	}
	return nil
}

func (r *attemptRepository) NotifyCreated(attempt *model.Attempt) {
	r.bus.Publish(store.CollectionAttempts, store.UserKey(attempt.UserID))
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.First(&attempt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Storage("find attempt", err)
	}
	return &attempt, nil
}

func (r *attemptRepository) FindAllByUser(userID uint, opts ListOptions) ([]model.Attempt, error) {
	query := r.db.Where("user_id = ?", userID).Order("timestamp DESC, id DESC")
	if opts.TaskType != "" {
		query = query.Where("task_type = ?", opts.TaskType)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	var attempts []model.Attempt
	if err := query.Find(&attempts).Error; err != nil {
		return nil, apperr.Storage("list attempts", err)
	}
	return attempts, nil
}
