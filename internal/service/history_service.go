package service

import (
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
)

// HistoryService exposes the read side of the attempt collection.
type HistoryService interface {
	ListByUser(userID uint, taskType model.TaskType, limit int) ([]model.Attempt, error)
	Get(id uint) (*model.Attempt, error)
}

type historyService struct {
	attempts repository.AttemptRepository
}

func NewHistoryService(attempts repository.AttemptRepository) HistoryService {
	return &historyService{attempts: attempts}
}

func (s *historyService) ListByUser(userID uint, taskType model.TaskType, limit int) ([]model.Attempt, error) {
	return s.attempts.FindAllByUser(userID, repository.ListOptions{TaskType: taskType, Limit: limit})
}

func (s *historyService) Get(id uint) (*model.Attempt, error) {
	return s.attempts.FindByID(id)
}
