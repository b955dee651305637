package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vdtri/toeicmate/internal/apperr"
	"github.com/vdtri/toeicmate/internal/model"
	"github.com/vdtri/toeicmate/internal/repository"
	"github.com/vdtri/toeicmate/internal/session"
)

type UserService interface {
	// Login resolves a name to a user, creating the account on first use.
	// Calling it twice with the same name yields the same user. The
	// two-tabs-racing-to-create case is an accepted limitation: the storage
	// level enforces no uniqueness, and a later login resolves to the first
	// match.
	Login(name string) (*model.User, error)
	// Logout clears the session's current user; the User record itself is
	// never deleted.
	Logout()
}

type userService struct {
	users repository.UserRepository
	sess  *session.Store
}

func NewUserService(users repository.UserRepository, sess *session.Store) UserService {
	return &userService{users: users, sess: sess}
}

func (s *userService) Login(name string) (*model.User, error) {
	if name == "" {
		return nil, &apperr.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	user, err := s.users.FindByName(name)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		log.Error().Err(err).Str("name", name).Msg("Login: user lookup failed")
		return nil, fmt.Errorf("login lookup failed: %w", err)
	}

	if user == nil {
		user = &model.User{Name: name}
		if err := s.users.Create(user); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Login: user creation failed")
			return nil, fmt.Errorf("login create failed: %w", err)
		}
		log.Info().Uint("userID", user.ID).Str("name", name).Msg("Created new user on first login")
	}

	s.sess.SetCurrentUser(user)
	return user, nil
}

func (s *userService) Logout() {
	s.sess.Logout()
}
