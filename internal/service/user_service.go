package service

import (
	"time"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"

	"go.uber.org/zap"
)

type UserService struct {
	repo   *repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Search(keyword string, page, limit int) ([]model.User, int64, error) {
	return s.repo.Search(keyword, page, limit)
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type ProfileInput struct {
	FullName  string     `json:"fullName" binding:"max=150"`
	Email     string     `json:"email" binding:"required,email"`
	Phone     string     `json:"phone" binding:"max=20"`
	BirthDate *time.Time `json:"birthDate"`
	Gender    string     `json:"gender" binding:"max=10"`
}

// UpdateProfile edits the caller's own account. A changed email must stay
// unique across users.
func (s *UserService) UpdateProfile(userID uint, input *ProfileInput) (*model.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if input.Email != user.Email {
		taken, err := s.repo.ExistsByEmailExcept(input.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrEmailRegistered
		}
	}

	user.FullName = input.FullName
	user.Email = input.Email
	user.Phone = input.Phone
	user.BirthDate = input.BirthDate
	user.Gender = input.Gender

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatar(userID uint, avatarURL string) (*model.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = avatarURL
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ReplaceRoles swaps a user's full role set. Every requested role must already
// exist; nothing is changed otherwise.
func (s *UserService) ReplaceRoles(userID uint, roleNames []string) (*model.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	roles, err := s.repo.FindRolesByNames(roleNames)
	if err != nil {
		return nil, err
	}
	if len(roles) != len(roleNames) {
		return nil, util.ErrRoleNotFound
	}

	if err := s.repo.ReplaceRoles(user, roles); err != nil {
		return nil, err
	}
	user.Roles = roles

	s.logger.Info("user roles replaced",
		zap.Uint("user_id", userID),
		zap.Strings("roles", roleNames))
	return user, nil
}

// SetLocked toggles the account lockout flag. A locked user cannot log in;
// tokens already issued keep working until they expire.
func (s *UserService) SetLocked(userID uint, locked bool) (*model.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	user.Locked = locked
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	s.logger.Info("user lockout changed",
		zap.Uint("user_id", userID),
		zap.Bool("locked", locked))
	return user, nil
}

// Delete removes a user. Accounts with exam sessions or contact messages are
// kept so their history stays intact; their comments are purged along with the
// account.
func (s *UserService) Delete(userID uint) error {
	user, err := s.Get(userID)
	if err != nil {
		return err
	}

	sessions, err := s.repo.CountSessions(userID)
	if err != nil {
		return err
	}
	if sessions > 0 {
		return util.ErrUserHasRecords
	}

	contacts, err := s.repo.CountContacts(userID)
	if err != nil {
		return err
	}
	if contacts > 0 {
		return util.ErrUserHasRecords
	}

	return s.repo.DeleteWithComments(user)
}
