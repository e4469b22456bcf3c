package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Roles").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Roles").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Roles").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByEmailExcept(email string, exceptID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("email = ? AND id <> ?", email, exceptID).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// Search pages users matching keyword against username, email or full name.
func (r *UserRepository) Search(keyword string, page, limit int) ([]model.User, int64, error) {
	query := r.DB.Model(&model.User{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("username LIKE ? OR email LIKE ? OR full_name LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Preload("Roles").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

// ReplaceRoles swaps the user's full role set.
func (r *UserRepository) ReplaceRoles(user *model.User, roles []model.Role) error {
	return r.DB.Model(user).Association("Roles").Replace(roles)
}

func (r *UserRepository) FindRolesByNames(names []string) ([]model.Role, error) {
	var roles []model.Role
	err := r.DB.Where("name IN ?", names).Find(&roles).Error
	return roles, err
}

func (r *UserRepository) CountSessions(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamSession{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountContacts(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ContactMessage{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteWithComments purges the user's comments, then the user, in one
// transaction. Callers must have verified the user has no sessions or contacts.
func (r *UserRepository) DeleteWithComments(user *model.User) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(user).Association("Roles").Clear(); err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
