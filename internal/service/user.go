package service

import (
	"errors"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct{}

// GetByLogin loads a user with their roles, or nil when the login is unknown.
func (s *UserService) GetByLogin(login string) (*models.User, error) {
	var user models.User
	err := database.DB.Preload("Roles").Where("login = ?", login).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := database.DB.Preload("Roles").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll returns every account, oldest first.
func (s *UserService) GetAll() ([]models.User, error) {
	var users []models.User
	err := database.DB.Preload("Roles").Order("id").Find(&users).Error
	return users, err
}

func (s *UserService) GetAllRoles() ([]models.Role, error) {
	var roles []models.Role
	err := database.DB.Find(&roles).Error
	return roles, err
}

// CheckCredentials verifies login and password, returning nil on any
// mismatch. The caller distinguishes a deactivated account separately so it
// can show a different message.
func (s *UserService) CheckCredentials(login, password string) *models.User {
	user, err := s.GetByLogin(login)
	if err != nil {
		logger.Warning("check credentials:", err)
		return nil
	}
	if user == nil {
		return nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil
	}
	return user
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// SetRoles replaces the user's role set.
func (s *UserService) SetRoles(user *models.User, roleIDs []uint) error {
	var roles []models.Role
	if len(roleIDs) > 0 {
		if err := database.DB.Where("id IN ?", roleIDs).Find(&roles).Error; err != nil {
			return err
		}
	}
	return database.DB.Model(user).Association("Roles").Replace(roles)
}

// Delete removes an account together with everything it owns: the ratings
// the user gave, their wines and the ratings those wines received, and the
// role links. One transaction, so a failure leaves the account intact.
func (s *UserService) Delete(userID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hodnotitel_id = ?", userID).Delete(&models.Hodnoceni{}).Error; err != nil {
			return err
		}
		vinoIDs := tx.Model(&models.Vino{}).Select("id").Where("vinar_id = ?", userID)
		if err := tx.Where("vino_id IN (?)", vinoIDs).Delete(&models.Hodnoceni{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vinar_id = ?", userID).Delete(&models.Vino{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM USERROLE WHERE user_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
