package service

import (
	"errors"
	"time"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/models"

	"gorm.io/gorm"
)

// RocnikService owns the edition lifecycle and its single invariant: at most
// one edition is active at any time.
type RocnikService struct{}

// GetActive returns the active edition, or nil when none is active.
func (s *RocnikService) GetActive() (*models.Rocnik, error) {
	var r models.Rocnik
	err := database.DB.Where("is_active = ?", true).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetNewest returns the edition with the highest year, or nil when the table
// is empty.
func (s *RocnikService) GetNewest() (*models.Rocnik, error) {
	var r models.Rocnik
	err := database.DB.Order("rok DESC").First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetAll returns every edition, newest first.
func (s *RocnikService) GetAll() ([]models.Rocnik, error) {
	var rocniky []models.Rocnik
	err := database.DB.Order("rok DESC").Find(&rocniky).Error
	return rocniky, err
}

func (s *RocnikService) GetByID(id uint) (*models.Rocnik, error) {
	var r models.Rocnik
	err := database.DB.First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateNext inserts a new inactive edition: max existing year + 1, or the
// current calendar year when no editions exist.
func (s *RocnikService) CreateNext() (*models.Rocnik, error) {
	newest, err := s.GetNewest()
	if err != nil {
		return nil, err
	}

	rok := time.Now().Year()
	if newest != nil {
		rok = newest.Rok + 1
	}

	r := models.Rocnik{Rok: rok, IsActive: false}
	if err := database.DB.Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// Activate promotes an edition. Editions are only promoted in year order:
// calling this on anything but the newest edition is a silent no-op. The
// deactivate-all / activate-one pair runs in one transaction so no observer
// sees zero or two active editions.
func (s *RocnikService) Activate(id uint) error {
	newest, err := s.GetNewest()
	if err != nil {
		return err
	}
	if newest == nil || newest.ID != id {
		return nil
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Rocnik{}).Where("is_active = ?", true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Rocnik{}).Where("id = ?", id).
			Update("is_active", true).Error
	})
}

// Deactivate clears the flag unconditionally. Zero active editions is a
// valid state.
func (s *RocnikService) Deactivate(id uint) error {
	return database.DB.Model(&models.Rocnik{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// Delete removes the edition together with its wines and their ratings.
func (s *RocnikService) Delete(id uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		vinoIDs := tx.Model(&models.Vino{}).Select("id").Where("rocnik_id = ?", id)
		if err := tx.Where("vino_id IN (?)", vinoIDs).Delete(&models.Hodnoceni{}).Error; err != nil {
			return err
		}
		if err := tx.Where("rocnik_id = ?", id).Delete(&models.Vino{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rocnik{}, id).Error
	})
}

// CountActive exists for the invariant check in tests and the admin page.
func (s *RocnikService) CountActive() (int64, error) {
	var n int64
	err := database.DB.Model(&models.Rocnik{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}
