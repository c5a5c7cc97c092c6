package database

import (
	"os"
	"path/filepath"

	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// joinNamer uses many2many tag values verbatim, so the join table declared as
// USERROLE is created under that exact name (the default strategy would mangle
// it to "userroles", breaking the raw SQL that joins it).
type joinNamer struct{ schema.NamingStrategy }

func (joinNamer) JoinTableName(str string) string { return str }

// Init opens (or creates) the sqlite database file, migrates the schema and
// seeds the role table.
func Init(dbPath string, debug bool) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	gl := gormlogger.Discard
	if debug {
		gl = gormlogger.Default
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gl, NamingStrategy: joinNamer{}})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return err
	}

	DB = db

	if err := migrate(); err != nil {
		return err
	}
	return seedRoles()
}

func migrate() error {
	return DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Rocnik{},
		&models.Vino{},
		&models.Hodnoceni{},
		&models.AuditLog{},
	)
}

func seedRoles() error {
	for _, name := range models.AllRoleNames {
		var count int64
		if err := DB.Model(&models.Role{}).Where("nazev = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := DB.Create(&models.Role{Nazev: name}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// EnsureAdmin creates the default administrator account when no user holds
// the Admin role yet, so a fresh install is never left without a way in.
func EnsureAdmin(login, password string) error {
	var admins int64
	err := DB.Model(&models.User{}).
		Joins("JOIN USERROLE ur ON ur.user_id = USERS.id").
		Joins("JOIN ROLE r ON r.id = ur.role_id").
		Where("r.nazev = ?", models.RoleAdmin).
		Count(&admins).Error
	if err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var adminRole models.Role
	if err := DB.Where("nazev = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	admin := models.User{
		Login:        login,
		PasswordHash: string(hash),
		Jmeno:        login,
		Email:        login + "@kost.cz",
		IsActive:     true,
		Roles:        []models.Role{adminRole},
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Infof("created default admin user %q", login)
	return nil
}
