package models

// RoleName is compared by value everywhere; raw strings from forms are
// converted exactly once, at the edge.
type RoleName string

const (
	RoleAdmin      RoleName = "Admin"
	RoleVinar      RoleName = "Vinař"
	RoleHodnotitel RoleName = "Hodnotitel"
)

// AllRoleNames in seed order.
var AllRoleNames = []RoleName{RoleAdmin, RoleVinar, RoleHodnotitel}

type Role struct {
	ID    uint     `gorm:"primaryKey"`
	Nazev RoleName `gorm:"size:50;not null"`
}

func (Role) TableName() string { return "ROLE" }

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Login        string `gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Jmeno        string `gorm:"size:100;not null"` // celé jméno
	Email        string `gorm:"size:100;not null"`
	Adresa       string `gorm:"size:200"`
	Telefon      string `gorm:"size:20"`
	IsActive     bool   `gorm:"default:true"`

	Roles     []Role      `gorm:"many2many:USERROLE"`
	Vina      []Vino      `gorm:"foreignKey:VinarID"`
	Hodnoceni []Hodnoceni `gorm:"foreignKey:HodnotitelID"`
}

func (User) TableName() string { return "USERS" }

func (u *User) HasRole(name RoleName) bool {
	for _, r := range u.Roles {
		if r.Nazev == name {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}
