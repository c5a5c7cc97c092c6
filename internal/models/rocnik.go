package models

// Rocnik is one yearly edition of the competition. At most one edition is
// active at any time; the service layer owns that invariant.
type Rocnik struct {
	ID       uint `gorm:"primaryKey"`
	Rok      int  `gorm:"not null"`
	IsActive bool `gorm:"default:false"`

	Vina []Vino `gorm:"foreignKey:RocnikID"`
}

func (Rocnik) TableName() string { return "ROCNIK" }
