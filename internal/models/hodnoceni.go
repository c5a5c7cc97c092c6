package models

// Hodnoceni is one rater's score for one wine. A rater holds at most one
// row per wine (upserted by the rating batch), and never for their own wine.
type Hodnoceni struct {
	ID       uint   `gorm:"primaryKey"`
	Body     int    `gorm:"not null"` // 0-100
	Poznamka string `gorm:"type:text"`

	VinoID       uint `gorm:"not null;index:idx_hodnoceni_vino_hodnotitel,unique"`
	HodnotitelID uint `gorm:"not null;index:idx_hodnoceni_vino_hodnotitel,unique"`

	Vino       Vino `gorm:"foreignKey:VinoID"`
	Hodnotitel User `gorm:"foreignKey:HodnotitelID"`
}

func (Hodnoceni) TableName() string { return "HODNOCENI" }
