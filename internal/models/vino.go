package models

// Form option lists. Values are stored as-is, so they double as the
// canonical spelling in the database.
var (
	BarvyVina = []string{"Červené", "Bílé", "Růžové"}

	SladkostiVina = []string{"Suché", "Polosuché", "Polosladké", "Sladké"}

	PrivlastkyVina = []string{
		"Jakostní", "Kabinet", "Pozdní sběr", "Výběr z hroznů",
		"Výběr z bobulí", "Ledové", "Slámové", "Zemské víno", "VOC",
	}
)

type Vino struct {
	ID         uint   `gorm:"primaryKey"`
	Nazev      string `gorm:"size:100;not null"`
	Barva      string `gorm:"size:20"`
	Odruda     string `gorm:"size:50"`
	Privlastek string `gorm:"size:50"`
	Sladkost   string `gorm:"size:20"`
	RokSklizne int

	VinarID  uint `gorm:"not null"`
	RocnikID uint `gorm:"not null"`

	Vinar     User        `gorm:"foreignKey:VinarID"`
	Rocnik    Rocnik      `gorm:"foreignKey:RocnikID"`
	Hodnoceni []Hodnoceni `gorm:"foreignKey:VinoID"`
}

func (Vino) TableName() string { return "VINO" }

// VinoWithStats annotates a wine with the aggregates shown on the ranked
// listing. AvgBody is rounded to one decimal; unrated wines carry 0.0.
type VinoWithStats struct {
	Vino
	AvgBody        float64
	PocetHodnoceni int64
}
