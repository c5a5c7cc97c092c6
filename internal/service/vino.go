package service

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/bockpetr/kost/internal/database"
	"github.com/bockpetr/kost/internal/logger"
	"github.com/bockpetr/kost/internal/models"

	"gorm.io/gorm"
)

// ErrVinoNotFound covers both a missing wine and a wine owned by someone
// else; the two cases are deliberately indistinguishable to the caller.
var ErrVinoNotFound = errors.New("víno nenalezeno nebo nepatří přihlášenému vinaři")

type VinoService struct{}

// ListByRocnik returns the wines of an edition annotated with their average
// score (one decimal, 0.0 when unrated) and rating count, ordered by average
// descending with name as the tie break. Unrated wines therefore sort after
// anything with a positive average, among themselves by name.
func (s *VinoService) ListByRocnik(rocnikID uint) ([]models.VinoWithStats, error) {
	var vina []models.Vino
	err := database.DB.Preload("Vinar").Where("rocnik_id = ?", rocnikID).Find(&vina).Error
	if err != nil {
		return nil, err
	}

	type aggRow struct {
		VinoID uint
		Avg    float64
		Cnt    int64
	}
	var aggs []aggRow
	err = database.DB.Model(&models.Hodnoceni{}).
		Select("vino_id, AVG(body) AS avg, COUNT(id) AS cnt").
		Where("vino_id IN (?)", database.DB.Model(&models.Vino{}).Select("id").Where("rocnik_id = ?", rocnikID)).
		Group("vino_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, err
	}

	byVino := make(map[uint]aggRow, len(aggs))
	for _, a := range aggs {
		byVino[a.VinoID] = a
	}

	out := make([]models.VinoWithStats, 0, len(vina))
	for _, v := range vina {
		ws := models.VinoWithStats{Vino: v}
		if a, ok := byVino[v.ID]; ok {
			ws.AvgBody = math.Round(a.Avg*10) / 10
			ws.PocetHodnoceni = a.Cnt
		}
		out = append(out, ws)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AvgBody != out[j].AvgBody {
			return out[i].AvgBody > out[j].AvgBody
		}
		return out[i].Nazev < out[j].Nazev
	})
	return out, nil
}

// Detail returns a wine with its producer and its ratings sorted by score
// descending. Returns ErrVinoNotFound for an unknown id.
func (s *VinoService) Detail(vinoID uint) (*models.Vino, []models.Hodnoceni, error) {
	var vino models.Vino
	err := database.DB.Preload("Vinar").Preload("Rocnik").First(&vino, vinoID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrVinoNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var ratings []models.Hodnoceni
	err = database.DB.Preload("Hodnotitel").
		Where("vino_id = ?", vinoID).
		Order("body DESC").
		Find(&ratings).Error
	if err != nil {
		return nil, nil, err
	}
	return &vino, ratings, nil
}

// ListByVinar returns one producer's wines within an edition, name ascending.
func (s *VinoService) ListByVinar(rocnikID, vinarID uint) ([]models.Vino, error) {
	var vina []models.Vino
	err := database.DB.
		Where("rocnik_id = ? AND vinar_id = ?", rocnikID, vinarID).
		Order("nazev").
		Find(&vina).Error
	return vina, err
}

// RatableVino pairs a wine with the current rater's own rating, nil when the
// rater has not scored it yet.
type RatableVino struct {
	Vino models.Vino
	Moje *models.Hodnoceni
}

// ListRatable returns every wine of the edition owned by someone other than
// the rater, name ascending, each joined with the rater's existing rating.
func (s *VinoService) ListRatable(rocnikID, raterID uint) ([]RatableVino, error) {
	var vina []models.Vino
	err := database.DB.Preload("Vinar").
		Where("rocnik_id = ? AND vinar_id <> ?", rocnikID, raterID).
		Order("nazev").
		Find(&vina).Error
	if err != nil {
		return nil, err
	}

	var moje []models.Hodnoceni
	err = database.DB.
		Where("hodnotitel_id = ?", raterID).
		Find(&moje).Error
	if err != nil {
		return nil, err
	}
	byVino := make(map[uint]models.Hodnoceni, len(moje))
	for _, h := range moje {
		byVino[h.VinoID] = h
	}

	out := make([]RatableVino, 0, len(vina))
	for _, v := range vina {
		rv := RatableVino{Vino: v}
		if h, ok := byVino[v.ID]; ok {
			h := h
			rv.Moje = &h
		}
		out = append(out, rv)
	}
	return out, nil
}

// RatingEntry is one row of the batched rating form: the raw score text is
// kept as submitted so empty and malformed inputs stay distinguishable.
type RatingEntry struct {
	VinoID   uint
	Body     string
	Poznamka string
}

// SubmitRatings applies a whole rating batch in one transaction. Per entry:
// a missing or self-owned wine is skipped, a non-numeric score is skipped,
// a numeric score is clamped to [0,100] and upserted, an empty score clears
// the rater's existing rating. Submitting the same batch twice leaves the
// rating set unchanged.
func (s *VinoService) SubmitRatings(raterID uint, entries []RatingEntry) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			var vino models.Vino
			err := tx.First(&vino, e.VinoID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if vino.VinarID == raterID {
				// Self-rating is never stored, whatever the form says.
				continue
			}

			var existing models.Hodnoceni
			err = tx.Where("vino_id = ? AND hodnotitel_id = ?", e.VinoID, raterID).
				First(&existing).Error
			has := err == nil
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			raw := strings.TrimSpace(e.Body)
			if raw == "" {
				// Empty score means "clear my rating".
				if has {
					if err := tx.Delete(&existing).Error; err != nil {
						return err
					}
				}
				continue
			}

			body, err := strconv.Atoi(raw)
			if err != nil {
				logger.Debugf("skipping malformed score %q for wine %d", raw, e.VinoID)
				continue
			}
			if body < 0 {
				body = 0
			}
			if body > 100 {
				body = 100
			}

			poznamka := strings.TrimSpace(e.Poznamka)
			if has {
				existing.Body = body
				existing.Poznamka = poznamka
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			} else {
				h := models.Hodnoceni{
					Body:         body,
					Poznamka:     poznamka,
					VinoID:       e.VinoID,
					HodnotitelID: raterID,
				}
				if err := tx.Create(&h).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// GetOwned loads a wine only when it belongs to the given producer.
// Ownership is re-checked on every call, never cached from a page load.
func (s *VinoService) GetOwned(vinoID, vinarID uint) (*models.Vino, error) {
	var vino models.Vino
	err := database.DB.Where("id = ? AND vinar_id = ?", vinoID, vinarID).First(&vino).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVinoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &vino, nil
}

func (s *VinoService) Create(vino *models.Vino) error {
	return database.DB.Create(vino).Error
}

func (s *VinoService) Update(vino *models.Vino) error {
	return database.DB.Save(vino).Error
}

// DeleteOwned removes a producer's wine and its ratings in one transaction.
func (s *VinoService) DeleteOwned(vinoID, vinarID uint) error {
	if _, err := s.GetOwned(vinoID, vinarID); err != nil {
		return err
	}
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vino_id = ?", vinoID).Delete(&models.Hodnoceni{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Vino{}, vinoID).Error
	})
}
