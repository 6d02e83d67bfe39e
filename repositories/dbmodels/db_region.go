package dbmodels

import (
	"time"

	"github.com/guregu/null/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/checkmarble/challenge-backend/models"
	"github.com/checkmarble/challenge-backend/utils"
)

const TABLE_REGIONS = "regions"

// Region fields written by imports. The pseudo (display alias) is never part of an import write.
const (
	RegionFieldName             = "name"
	RegionFieldSlug             = "slug"
	RegionFieldScoringMode      = "scoring_mode"
	RegionFieldCurrentScoreObj  = "current_score_obj"
	RegionFieldCurrentScoreProg = "current_score_prog"
	RegionFieldNbStores         = "nb_stores"
	RegionFieldLastUpdate       = "last_update"
	RegionFieldPseudo           = "pseudo"
)

type DBRegion struct {
	Slug             string      `db:"slug"`
	Name             string      `db:"name"`
	ScoringMode      string      `db:"scoring_mode"`
	CurrentScoreObj  float64     `db:"current_score_obj"`
	CurrentScoreProg float64     `db:"current_score_prog"`
	NbStores         int         `db:"nb_stores"`
	LastUpdate       time.Time   `db:"last_update"`
	Pseudo           pgtype.Text `db:"pseudo"`
}

var SelectRegionColumn = utils.ColumnList[DBRegion]()

func AdaptRegion(db DBRegion) (models.RegionAggregate, error) {
	return models.RegionAggregate{
		RegionScoreUpdate: models.RegionScoreUpdate{
			RegionSlug:      db.Slug,
			RegionName:      db.Name,
			Mode:            models.ScoringMode(db.ScoringMode),
			CurrentScore:    db.CurrentScoreObj,
			ProgressPercent: db.CurrentScoreProg,
			StoreCount:      db.NbStores,
			LastUpdate:      db.LastUpdate,
		},
		Alias: null.NewString(db.Pseudo.String, db.Pseudo.Valid),
	}, nil
}

// RegionScoreFields is the field merge an import applies on regions/{slug}.
func RegionScoreFields(region models.RegionScoreUpdate) map[string]any {
	return map[string]any{
		RegionFieldName:             region.RegionName,
		RegionFieldSlug:             region.RegionSlug,
		RegionFieldScoringMode:      string(region.Mode),
		RegionFieldCurrentScoreObj:  region.CurrentScore,
		RegionFieldCurrentScoreProg: region.ProgressPercent,
		RegionFieldNbStores:         region.StoreCount,
		RegionFieldLastUpdate:       region.LastUpdate,
	}
}

// DocRegion is the Firestore shape of regions/{slug}.
type DocRegion struct {
	Name             string    `firestore:"name"`
	Slug             string    `firestore:"slug"`
	ScoringMode      string    `firestore:"scoring_mode"`
	CurrentScoreObj  float64   `firestore:"current_score_obj"`
	CurrentScoreProg float64   `firestore:"current_score_prog"`
	NbStores         int       `firestore:"nb_stores"`
	LastUpdate       time.Time `firestore:"last_update"`
	Pseudo           *string   `firestore:"pseudo"`
}

func AdaptDocRegion(doc DocRegion) models.RegionAggregate {
	return models.RegionAggregate{
		RegionScoreUpdate: models.RegionScoreUpdate{
			RegionSlug:      doc.Slug,
			RegionName:      doc.Name,
			Mode:            models.ScoringMode(doc.ScoringMode),
			CurrentScore:    doc.CurrentScoreObj,
			ProgressPercent: doc.CurrentScoreProg,
			StoreCount:      doc.NbStores,
			LastUpdate:      doc.LastUpdate,
		},
		Alias: null.StringFromPtr(doc.Pseudo),
	}
}
