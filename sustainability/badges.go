package sustainability

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"github.com/rewear/api-go/models"
)

// UserStats is the state every badge predicate is evaluated against: the
// just-updated ledger totals plus the user's post history.
type UserStats struct {
	EcoPoints     int64
	WaterSaved    decimal.Decimal
	CarbonReduced decimal.Decimal
	PostCount     int64
	AverageLikes  float64
}

type predicate func(UserStats) bool

// predicates maps every known requirement to its rule. The requirement set is
// closed; a catalog row with an unknown requirement is skipped and logged,
// never awarded.
var predicates = map[models.Requirement]predicate{
	models.RequirementPostsCount50:  func(s UserStats) bool { return s.PostCount >= 50 },
	models.RequirementPostsCount100: func(s UserStats) bool { return s.PostCount >= 100 },
	models.RequirementEcoPoints1000: func(s UserStats) bool { return s.EcoPoints >= 1000 },
	models.RequirementWaterSaved200: func(s UserStats) bool {
		return s.WaterSaved.GreaterThanOrEqual(decimal.NewFromInt(200))
	},
	models.RequirementCarbonReduced100: func(s UserStats) bool {
		return s.CarbonReduced.GreaterThanOrEqual(decimal.NewFromInt(100))
	},
	models.RequirementLikesAverage100: func(s UserStats) bool {
		// A user with no posts has no average and never qualifies.
		return s.PostCount > 0 && s.AverageLikes >= 100
	},
}

var catalog = []models.Badge{
	{Name: "Fashion Saver", Description: "Shared 50 secondhand fashion finds.", Icon: "recycle", Requirement: models.RequirementPostsCount50},
	{Name: "Circular Hero", Description: "Shared 100 secondhand fashion finds.", Icon: "infinity", Requirement: models.RequirementPostsCount100},
	{Name: "Green Icon", Description: "Collected 1000 eco-points.", Icon: "leaf", Requirement: models.RequirementEcoPoints1000},
	{Name: "Water Guardian", Description: "Saved 200 litres of water by reusing clothes.", Icon: "droplet", Requirement: models.RequirementWaterSaved200},
	{Name: "Carbon Cutter", Description: "Kept 100 kg of CO2 out of the air.", Icon: "wind", Requirement: models.RequirementCarbonReduced100},
	{Name: "Trendsetter", Description: "Averages 100 likes per post.", Icon: "flame", Requirement: models.RequirementLikesAverage100},
}

// SeedCatalog inserts the badge catalog if it is not there yet. Safe to run
// from several instances at once: the unique index on badge name together
// with ON CONFLICT DO NOTHING keeps racing initializations from producing
// duplicate rows.
func (s *Service) SeedCatalog() error {
	badges := make([]models.Badge, len(catalog))
	copy(badges, catalog)

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&badges).Error
}
