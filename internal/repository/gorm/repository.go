package gormrepository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"adboard/internal/models"
	"adboard/internal/query"
	"adboard/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// --- two-phase key contract -------------------------------------------------

type keyRow struct {
	RecordKey string `gorm:"column:record_key"`
}

// FindKeys resolves phase 1 of a listing: the distinct, ordered key page for
// the window. Only key and order columns are selected, so one-to-many joins
// brought in for the predicates cannot duplicate page rows.
func (s *Store) FindKeys(ctx context.Context, q query.KeyQuery, offset, limit int) ([]string, error) {
	db := s.db.WithContext(ctx).Table(q.Table)
	for _, join := range q.Joins {
		db = db.Joins(join)
	}
	for _, f := range q.Fragments {
		db = db.Where(f.Expr, f.Args...)
	}
	var rows []keyRow
	err := db.Select(q.SelectClause()).
		Order(q.OrderClause()).
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = row.RecordKey
	}
	return keys, nil
}

// CountKeys runs the same predicates without a window and counts distinct
// keys.
func (s *Store) CountKeys(ctx context.Context, q query.KeyQuery) (int64, error) {
	db := s.db.WithContext(ctx).Table(q.Table)
	for _, join := range q.Joins {
		db = db.Joins(join)
	}
	for _, f := range q.Fragments {
		db = db.Where(f.Expr, f.Args...)
	}
	var count int64
	if err := db.Distinct(q.Key).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --- google source ----------------------------------------------------------

func (s *Store) ListGoogleAdsByIDs(ctx context.Context, ids []string) ([]models.GoogleAd, error) {
	var ads []models.GoogleAd
	err := s.db.WithContext(ctx).
		Model(&models.GoogleAd{}).
		Preload("Bot").
		Preload("AdTags.Tag").
		Where("id IN ?", ids).
		Find(&ads).Error
	if err != nil {
		return nil, err
	}
	return ads, nil
}

func (s *Store) GetGoogleAdByID(ctx context.Context, id string) (*models.GoogleAd, error) {
	var ad models.GoogleAd
	err := s.db.WithContext(ctx).
		Model(&models.GoogleAd{}).
		Preload("Bot").
		Preload("AdTags.Tag").
		Where("id = ?", id).
		First(&ad).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (s *Store) ListGoogleBots(ctx context.Context) ([]models.GoogleBot, error) {
	var bots []models.GoogleBot
	if err := s.db.WithContext(ctx).
		Model(&models.GoogleBot{}).
		Order("username asc").
		Find(&bots).Error; err != nil {
		return nil, err
	}
	return bots, nil
}

func (s *Store) GetGoogleBotByUsername(ctx context.Context, username string) (*models.GoogleBot, error) {
	var bot models.GoogleBot
	err := s.db.WithContext(ctx).
		Model(&models.GoogleBot{}).
		Where("username = ?", username).
		First(&bot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

func (s *Store) ListGoogleTags(ctx context.Context) ([]models.GoogleTag, error) {
	var tags []models.GoogleTag
	if err := s.db.WithContext(ctx).
		Model(&models.GoogleTag{}).
		Order("id asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Store) GetGoogleTagByID(ctx context.Context, id int64) (*models.GoogleTag, error) {
	var tag models.GoogleTag
	err := s.db.WithContext(ctx).
		Model(&models.GoogleTag{}).
		Where("id = ?", id).
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateGoogleTag inserts a tag unless one with the same name exists, then
// returns the surviving row. Duplicate names are a no-op success.
func (s *Store) CreateGoogleTag(ctx context.Context, name string) (*models.GoogleTag, error) {
	tag := models.GoogleTag{Name: name}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tag).Error
	if err != nil {
		return nil, err
	}
	var existing models.GoogleTag
	if err := s.db.WithContext(ctx).
		Model(&models.GoogleTag{}).
		Where("name = ?", name).
		First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// AttachGoogleAdTag creates the assignment row; a duplicate (adId, tagId)
// pair hits the composite primary key and is ignored.
func (s *Store) AttachGoogleAdTag(ctx context.Context, adID string, tagID int64) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.GoogleAdTag{AdID: adID, TagID: tagID}).Error
}

// DetachGoogleAdTag deletes the assignment row. Zero rows affected is not an
// error.
func (s *Store) DetachGoogleAdTag(ctx context.Context, adID string, tagID int64) error {
	return s.db.WithContext(ctx).
		Where("ad_id = ? AND tag_id = ?", adID, tagID).
		Delete(&models.GoogleAdTag{}).Error
}

// --- twitter source ---------------------------------------------------------

func (s *Store) ListTwitterSightingsByIDs(ctx context.Context, ids []string) ([]models.TwitterAdSighting, error) {
	var sightings []models.TwitterAdSighting
	err := s.db.WithContext(ctx).
		Model(&models.TwitterAdSighting{}).
		Preload("Bot").
		Preload("Ad").
		Preload("Ad.AdTags.Tag").
		Where("id IN ?", ids).
		Find(&sightings).Error
	if err != nil {
		return nil, err
	}
	return sightings, nil
}

func (s *Store) ListTwitterAdsByIDs(ctx context.Context, ids []string) ([]models.TwitterAd, error) {
	var ads []models.TwitterAd
	err := s.db.WithContext(ctx).
		Model(&models.TwitterAd{}).
		Preload("Sightings.Bot").
		Preload("AdTags.Tag").
		Where("id IN ?", ids).
		Find(&ads).Error
	if err != nil {
		return nil, err
	}
	return ads, nil
}

func (s *Store) GetTwitterAdByID(ctx context.Context, id string) (*models.TwitterAd, error) {
	var ad models.TwitterAd
	err := s.db.WithContext(ctx).
		Model(&models.TwitterAd{}).
		Preload("Sightings.Bot").
		Preload("AdTags.Tag").
		Where("id = ?", id).
		First(&ad).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (s *Store) ListTwitterBots(ctx context.Context) ([]models.TwitterBot, error) {
	var bots []models.TwitterBot
	if err := s.db.WithContext(ctx).
		Model(&models.TwitterBot{}).
		Order("username asc").
		Find(&bots).Error; err != nil {
		return nil, err
	}
	return bots, nil
}

func (s *Store) GetTwitterBotByUsername(ctx context.Context, username string) (*models.TwitterBot, error) {
	var bot models.TwitterBot
	err := s.db.WithContext(ctx).
		Model(&models.TwitterBot{}).
		Where("username = ?", username).
		First(&bot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

func (s *Store) ListTwitterTags(ctx context.Context) ([]models.TwitterTag, error) {
	var tags []models.TwitterTag
	if err := s.db.WithContext(ctx).
		Model(&models.TwitterTag{}).
		Order("id asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Store) GetTwitterTagByID(ctx context.Context, id int64) (*models.TwitterTag, error) {
	var tag models.TwitterTag
	err := s.db.WithContext(ctx).
		Model(&models.TwitterTag{}).
		Where("id = ?", id).
		First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *Store) CreateTwitterTag(ctx context.Context, name string) (*models.TwitterTag, error) {
	tag := models.TwitterTag{Name: name}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&tag).Error
	if err != nil {
		return nil, err
	}
	var existing models.TwitterTag
	if err := s.db.WithContext(ctx).
		Model(&models.TwitterTag{}).
		Where("name = ?", name).
		First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (s *Store) AttachTwitterAdTag(ctx context.Context, adID string, tagID int64) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TwitterAdTag{AdID: adID, TagID: tagID}).Error
}

func (s *Store) DetachTwitterAdTag(ctx context.Context, adID string, tagID int64) error {
	return s.db.WithContext(ctx).
		Where("ad_id = ? AND tag_id = ?", adID, tagID).
		Delete(&models.TwitterAdTag{}).Error
}

// --- aggregate statistics ---------------------------------------------------

func (s *Store) GoogleBotAlignmentStats(ctx context.Context) ([]repository.AlignmentGroup, error) {
	var political []repository.LabelCount
	err := s.db.WithContext(ctx).
		Model(&models.GoogleBot{}).
		Select("CAST(political_ranking AS varchar) AS label, COUNT(id) AS count").
		Group("political_ranking").
		Order("political_ranking").
		Scan(&political).Error
	if err != nil {
		return nil, err
	}
	var gender []repository.LabelCount
	err = s.db.WithContext(ctx).
		Model(&models.GoogleBot{}).
		Select("gender AS label, COUNT(id) AS count").
		Group("gender").
		Order("gender").
		Scan(&gender).Error
	if err != nil {
		return nil, err
	}
	return []repository.AlignmentGroup{
		{Type: "political ranking", Data: political},
		{Type: "gender", Data: gender},
	}, nil
}

func (s *Store) GoogleCategoryStats(ctx context.Context) ([]repository.LabelCount, error) {
	var rows []repository.LabelCount
	err := s.db.WithContext(ctx).
		Table("google_ads").
		Select("COALESCE(google_tags.name, 'uncategorised') AS label, COUNT(google_ads.id) AS count").
		Joins("LEFT JOIN google_ad_tags ON google_ad_tags.ad_id = google_ads.id").
		Joins("LEFT JOIN google_tags ON google_tags.id = google_ad_tags.tag_id").
		Group("google_tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) GoogleCategoryBotStats(ctx context.Context) ([]repository.CategoryBotRow, error) {
	var rows []repository.CategoryBotRow
	err := s.db.WithContext(ctx).
		Table("google_ads").
		Select(`COALESCE(google_tags.name, 'uncategorised') AS label,
			SUM(CASE WHEN google_bots.gender = 'Male' THEN 1
				WHEN google_bots.gender = 'Female' THEN 0
				ELSE 0.5 END) / COUNT(google_ads.id) AS avg_gender,
			AVG(google_bots.political_ranking) AS avg_political`).
		Joins("LEFT JOIN google_ad_tags ON google_ad_tags.ad_id = google_ads.id").
		Joins("LEFT JOIN google_tags ON google_tags.id = google_ad_tags.tag_id").
		Joins("LEFT JOIN google_bots ON google_bots.id = google_ads.bot_id").
		Group("google_tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GoogleMonthlyAdCounts returns one row per day of the month containing
// month, counting ads observed that day. Days without ads appear with a zero
// count via the generate_series scaffold.
func (s *Store) GoogleMonthlyAdCounts(ctx context.Context, month time.Time) ([]repository.DailyAdCount, error) {
	return s.monthlyAdCounts(ctx, "google_ads", month)
}

func (s *Store) monthlyAdCounts(ctx context.Context, table string, month time.Time) ([]repository.DailyAdCount, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	var rows []repository.DailyAdCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT g.date AS date, COUNT(a.created_at) AS count
		FROM generate_series(?::timestamptz, ?::timestamptz, interval '1 day') g(date)
		LEFT JOIN `+table+` a ON a.created_at >= g.date
			AND a.created_at < g.date + interval '1 day'
		GROUP BY 1
		ORDER BY 1`, start, end).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) GoogleAdSummaryStats(ctx context.Context) (repository.GoogleAdSummary, error) {
	var summary repository.GoogleAdSummary
	if err := s.db.WithContext(ctx).Model(&models.GoogleAd{}).Count(&summary.AdTotal).Error; err != nil {
		return repository.GoogleAdSummary{}, err
	}
	if err := s.db.WithContext(ctx).
		Model(&models.GoogleAdTag{}).
		Distinct("ad_id").
		Count(&summary.AdTagged).Error; err != nil {
		return repository.GoogleAdSummary{}, err
	}
	var botCount int64
	if err := s.db.WithContext(ctx).Model(&models.GoogleBot{}).Count(&botCount).Error; err != nil {
		return repository.GoogleAdSummary{}, err
	}
	summary.AdPerBot = perBot(summary.AdTotal, botCount)
	return summary, nil
}

func (s *Store) TwitterBotAlignmentStats(ctx context.Context) ([]repository.AlignmentGroup, error) {
	var political []repository.LabelCount
	err := s.db.WithContext(ctx).
		Model(&models.TwitterBot{}).
		Select("CAST(political_ranking AS varchar) AS label, COUNT(id) AS count").
		Group("political_ranking").
		Order("political_ranking").
		Scan(&political).Error
	if err != nil {
		return nil, err
	}
	return []repository.AlignmentGroup{
		{Type: "political ranking", Data: political},
	}, nil
}

func (s *Store) TwitterCategoryStats(ctx context.Context) ([]repository.LabelCount, error) {
	var rows []repository.LabelCount
	err := s.db.WithContext(ctx).
		Table("twitter_ads").
		Select("COALESCE(twitter_tags.name, 'uncategorised') AS label, COUNT(twitter_ads.id) AS count").
		Joins("LEFT JOIN twitter_ad_tags ON twitter_ad_tags.ad_id = twitter_ads.id").
		Joins("LEFT JOIN twitter_tags ON twitter_tags.id = twitter_ad_tags.tag_id").
		Group("twitter_tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) TwitterCategoryBotStats(ctx context.Context) ([]repository.CategoryBotRow, error) {
	var rows []repository.CategoryBotRow
	err := s.db.WithContext(ctx).
		Table("twitter_ads").
		Select(`COALESCE(twitter_tags.name, 'uncategorised') AS label,
			AVG(twitter_bots.political_ranking) AS avg_political`).
		Joins("LEFT JOIN twitter_ad_tags ON twitter_ad_tags.ad_id = twitter_ads.id").
		Joins("LEFT JOIN twitter_tags ON twitter_tags.id = twitter_ad_tags.tag_id").
		Joins("LEFT JOIN twitter_ad_sightings ON twitter_ad_sightings.ad_id = twitter_ads.id").
		Joins("LEFT JOIN twitter_bots ON twitter_bots.id = twitter_ad_sightings.bot_id").
		Group("twitter_tags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) TwitterMonthlyAdCounts(ctx context.Context, month time.Time) ([]repository.DailyAdCount, error) {
	return s.monthlyAdCounts(ctx, "twitter_ad_sightings", month)
}

func (s *Store) TwitterAdSummaryStats(ctx context.Context) (repository.TwitterAdSummary, error) {
	var summary repository.TwitterAdSummary
	if err := s.db.WithContext(ctx).Model(&models.TwitterAd{}).Count(&summary.AdUniqueCount).Error; err != nil {
		return repository.TwitterAdSummary{}, err
	}
	if err := s.db.WithContext(ctx).Model(&models.TwitterAdSighting{}).Count(&summary.AdSeenCount).Error; err != nil {
		return repository.TwitterAdSummary{}, err
	}
	if err := s.db.WithContext(ctx).
		Model(&models.TwitterAdTag{}).
		Distinct("ad_id").
		Count(&summary.AdTagged).Error; err != nil {
		return repository.TwitterAdSummary{}, err
	}
	var botCount int64
	if err := s.db.WithContext(ctx).Model(&models.TwitterBot{}).Count(&botCount).Error; err != nil {
		return repository.TwitterAdSummary{}, err
	}
	summary.AdUniquePerBot = perBot(summary.AdUniqueCount, botCount)
	summary.AdSeenPerBot = perBot(summary.AdSeenCount, botCount)
	return summary, nil
}

func perBot(total, bots int64) decimal.Decimal {
	if bots == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(total).DivRound(decimal.NewFromInt(bots), 4)
}
