package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"adboard/internal/models"
	"adboard/internal/query"
)

// Store is the persistence contract for both ad sources. Listing queries go
// through the two-phase key contract (query.KeyStore) plus the per-entity
// hydration methods; mutations are limited to tags and tag assignments.
type Store interface {
	query.KeyStore

	// Google source.
	ListGoogleAdsByIDs(ctx context.Context, ids []string) ([]models.GoogleAd, error)
	GetGoogleAdByID(ctx context.Context, id string) (*models.GoogleAd, error)
	ListGoogleBots(ctx context.Context) ([]models.GoogleBot, error)
	GetGoogleBotByUsername(ctx context.Context, username string) (*models.GoogleBot, error)
	ListGoogleTags(ctx context.Context) ([]models.GoogleTag, error)
	GetGoogleTagByID(ctx context.Context, id int64) (*models.GoogleTag, error)
	CreateGoogleTag(ctx context.Context, name string) (*models.GoogleTag, error)
	AttachGoogleAdTag(ctx context.Context, adID string, tagID int64) error
	DetachGoogleAdTag(ctx context.Context, adID string, tagID int64) error

	// Twitter source.
	ListTwitterSightingsByIDs(ctx context.Context, ids []string) ([]models.TwitterAdSighting, error)
	ListTwitterAdsByIDs(ctx context.Context, ids []string) ([]models.TwitterAd, error)
	GetTwitterAdByID(ctx context.Context, id string) (*models.TwitterAd, error)
	ListTwitterBots(ctx context.Context) ([]models.TwitterBot, error)
	GetTwitterBotByUsername(ctx context.Context, username string) (*models.TwitterBot, error)
	ListTwitterTags(ctx context.Context) ([]models.TwitterTag, error)
	GetTwitterTagByID(ctx context.Context, id int64) (*models.TwitterTag, error)
	CreateTwitterTag(ctx context.Context, name string) (*models.TwitterTag, error)
	AttachTwitterAdTag(ctx context.Context, adID string, tagID int64) error
	DetachTwitterAdTag(ctx context.Context, adID string, tagID int64) error

	// Aggregate statistics.
	GoogleBotAlignmentStats(ctx context.Context) ([]AlignmentGroup, error)
	GoogleCategoryStats(ctx context.Context) ([]LabelCount, error)
	GoogleCategoryBotStats(ctx context.Context) ([]CategoryBotRow, error)
	GoogleMonthlyAdCounts(ctx context.Context, month time.Time) ([]DailyAdCount, error)
	GoogleAdSummaryStats(ctx context.Context) (GoogleAdSummary, error)
	TwitterBotAlignmentStats(ctx context.Context) ([]AlignmentGroup, error)
	TwitterCategoryStats(ctx context.Context) ([]LabelCount, error)
	TwitterCategoryBotStats(ctx context.Context) ([]CategoryBotRow, error)
	TwitterMonthlyAdCounts(ctx context.Context, month time.Time) ([]DailyAdCount, error)
	TwitterAdSummaryStats(ctx context.Context) (TwitterAdSummary, error)
}

// LabelCount is one bucket of a grouped count.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// AlignmentGroup is one demographic axis (political ranking, gender) with its
// per-value bot counts.
type AlignmentGroup struct {
	Type string       `json:"type"`
	Data []LabelCount `json:"data"`
}

// CategoryBotRow aggregates bot attributes over the ads carrying one tag.
// AvgGender is only populated for the google source, where gender is scored
// male=1, female=0, other=0.5 for averaging.
type CategoryBotRow struct {
	Label        string           `json:"label"`
	AvgGender    *decimal.Decimal `json:"avgGender,omitempty"`
	AvgPolitical decimal.Decimal  `json:"avgPolitical"`
}

type DailyAdCount struct {
	Date  time.Time `json:"date"`
	Count int64     `json:"count"`
}

type GoogleAdSummary struct {
	AdTotal  int64           `json:"adTotal"`
	AdTagged int64           `json:"adTagged"`
	AdPerBot decimal.Decimal `json:"adPerBot"`
}

type TwitterAdSummary struct {
	AdUniqueCount  int64           `json:"adUniqueCount"`
	AdSeenCount    int64           `json:"adSeenCount"`
	AdTagged       int64           `json:"adTagged"`
	AdUniquePerBot decimal.Decimal `json:"adUniquePerBot"`
	AdSeenPerBot   decimal.Decimal `json:"adSeenPerBot"`
}
