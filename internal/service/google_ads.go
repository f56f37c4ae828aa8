package service

import (
	"context"

	"go.uber.org/zap"

	"adboard/internal/apperror"
	"adboard/internal/models"
	"adboard/internal/query"
	"adboard/internal/repository"
)

// AdListResult is a hydrated listing page plus the unbounded match count.
type AdListResult[T any] struct {
	Records    []T
	TotalCount int64
}

func (r AdListResult[T]) RecordCount() int {
	return len(r.Records)
}

// GoogleAdService serves the google ad listing and its tag assignments.
type GoogleAdService struct {
	Store  repository.Store
	Logger *zap.Logger
}

func googleAdKeyQuery(f query.AdFilters) query.KeyQuery {
	q := query.KeyQuery{
		Table: "google_ads",
		Key:   "google_ads.id",
		Order: []query.OrderColumn{
			{Column: "google_ads.created_at", Desc: true},
			{Column: "google_ads.id", Desc: true},
		},
	}
	if len(f.Tags) > 0 {
		q.Joins = append(q.Joins,
			"JOIN google_ad_tags ON google_ad_tags.ad_id = google_ads.id",
			"JOIN google_tags ON google_tags.id = google_ad_tags.tag_id",
		)
	}
	if len(f.Genders) > 0 || len(f.Political) > 0 {
		q.Joins = append(q.Joins,
			"JOIN google_bots ON google_bots.id = google_ads.bot_id",
		)
	}
	q.Fragments = f.Fragments(query.AdColumns{
		TagName:      "google_tags.name",
		BotID:        "google_ads.bot_id",
		BotGender:    "google_bots.gender",
		BotPolitical: "google_bots.political_ranking",
		CreatedAt:    "google_ads.created_at",
	})
	return q
}

// List pages the google ads matching the filters, newest first. A negative
// window returns an empty page without touching the store.
func (s *GoogleAdService) List(ctx context.Context, f query.AdFilters, w query.Window) (AdListResult[models.GoogleAd], error) {
	if w.Offset < 0 || w.Limit < 0 {
		return AdListResult[models.GoogleAd]{}, nil
	}
	res, err := query.Run(ctx, s.Store, googleAdKeyQuery(f), w)
	if err != nil {
		return AdListResult[models.GoogleAd]{}, err
	}
	out := AdListResult[models.GoogleAd]{TotalCount: res.TotalCount}
	if len(res.Keys) == 0 {
		return out, nil
	}
	ads, err := s.Store.ListGoogleAdsByIDs(ctx, res.Keys)
	if err != nil {
		return AdListResult[models.GoogleAd]{}, err
	}
	out.Records = query.SortByKeys(ads, func(a models.GoogleAd) string { return a.ID }, res.Keys)
	return out, nil
}

func (s *GoogleAdService) GetByID(ctx context.Context, id string) (*models.GoogleAd, error) {
	ad, err := s.Store.GetGoogleAdByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, apperror.NotFound("google ad", id)
	}
	return ad, nil
}

// AttachTag assigns a tag to an ad and returns the refreshed ad. Re-attaching
// an already assigned tag is a no-op success.
func (s *GoogleAdService) AttachTag(ctx context.Context, adID string, tagID int64) (*models.GoogleAd, error) {
	if err := s.Store.AttachGoogleAdTag(ctx, adID, tagID); err != nil {
		return nil, apperror.FromStore(err)
	}
	return s.GetByID(ctx, adID)
}

// DetachTag removes a tag assignment and returns the refreshed ad. Detaching
// a tag that was never attached is a no-op success.
func (s *GoogleAdService) DetachTag(ctx context.Context, adID string, tagID int64) (*models.GoogleAd, error) {
	if err := s.Store.DetachGoogleAdTag(ctx, adID, tagID); err != nil {
		return nil, apperror.FromStore(err)
	}
	return s.GetByID(ctx, adID)
}
