package service

import (
	"context"

	"go.uber.org/zap"

	"adboard/internal/apperror"
	"adboard/internal/models"
	"adboard/internal/query"
	"adboard/internal/repository"
)

// TwitterAdService serves the twitter listings in both granularities:
// per-sighting (one record each time a bot saw an ad) and per-unique-ad.
type TwitterAdService struct {
	Store  repository.Store
	Logger *zap.Logger
}

func twitterSightingKeyQuery(f query.AdFilters) query.KeyQuery {
	q := query.KeyQuery{
		Table: "twitter_ad_sightings",
		Key:   "twitter_ad_sightings.id",
		Order: []query.OrderColumn{
			{Column: "twitter_ad_sightings.created_at", Desc: true},
			{Column: "twitter_ad_sightings.id", Desc: true},
		},
	}
	if len(f.Tags) > 0 {
		q.Joins = append(q.Joins,
			"JOIN twitter_ad_tags ON twitter_ad_tags.ad_id = twitter_ad_sightings.ad_id",
			"JOIN twitter_tags ON twitter_tags.id = twitter_ad_tags.tag_id",
		)
	}
	if len(f.BotTypes) > 0 || len(f.Political) > 0 {
		q.Joins = append(q.Joins,
			"JOIN twitter_bots ON twitter_bots.id = twitter_ad_sightings.bot_id",
		)
	}
	if len(f.AdTypes) > 0 {
		q.Joins = append(q.Joins,
			"JOIN twitter_ads ON twitter_ads.id = twitter_ad_sightings.ad_id",
		)
	}
	q.Fragments = f.Fragments(query.AdColumns{
		TagName:      "twitter_tags.name",
		BotID:        "twitter_ad_sightings.bot_id",
		BotPolitical: "twitter_bots.political_ranking",
		BotType:      "twitter_bots.type",
		AdType:       "twitter_ads.ad_type",
		CreatedAt:    "twitter_ad_sightings.created_at",
	})
	return q
}

func twitterUniqueKeyQuery(f query.AdFilters) query.KeyQuery {
	q := query.KeyQuery{
		Table: "twitter_ads",
		Key:   "twitter_ads.id",
		Order: []query.OrderColumn{
			{Column: "twitter_ads.id", Desc: true},
		},
	}
	if len(f.Tags) > 0 {
		q.Joins = append(q.Joins,
			"JOIN twitter_ad_tags ON twitter_ad_tags.ad_id = twitter_ads.id",
			"JOIN twitter_tags ON twitter_tags.id = twitter_ad_tags.tag_id",
		)
	}
	// Bot and date dimensions live on the sightings, so the unique listing
	// reaches them through the sighting join.
	if len(f.Bots) > 0 || len(f.BotTypes) > 0 || len(f.Political) > 0 ||
		f.StartDate != nil || f.EndDate != nil {
		q.Joins = append(q.Joins,
			"JOIN twitter_ad_sightings ON twitter_ad_sightings.ad_id = twitter_ads.id",
		)
	}
	if len(f.BotTypes) > 0 || len(f.Political) > 0 {
		q.Joins = append(q.Joins,
			"JOIN twitter_bots ON twitter_bots.id = twitter_ad_sightings.bot_id",
		)
	}
	q.Fragments = f.Fragments(query.AdColumns{
		TagName:      "twitter_tags.name",
		BotID:        "twitter_ad_sightings.bot_id",
		BotPolitical: "twitter_bots.political_ranking",
		BotType:      "twitter_bots.type",
		AdType:       "twitter_ads.ad_type",
		CreatedAt:    "twitter_ad_sightings.created_at",
	})
	return q
}

// ListSightings pages individual ad sightings, newest first. A negative
// window returns an empty page without touching the store.
func (s *TwitterAdService) ListSightings(ctx context.Context, f query.AdFilters, w query.Window) (AdListResult[models.TwitterAdSighting], error) {
	if w.Offset < 0 || w.Limit < 0 {
		return AdListResult[models.TwitterAdSighting]{}, nil
	}
	res, err := query.Run(ctx, s.Store, twitterSightingKeyQuery(f), w)
	if err != nil {
		return AdListResult[models.TwitterAdSighting]{}, err
	}
	out := AdListResult[models.TwitterAdSighting]{TotalCount: res.TotalCount}
	if len(res.Keys) == 0 {
		return out, nil
	}
	sightings, err := s.Store.ListTwitterSightingsByIDs(ctx, res.Keys)
	if err != nil {
		return AdListResult[models.TwitterAdSighting]{}, err
	}
	out.Records = query.SortByKeys(sightings, func(sg models.TwitterAdSighting) string { return sg.ID }, res.Keys)
	return out, nil
}

// ListUnique pages deduplicated ads. An ad sighted by many bots matches when
// any sighting satisfies the bot and date filters, but appears once.
func (s *TwitterAdService) ListUnique(ctx context.Context, f query.AdFilters, w query.Window) (AdListResult[models.TwitterAd], error) {
	if w.Offset < 0 || w.Limit < 0 {
		return AdListResult[models.TwitterAd]{}, nil
	}
	res, err := query.Run(ctx, s.Store, twitterUniqueKeyQuery(f), w)
	if err != nil {
		return AdListResult[models.TwitterAd]{}, err
	}
	out := AdListResult[models.TwitterAd]{TotalCount: res.TotalCount}
	if len(res.Keys) == 0 {
		return out, nil
	}
	ads, err := s.Store.ListTwitterAdsByIDs(ctx, res.Keys)
	if err != nil {
		return AdListResult[models.TwitterAd]{}, err
	}
	out.Records = query.SortByKeys(ads, func(a models.TwitterAd) string { return a.ID }, res.Keys)
	return out, nil
}

func (s *TwitterAdService) GetByID(ctx context.Context, id string) (*models.TwitterAd, error) {
	ad, err := s.Store.GetTwitterAdByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, apperror.NotFound("twitter ad", id)
	}
	return ad, nil
}

func (s *TwitterAdService) AttachTag(ctx context.Context, adID string, tagID int64) (*models.TwitterAd, error) {
	if err := s.Store.AttachTwitterAdTag(ctx, adID, tagID); err != nil {
		return nil, apperror.FromStore(err)
	}
	return s.GetByID(ctx, adID)
}

func (s *TwitterAdService) DetachTag(ctx context.Context, adID string, tagID int64) (*models.TwitterAd, error) {
	if err := s.Store.DetachTwitterAdTag(ctx, adID, tagID); err != nil {
		return nil, apperror.FromStore(err)
	}
	return s.GetByID(ctx, adID)
}
