package service

import (
	"context"
	"testing"
	"time"

	"adboard/internal/models"
	"adboard/internal/query"
)

func TestTwitterListSightings_PreservesKeyOrder(t *testing.T) {
	store := newStubStore()
	store.keys = []string{"s2", "s1"}
	store.total = 2
	store.sightings["s1"] = models.TwitterAdSighting{ID: "s1"}
	store.sightings["s2"] = models.TwitterAdSighting{ID: "s2"}

	svc := &TwitterAdService{Store: store}
	res, err := svc.ListSightings(context.Background(), query.AdFilters{}, query.Window{Limit: 30})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.Records[0].ID != "s2" || res.Records[1].ID != "s1" {
		t.Fatalf("order=%v,%v", res.Records[0].ID, res.Records[1].ID)
	}
	if store.lastQuery.Table != "twitter_ad_sightings" {
		t.Fatalf("table=%q", store.lastQuery.Table)
	}
}

func TestTwitterListUnique_QueriesAdTable(t *testing.T) {
	store := newStubStore()
	store.keys = []string{"a1"}
	store.total = 1
	store.twitterAds["a1"] = models.TwitterAd{ID: "a1"}

	svc := &TwitterAdService{Store: store}
	res, err := svc.ListUnique(context.Background(), query.AdFilters{}, query.Window{Limit: 30})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.RecordCount() != 1 || res.Records[0].ID != "a1" {
		t.Fatalf("result=%+v", res)
	}
	if store.lastQuery.Table != "twitter_ads" {
		t.Fatalf("table=%q", store.lastQuery.Table)
	}
}

func TestTwitterListSightings_NegativeWindowSkipsStore(t *testing.T) {
	store := newStubStore()
	svc := &TwitterAdService{Store: store}
	res, err := svc.ListSightings(context.Background(), query.AdFilters{}, query.Window{Offset: -10, Limit: 30})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.RecordCount() != 0 || store.calls() != 0 {
		t.Fatalf("result=%+v calls=%d", res, store.calls())
	}
}

func TestTwitterSightingKeyQuery_Joins(t *testing.T) {
	q := twitterSightingKeyQuery(query.AdFilters{})
	if len(q.Joins) != 0 {
		t.Fatalf("joins=%s want none", joinList(q))
	}

	q = twitterSightingKeyQuery(query.AdFilters{AdTypes: []string{models.TwitterAdTypeTweet}})
	if !hasJoin(q, "JOIN twitter_ads ON twitter_ads.id = twitter_ad_sightings.ad_id") {
		t.Fatalf("missing ad join: %s", joinList(q))
	}

	q = twitterSightingKeyQuery(query.AdFilters{BotTypes: []string{models.TwitterBotTypeAmerica}})
	if !hasJoin(q, "JOIN twitter_bots ON twitter_bots.id = twitter_ad_sightings.bot_id") {
		t.Fatalf("missing bot join: %s", joinList(q))
	}
}

func TestTwitterUniqueKeyQuery_DatesJoinSightings(t *testing.T) {
	// Observation timestamps live on the sightings, so date bounds on the
	// unique listing must pull them in.
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	q := twitterUniqueKeyQuery(query.AdFilters{StartDate: &start})
	if !hasJoin(q, "JOIN twitter_ad_sightings ON twitter_ad_sightings.ad_id = twitter_ads.id") {
		t.Fatalf("missing sighting join: %s", joinList(q))
	}

	q = twitterUniqueKeyQuery(query.AdFilters{})
	if len(q.Joins) != 0 {
		t.Fatalf("joins=%s want none", joinList(q))
	}
}

func TestTwitterUniqueKeyQuery_BotTypeJoinsThroughSightings(t *testing.T) {
	q := twitterUniqueKeyQuery(query.AdFilters{BotTypes: []string{models.TwitterBotTypeAustralia}})
	if !hasJoin(q, "JOIN twitter_ad_sightings ON twitter_ad_sightings.ad_id = twitter_ads.id") {
		t.Fatalf("missing sighting join: %s", joinList(q))
	}
	if !hasJoin(q, "JOIN twitter_bots ON twitter_bots.id = twitter_ad_sightings.bot_id") {
		t.Fatalf("missing bot join: %s", joinList(q))
	}
}
