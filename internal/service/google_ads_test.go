package service

import (
	"context"
	"testing"

	"adboard/internal/apperror"
	"adboard/internal/models"
	"adboard/internal/query"
)

func TestGoogleAdList_PreservesKeyOrder(t *testing.T) {
	store := newStubStore()
	store.keys = []string{"b", "a"}
	store.total = 12
	store.googleAds["a"] = models.GoogleAd{ID: "a"}
	store.googleAds["b"] = models.GoogleAd{ID: "b"}

	svc := &GoogleAdService{Store: store}
	res, err := svc.List(context.Background(), query.AdFilters{}, query.Window{Offset: 0, Limit: 2})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.TotalCount != 12 || res.RecordCount() != 2 {
		t.Fatalf("result=%+v", res)
	}
	if res.Records[0].ID != "b" || res.Records[1].ID != "a" {
		t.Fatalf("order=%v,%v", res.Records[0].ID, res.Records[1].ID)
	}
}

func TestGoogleAdList_NegativeWindowSkipsStore(t *testing.T) {
	store := newStubStore()
	svc := &GoogleAdService{Store: store}

	for _, w := range []query.Window{{Offset: -1, Limit: 30}, {Offset: 0, Limit: -5}} {
		res, err := svc.List(context.Background(), query.AdFilters{}, w)
		if err != nil {
			t.Fatalf("window %+v: err=%v", w, err)
		}
		if res.RecordCount() != 0 || res.TotalCount != 0 {
			t.Fatalf("window %+v: result=%+v", w, res)
		}
	}
	if store.calls() != 0 {
		t.Fatalf("store calls=%d want 0", store.calls())
	}
}

func TestGoogleAdList_EmptyPageStillCounts(t *testing.T) {
	store := newStubStore()
	store.total = 7
	svc := &GoogleAdService{Store: store}

	res, err := svc.List(context.Background(), query.AdFilters{}, query.Window{Offset: 1000, Limit: 30})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.RecordCount() != 0 || res.TotalCount != 7 {
		t.Fatalf("result=%+v", res)
	}
	if store.countCalls != 1 {
		t.Fatalf("countCalls=%d want 1", store.countCalls)
	}
}

func TestGoogleAdKeyQuery_JoinsOnlyWhenNeeded(t *testing.T) {
	q := googleAdKeyQuery(query.AdFilters{})
	if len(q.Joins) != 0 {
		t.Fatalf("joins=%s want none", joinList(q))
	}

	q = googleAdKeyQuery(query.AdFilters{Tags: []string{"shoes"}})
	if !hasJoin(q, "JOIN google_ad_tags ON google_ad_tags.ad_id = google_ads.id") {
		t.Fatalf("missing tag join: %s", joinList(q))
	}
	if hasJoin(q, "JOIN google_bots ON google_bots.id = google_ads.bot_id") {
		t.Fatalf("unexpected bot join: %s", joinList(q))
	}

	q = googleAdKeyQuery(query.AdFilters{Genders: []string{"Male"}})
	if !hasJoin(q, "JOIN google_bots ON google_bots.id = google_ads.bot_id") {
		t.Fatalf("missing bot join: %s", joinList(q))
	}
}

func TestGoogleAdKeyQuery_BotFilterNeedsNoJoin(t *testing.T) {
	// Bot ids live on the ad row itself.
	q := googleAdKeyQuery(query.AdFilters{Bots: []string{"b1"}})
	if len(q.Joins) != 0 {
		t.Fatalf("joins=%s want none", joinList(q))
	}
	if len(q.Fragments) != 1 {
		t.Fatalf("fragments=%d want 1", len(q.Fragments))
	}
}

func TestGoogleAdGetByID_NotFound(t *testing.T) {
	svc := &GoogleAdService{Store: newStubStore()}
	_, err := svc.GetByID(context.Background(), "nope")
	if !apperror.IsNotFound(err) {
		t.Fatalf("err=%v want not-found", err)
	}
}

func TestGoogleAdAttachTag_ReturnsAd(t *testing.T) {
	store := newStubStore()
	store.googleAds["ad1"] = models.GoogleAd{ID: "ad1"}
	svc := &GoogleAdService{Store: store}

	ad, err := svc.AttachTag(context.Background(), "ad1", 3)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if ad.ID != "ad1" {
		t.Fatalf("ad=%+v", ad)
	}
	// A second attach is a no-op at the store level and still succeeds.
	if _, err := svc.AttachTag(context.Background(), "ad1", 3); err != nil {
		t.Fatalf("second attach err=%v", err)
	}
	if store.attachCalls != 2 {
		t.Fatalf("attachCalls=%d want 2", store.attachCalls)
	}
}

func TestGoogleAdDetachTag_MissingAssignmentStillSucceeds(t *testing.T) {
	store := newStubStore()
	store.googleAds["ad1"] = models.GoogleAd{ID: "ad1"}
	svc := &GoogleAdService{Store: store}

	ad, err := svc.DetachTag(context.Background(), "ad1", 99)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if ad.ID != "ad1" {
		t.Fatalf("ad=%+v", ad)
	}
}
