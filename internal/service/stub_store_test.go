package service

import (
	"context"
	"fmt"
	"time"

	"adboard/internal/models"
	"adboard/internal/query"
	"adboard/internal/repository"
)

// stubStore is an in-memory repository.Store for service tests. Listing
// methods serve canned data; call counters let tests assert what was hit.
type stubStore struct {
	keys  []string
	total int64

	findCalls  int
	countCalls int
	lastQuery  query.KeyQuery

	googleAds  map[string]models.GoogleAd
	twitterAds map[string]models.TwitterAd
	sightings  map[string]models.TwitterAdSighting
	googleTags map[int64]models.GoogleTag

	attachCalls    int
	detachCalls    int
	attachErr      error
	createdTagName string
}

func newStubStore() *stubStore {
	return &stubStore{
		googleAds:  map[string]models.GoogleAd{},
		twitterAds: map[string]models.TwitterAd{},
		sightings:  map[string]models.TwitterAdSighting{},
		googleTags: map[int64]models.GoogleTag{},
	}
}

func (s *stubStore) calls() int {
	return s.findCalls + s.countCalls + s.attachCalls + s.detachCalls
}

func (s *stubStore) FindKeys(_ context.Context, q query.KeyQuery, _, _ int) ([]string, error) {
	s.findCalls++
	s.lastQuery = q
	return s.keys, nil
}

func (s *stubStore) CountKeys(context.Context, query.KeyQuery) (int64, error) {
	s.countCalls++
	return s.total, nil
}

func (s *stubStore) ListGoogleAdsByIDs(_ context.Context, ids []string) ([]models.GoogleAd, error) {
	var out []models.GoogleAd
	for _, id := range ids {
		if ad, ok := s.googleAds[id]; ok {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (s *stubStore) GetGoogleAdByID(_ context.Context, id string) (*models.GoogleAd, error) {
	if ad, ok := s.googleAds[id]; ok {
		return &ad, nil
	}
	return nil, nil
}

func (s *stubStore) ListGoogleBots(context.Context) ([]models.GoogleBot, error) {
	return nil, nil
}

func (s *stubStore) GetGoogleBotByUsername(context.Context, string) (*models.GoogleBot, error) {
	return nil, nil
}

func (s *stubStore) ListGoogleTags(context.Context) ([]models.GoogleTag, error) {
	return nil, nil
}

func (s *stubStore) GetGoogleTagByID(_ context.Context, id int64) (*models.GoogleTag, error) {
	if tag, ok := s.googleTags[id]; ok {
		return &tag, nil
	}
	return nil, nil
}

func (s *stubStore) CreateGoogleTag(_ context.Context, name string) (*models.GoogleTag, error) {
	s.createdTagName = name
	return &models.GoogleTag{ID: 1, Name: name}, nil
}

func (s *stubStore) AttachGoogleAdTag(context.Context, string, int64) error {
	s.attachCalls++
	return s.attachErr
}

func (s *stubStore) DetachGoogleAdTag(context.Context, string, int64) error {
	s.detachCalls++
	return nil
}

func (s *stubStore) ListTwitterSightingsByIDs(_ context.Context, ids []string) ([]models.TwitterAdSighting, error) {
	var out []models.TwitterAdSighting
	for _, id := range ids {
		if sg, ok := s.sightings[id]; ok {
			out = append(out, sg)
		}
	}
	return out, nil
}

func (s *stubStore) ListTwitterAdsByIDs(_ context.Context, ids []string) ([]models.TwitterAd, error) {
	var out []models.TwitterAd
	for _, id := range ids {
		if ad, ok := s.twitterAds[id]; ok {
			out = append(out, ad)
		}
	}
	return out, nil
}

func (s *stubStore) GetTwitterAdByID(_ context.Context, id string) (*models.TwitterAd, error) {
	if ad, ok := s.twitterAds[id]; ok {
		return &ad, nil
	}
	return nil, nil
}

func (s *stubStore) ListTwitterBots(context.Context) ([]models.TwitterBot, error) {
	return nil, nil
}

func (s *stubStore) GetTwitterBotByUsername(context.Context, string) (*models.TwitterBot, error) {
	return nil, nil
}

func (s *stubStore) ListTwitterTags(context.Context) ([]models.TwitterTag, error) {
	return nil, nil
}

func (s *stubStore) GetTwitterTagByID(context.Context, int64) (*models.TwitterTag, error) {
	return nil, nil
}

func (s *stubStore) CreateTwitterTag(_ context.Context, name string) (*models.TwitterTag, error) {
	s.createdTagName = name
	return &models.TwitterTag{ID: 1, Name: name}, nil
}

func (s *stubStore) AttachTwitterAdTag(context.Context, string, int64) error {
	s.attachCalls++
	return s.attachErr
}

func (s *stubStore) DetachTwitterAdTag(context.Context, string, int64) error {
	s.detachCalls++
	return nil
}

func (s *stubStore) GoogleBotAlignmentStats(context.Context) ([]repository.AlignmentGroup, error) {
	return nil, nil
}

func (s *stubStore) GoogleCategoryStats(context.Context) ([]repository.LabelCount, error) {
	return nil, nil
}

func (s *stubStore) GoogleCategoryBotStats(context.Context) ([]repository.CategoryBotRow, error) {
	return nil, nil
}

func (s *stubStore) GoogleMonthlyAdCounts(context.Context, time.Time) ([]repository.DailyAdCount, error) {
	return nil, nil
}

func (s *stubStore) GoogleAdSummaryStats(context.Context) (repository.GoogleAdSummary, error) {
	return repository.GoogleAdSummary{}, nil
}

func (s *stubStore) TwitterBotAlignmentStats(context.Context) ([]repository.AlignmentGroup, error) {
	return nil, nil
}

func (s *stubStore) TwitterCategoryStats(context.Context) ([]repository.LabelCount, error) {
	return nil, nil
}

func (s *stubStore) TwitterCategoryBotStats(context.Context) ([]repository.CategoryBotRow, error) {
	return nil, nil
}

func (s *stubStore) TwitterMonthlyAdCounts(context.Context, time.Time) ([]repository.DailyAdCount, error) {
	return nil, nil
}

func (s *stubStore) TwitterAdSummaryStats(context.Context) (repository.TwitterAdSummary, error) {
	return repository.TwitterAdSummary{}, nil
}

var _ repository.Store = (*stubStore)(nil)

func hasJoin(q query.KeyQuery, substr string) bool {
	for _, j := range q.Joins {
		if j == substr {
			return true
		}
	}
	return false
}

func joinList(q query.KeyQuery) string {
	return fmt.Sprintf("%v", q.Joins)
}
