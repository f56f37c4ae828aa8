package service

import (
	"context"
	"fmt"
	"strings"

	"adboard/internal/apperror"
	"adboard/internal/models"
	"adboard/internal/repository"
)

// NormalizeTagName canonicalizes a tag name before storage or comparison.
// Tags are case-insensitive, so they are kept lowercase.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TagService manages the per-source tag vocabularies.
type TagService struct {
	Store repository.Store
}

func (s *TagService) ListGoogleTags(ctx context.Context) ([]models.GoogleTag, error) {
	return s.Store.ListGoogleTags(ctx)
}

func (s *TagService) GetGoogleTag(ctx context.Context, id int64) (*models.GoogleTag, error) {
	tag, err := s.Store.GetGoogleTagByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperror.NotFound("google tag", fmt.Sprintf("%d", id))
	}
	return tag, nil
}

// CreateGoogleTag creates a tag under the normalized name. Creating an
// existing name returns the existing row.
func (s *TagService) CreateGoogleTag(ctx context.Context, name string) (*models.GoogleTag, error) {
	name = NormalizeTagName(name)
	if name == "" {
		return nil, apperror.BadInput("tag name must not be empty", nil)
	}
	return s.Store.CreateGoogleTag(ctx, name)
}

func (s *TagService) ListTwitterTags(ctx context.Context) ([]models.TwitterTag, error) {
	return s.Store.ListTwitterTags(ctx)
}

func (s *TagService) GetTwitterTag(ctx context.Context, id int64) (*models.TwitterTag, error) {
	tag, err := s.Store.GetTwitterTagByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, apperror.NotFound("twitter tag", fmt.Sprintf("%d", id))
	}
	return tag, nil
}

func (s *TagService) CreateTwitterTag(ctx context.Context, name string) (*models.TwitterTag, error) {
	name = NormalizeTagName(name)
	if name == "" {
		return nil, apperror.BadInput("tag name must not be empty", nil)
	}
	return s.Store.CreateTwitterTag(ctx, name)
}
