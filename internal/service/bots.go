package service

import (
	"context"

	"adboard/internal/apperror"
	"adboard/internal/models"
	"adboard/internal/repository"
)

// BotService lists and resolves the scraping personas of both sources.
type BotService struct {
	Store repository.Store
}

func (s *BotService) ListGoogleBots(ctx context.Context) ([]models.GoogleBot, error) {
	return s.Store.ListGoogleBots(ctx)
}

func (s *BotService) GetGoogleBot(ctx context.Context, username string) (*models.GoogleBot, error) {
	bot, err := s.Store.GetGoogleBotByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, apperror.NotFound("google bot", username)
	}
	return bot, nil
}

func (s *BotService) ListTwitterBots(ctx context.Context) ([]models.TwitterBot, error) {
	return s.Store.ListTwitterBots(ctx)
}

func (s *BotService) GetTwitterBot(ctx context.Context, username string) (*models.TwitterBot, error) {
	bot, err := s.Store.GetTwitterBotByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, apperror.NotFound("twitter bot", username)
	}
	return bot, nil
}
