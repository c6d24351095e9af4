package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/utils"
)

type NewsService struct {
	news NewsStore
}

func NewNewsService(news NewsStore) *NewsService {
	return &NewsService{news: news}
}

func (s *NewsService) All(ctx context.Context) ([]models.News, error) {
	return s.news.Latest(ctx, 0)
}

func (s *NewsService) Get(ctx context.Context, id uint) (*models.News, error) {
	n, err := s.news.Get(ctx, id)
	if err != nil {
		return nil, found(err, "News not found")
	}
	return n, nil
}

func (s *NewsService) Create(ctx context.Context, req models.NewsRequest) (*models.News, error) {
	description, err := newsDescription(req.Description)
	if err != nil {
		return nil, err
	}
	n := &models.News{Description: description}
	if err := s.news.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create news: %w", err)
	}
	return n, nil
}

func (s *NewsService) Update(ctx context.Context, id uint, req models.NewsRequest) (*models.News, error) {
	description, err := newsDescription(req.Description)
	if err != nil {
		return nil, err
	}
	n, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Description = description
	if err := s.news.Save(ctx, n); err != nil {
		return nil, fmt.Errorf("update news: %w", err)
	}
	return n, nil
}

func (s *NewsService) Delete(ctx context.Context, id uint) error {
	return found(s.news.Delete(ctx, id), "News not found")
}

func newsDescription(raw string) (string, error) {
	description := strings.TrimSpace(utils.SanitizeHTML(raw))
	if description == "" {
		return "", Unprocessable("Description is required")
	}
	return description, nil
}
