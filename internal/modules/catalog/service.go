package catalog

import (
	"context"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/pkg/validator"
	"foodgram/internal/repository"
)

type Service struct {
	tagRepo        *repository.TagRepository
	ingredientRepo *repository.IngredientRepository
}

func NewService(
	tagRepo *repository.TagRepository,
	ingredientRepo *repository.IngredientRepository,
) *Service {
	return &Service{tagRepo, ingredientRepo}
}

/* ---------- TAGS ---------- */

// CreateTag validates and stores a tag. Name, slug and color are each
// unique; a clash comes back from storage as ConflictError.
func (s *Service) CreateTag(ctx context.Context, req CreateTagRequest) (*domain.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Color = strings.TrimSpace(req.Color)
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	tag := &domain.Tag{Name: req.Name, Slug: req.Slug, Color: req.Color}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *Service) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

func (s *Service) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return s.tagRepo.List(ctx)
}

/* ---------- INGREDIENTS ---------- */

func (s *Service) CreateIngredient(ctx context.Context, req CreateIngredientRequest) (*domain.Ingredient, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.MeasurementUnit = strings.TrimSpace(req.MeasurementUnit)
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	ing := &domain.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := s.ingredientRepo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	return s.ingredientRepo.GetByID(ctx, id)
}

func (s *Service) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.ingredientRepo.List(ctx)
}
