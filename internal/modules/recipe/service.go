package recipe

import (
	"context"
	"fmt"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/modules/user"
	"foodgram/internal/pkg/utils"
	"foodgram/internal/pkg/validator"
	"foodgram/internal/repository"
)

type Service struct {
	recipes  RecipeRepository
	members  MembershipReader
	pageSize int
}

func NewService(recipes RecipeRepository, members MembershipReader, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = 6
	}
	return &Service{
		recipes:  recipes,
		members:  members,
		pageSize: pageSize,
	}
}

// Create validates the request and writes the recipe with its tags and
// ingredients in one transaction. The author comes from the caller, never
// from the body.
func (s *Service) Create(ctx context.Context, authorID int64, req CreateRecipeRequest) (*RecipeView, error) {
	fields := recipeFields{
		Name:        strings.TrimSpace(req.Name),
		Image:       strings.TrimSpace(req.Image),
		Text:        strings.TrimSpace(req.Text),
		CookingTime: req.CookingTime,
	}
	items, problems := ingredientAmounts(req.Ingredients)
	if err := validationError(fields, problems); err != nil {
		return nil, err
	}

	recipe := &domain.Recipe{
		AuthorID:    authorID,
		Name:        fields.Name,
		Image:       fields.Image,
		Text:        fields.Text,
		CookingTime: fields.CookingTime,
	}
	if err := s.recipes.Create(ctx, recipe, uniqueIDs(req.Tags), items); err != nil {
		return nil, err
	}

	return s.Get(ctx, authorID, recipe.ID)
}

// Update меняет рецепт только от имени автора. Проверка владельца и
// валидация идут внутри транзакции, уже по залоченной строке.
func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateRecipeRequest) (*RecipeView, error) {
	var items []domain.IngredientAmount
	var problems map[string]string
	if req.Ingredients != nil {
		items, problems = ingredientAmounts(req.Ingredients)
	}

	apply := func(r *domain.Recipe) error {
		if r.AuthorID != userID {
			return domain.Forbidden("only the author can change this recipe")
		}

		fields := recipeFields{Name: r.Name, Image: r.Image, Text: r.Text, CookingTime: r.CookingTime}
		if req.Name != nil {
			fields.Name = strings.TrimSpace(*req.Name)
		}
		if req.Image != nil {
			fields.Image = strings.TrimSpace(*req.Image)
		}
		if req.Text != nil {
			fields.Text = strings.TrimSpace(*req.Text)
		}
		if req.CookingTime != nil {
			fields.CookingTime = *req.CookingTime
		}
		if err := validationError(fields, problems); err != nil {
			return err
		}

		r.Name = fields.Name
		r.Image = fields.Image
		r.Text = fields.Text
		r.CookingTime = fields.CookingTime
		return nil
	}

	if err := s.recipes.Update(ctx, id, apply, uniqueIDs(req.Tags), items); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.recipes.Delete(ctx, id, func(r *domain.Recipe) error {
		if r.AuthorID != userID {
			return domain.Forbidden("only the author can delete this recipe")
		}
		return nil
	})
}

// Get returns the recipe view as seen by viewerID (0 = anonymous).
func (s *Service) Get(ctx context.Context, viewerID, id int64) (*RecipeView, error) {
	r, err := s.recipes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, viewerID, []domain.Recipe{*r})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// List applies the filter on behalf of viewerID. Membership flags in f are
// ignored for anonymous viewers.
func (s *Service) List(ctx context.Context, viewerID int64, f repository.RecipeFilter, page utils.Page) (*ListResult, error) {
	if page.Limit <= 0 {
		page.Limit = s.pageSize
	}
	if page.Number <= 0 {
		page.Number = 1
	}
	f.ViewerID = viewerID

	recipes, total, err := s.recipes.List(ctx, f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	views, err := s.views(ctx, viewerID, recipes)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Recipes:    views,
		Pagination: utils.NewPagination(page, total),
	}, nil
}

func (s *Service) views(ctx context.Context, viewerID int64, recipes []domain.Recipe) ([]RecipeView, error) {
	recipeIDs := make([]int64, 0, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	favorited, err := s.members.MemberTargets(ctx, domain.KindFavorite, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	inCart, err := s.members.MemberTargets(ctx, domain.KindShoppingCart, viewerID, recipeIDs)
	if err != nil {
		return nil, err
	}
	following, err := s.members.MemberTargets(ctx, domain.KindSubscription, viewerID, uniqueIDs(authorIDs))
	if err != nil {
		return nil, err
	}

	out := make([]RecipeView, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		out = append(out, RecipeView{
			ID:               r.ID,
			Tags:             tagsOf(r),
			Author:           user.NewProfile(r.Author, following[r.AuthorID]),
			Ingredients:      ingredientsOf(r),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.Image,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return out, nil
}

func tagsOf(r *domain.Recipe) []domain.Tag {
	if r.Tags == nil {
		return []domain.Tag{}
	}
	return r.Tags
}

func ingredientsOf(r *domain.Recipe) []IngredientView {
	out := make([]IngredientView, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		v := IngredientView{ID: ri.IngredientID, Amount: ri.Amount}
		if ri.Ingredient != nil {
			v.Name = ri.Ingredient.Name
			v.MeasurementUnit = ri.Ingredient.MeasurementUnit
		}
		out = append(out, v)
	}
	return out
}

// ingredientAmounts converts request pairs and reports problems keyed by
// field: an empty list, an amount below 1 or a repeated ingredient id.
func ingredientAmounts(in []IngredientInput) ([]domain.IngredientAmount, map[string]string) {
	if len(in) == 0 {
		return nil, map[string]string{"ingredients": "at least one ingredient is required"}
	}

	seen := make(map[int64]bool, len(in))
	items := make([]domain.IngredientAmount, 0, len(in))
	for _, it := range in {
		if it.Amount < 1 {
			return nil, map[string]string{"ingredients": fmt.Sprintf("amount of ingredient %d must be at least 1", it.ID)}
		}
		if seen[it.ID] {
			return nil, map[string]string{"ingredients": fmt.Sprintf("ingredient %d is listed more than once", it.ID)}
		}
		seen[it.ID] = true
		items = append(items, domain.IngredientAmount{IngredientID: it.ID, Amount: it.Amount})
	}
	return items, nil
}

func validationError(fields recipeFields, problems map[string]string) error {
	details := validator.Validate(fields)
	for k, v := range problems {
		if details == nil {
			details = make(map[string]string, len(problems))
		}
		details[k] = v
	}
	if len(details) == 0 {
		return nil
	}
	return domain.ValidationFields("validation failed", details)
}

// uniqueIDs drops repeated ids keeping first occurrence order; nil stays nil.
func uniqueIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
