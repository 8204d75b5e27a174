package collection

import (
	"context"
	"fmt"

	"foodgram/internal/domain"
	"foodgram/internal/modules/user"
	"foodgram/internal/pkg/utils"
)

// kindBehavior — то, чем виды коллекций отличаются на уровне сервиса:
// проверка до вставки и сводка, которую возвращает Add.
type kindBehavior struct {
	beforeAdd func(userID, targetID int64) error
	summary   func(s *Service, ctx context.Context, targetID int64, recipesLimit int) (any, error)
}

var behaviors = map[domain.CollectionKind]kindBehavior{
	domain.KindFavorite:     {summary: (*Service).recipeSummary},
	domain.KindShoppingCart: {summary: (*Service).recipeSummary},
	domain.KindSubscription: {
		beforeAdd: func(userID, targetID int64) error {
			if userID == targetID {
				return domain.ValidationFields("cannot subscribe to yourself", map[string]string{"author": "must differ from the subscriber"})
			}
			return nil
		},
		summary: func(s *Service, ctx context.Context, targetID int64, recipesLimit int) (any, error) {
			return s.authorSummary(ctx, targetID, recipesLimit)
		},
	},
}

type Service struct {
	members      MembershipRepository
	recipes      RecipeReader
	users        UserReader
	recipesLimit int
}

// NewService: recipesLimit — сколько рецептов автора показывать в сводке
// подписки, если клиент не передал recipes_limit.
func NewService(members MembershipRepository, recipes RecipeReader, users UserReader, recipesLimit int) *Service {
	if recipesLimit < 0 {
		recipesLimit = 3
	}
	return &Service{
		members:      members,
		recipes:      recipes,
		users:        users,
		recipesLimit: recipesLimit,
	}
}

// Add puts target into the user's collection of the given kind and returns
// its summary. A second Add of the same pair is a ConflictError.
// recipesLimit < 0 selects the configured default.
func (s *Service) Add(ctx context.Context, kind domain.CollectionKind, userID, targetID int64, recipesLimit int) (any, error) {
	b, err := behaviorFor(kind)
	if err != nil {
		return nil, err
	}

	if b.beforeAdd != nil {
		if err := b.beforeAdd(userID, targetID); err != nil {
			return nil, err
		}
	}

	if err := s.members.Add(ctx, kind, userID, targetID); err != nil {
		return nil, err
	}

	return b.summary(s, ctx, targetID, s.limit(recipesLimit))
}

// Remove deletes the pair; NotFoundError when it was not there.
func (s *Service) Remove(ctx context.Context, kind domain.CollectionKind, userID, targetID int64) error {
	if _, err := behaviorFor(kind); err != nil {
		return err
	}
	return s.members.Remove(ctx, kind, userID, targetID)
}

// ListSubscriptions returns the authors userID follows, most recently
// followed first.
func (s *Service) ListSubscriptions(ctx context.Context, userID int64, page utils.Page, recipesLimit int) (*SubscriptionList, error) {
	authorIDs, total, err := s.members.ListTargets(ctx, domain.KindSubscription, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	users, err := s.users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	limit := s.limit(recipesLimit)
	authors := make([]AuthorSummary, 0, len(authorIDs))
	for _, id := range authorIDs {
		u, ok := users[id]
		if !ok {
			continue
		}
		summary, err := s.buildAuthorSummary(ctx, u, limit)
		if err != nil {
			return nil, err
		}
		authors = append(authors, *summary)
	}

	return &SubscriptionList{
		Authors:    authors,
		Pagination: utils.NewPagination(page, total),
	}, nil
}

func (s *Service) recipeSummary(ctx context.Context, recipeID int64, _ int) (any, error) {
	r, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	summary := newRecipeSummary(r)
	return &summary, nil
}

func (s *Service) authorSummary(ctx context.Context, authorID int64, recipesLimit int) (*AuthorSummary, error) {
	u, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	return s.buildAuthorSummary(ctx, u, recipesLimit)
}

// buildAuthorSummary is only called for authors the viewer follows, so
// IsSubscribed is always true.
func (s *Service) buildAuthorSummary(ctx context.Context, u *domain.User, recipesLimit int) (*AuthorSummary, error) {
	count, err := s.recipes.CountByAuthor(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	recipes := []RecipeSummary{}
	if recipesLimit > 0 {
		sample, err := s.recipes.ListByAuthor(ctx, u.ID, recipesLimit)
		if err != nil {
			return nil, err
		}
		for i := range sample {
			recipes = append(recipes, newRecipeSummary(&sample[i]))
		}
	}

	return &AuthorSummary{
		Profile:      user.NewProfile(u, true),
		Recipes:      recipes,
		RecipesCount: count,
	}, nil
}

func (s *Service) limit(requested int) int {
	if requested < 0 {
		return s.recipesLimit
	}
	return requested
}

func behaviorFor(kind domain.CollectionKind) (kindBehavior, error) {
	b, ok := behaviors[kind]
	if !ok {
		return kindBehavior{}, domain.Validation(fmt.Sprintf("unknown collection %q", kind))
	}
	return b, nil
}
