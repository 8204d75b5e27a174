package repository

import (
	"context"
	"fmt"

	"foodgram/internal/domain"

	"gorm.io/gorm"
)

// membershipTable describes where one collection kind is stored.
type membershipTable struct {
	table        string
	targetColumn string
	targetModel  any
	targetName   string
	duplicateMsg string
	missingMsg   string
	newRow       func(userID, targetID int64) any
}

var membershipTables = map[domain.CollectionKind]membershipTable{
	domain.KindFavorite: {
		table:        "favorites",
		targetColumn: "recipe_id",
		targetModel:  &domain.Recipe{},
		targetName:   "recipe",
		duplicateMsg: "recipe already in favorites",
		missingMsg:   "recipe is not in favorites",
		newRow: func(userID, targetID int64) any {
			return &domain.Favorite{UserID: userID, RecipeID: targetID}
		},
	},
	domain.KindShoppingCart: {
		table:        "shopping_cart_entries",
		targetColumn: "recipe_id",
		targetModel:  &domain.Recipe{},
		targetName:   "recipe",
		duplicateMsg: "recipe already in shopping cart",
		missingMsg:   "recipe is not in shopping cart",
		newRow: func(userID, targetID int64) any {
			return &domain.ShoppingCartEntry{UserID: userID, RecipeID: targetID}
		},
	},
	domain.KindSubscription: {
		table:        "subscriptions",
		targetColumn: "author_id",
		targetModel:  &domain.User{},
		targetName:   "author",
		duplicateMsg: "already subscribed to this author",
		missingMsg:   "not subscribed to this author",
		newRow: func(userID, targetID int64) any {
			return &domain.Subscription{UserID: userID, AuthorID: targetID}
		},
	},
}

func tableFor(kind domain.CollectionKind) (membershipTable, error) {
	t, ok := membershipTables[kind]
	if !ok {
		return membershipTable{}, domain.Validation(fmt.Sprintf("unknown collection %q", kind))
	}
	return t, nil
}

// MembershipRepository stores favorites, shopping cart entries and
// subscriptions behind one API keyed by domain.CollectionKind.
type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Add creates the (user, target) row. The existence pre-check only saves a
// round trip; the unique index decides races and its violation comes back
// as domain.ErrConflict.
func (r *MembershipRepository) Add(ctx context.Context, kind domain.CollectionKind, userID, targetID int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(t.targetModel).Where("id = ?", targetID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.NotFound(t.targetName)
		}

		exists, err := existsIn(tx, t, userID, targetID)
		if err != nil {
			return err
		}
		if exists {
			return domain.Conflict(t.duplicateMsg)
		}

		return insertMembership(tx, t, userID, targetID)
	})
}

func insertMembership(tx *gorm.DB, t membershipTable, userID, targetID int64) error {
	if err := tx.Create(t.newRow(userID, targetID)).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Conflict(t.duplicateMsg).Wrap(err)
		}
		return translateError(err, t.targetName)
	}
	return nil
}

// Remove deletes exactly the (user, target) row, or reports NotFound.
func (r *MembershipRepository) Remove(ctx context.Context, kind domain.CollectionKind, userID, targetID int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND "+t.targetColumn+" = ?", userID, targetID).
		Delete(t.newRow(0, 0))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFound(t.missingMsg)
	}
	return nil
}

func (r *MembershipRepository) Exists(ctx context.Context, kind domain.CollectionKind, userID, targetID int64) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}
	return existsIn(r.db.WithContext(ctx), t, userID, targetID)
}

func existsIn(db *gorm.DB, t membershipTable, userID, targetID int64) (bool, error) {
	var count int64
	err := db.Table(t.table).
		Where("user_id = ? AND "+t.targetColumn+" = ?", userID, targetID).
		Count(&count).Error
	return count > 0, err
}

// MemberTargets returns which of targetIDs the user has in the collection.
func (r *MembershipRepository) MemberTargets(ctx context.Context, kind domain.CollectionKind, userID int64, targetIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(targetIDs))
	if userID == 0 || len(targetIDs) == 0 {
		return out, nil
	}

	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	var ids []int64
	err = r.db.WithContext(ctx).Table(t.table).
		Where("user_id = ? AND "+t.targetColumn+" IN ?", userID, targetIDs).
		Pluck(t.targetColumn, &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// ListTargets returns the user's targets, newest membership first, with
// the total count for pagination.
func (r *MembershipRepository) ListTargets(ctx context.Context, kind domain.CollectionKind, userID int64, limit, offset int) ([]int64, int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	q := r.db.WithContext(ctx).Table(t.table).Where("user_id = ?", userID)
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ids []int64
	q = q.Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Pluck(t.targetColumn, &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
