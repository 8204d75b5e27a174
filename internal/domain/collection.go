package domain

// CollectionKind selects one of the membership relations a user can toggle.
type CollectionKind string

const (
	KindFavorite     CollectionKind = "favorite"
	KindShoppingCart CollectionKind = "shopping_cart"
	KindSubscription CollectionKind = "subscription"
)

// TargetsRecipe reports whether the kind points at a recipe (as opposed
// to an author).
func (k CollectionKind) TargetsRecipe() bool {
	return k == KindFavorite || k == KindShoppingCart
}

func (k CollectionKind) Valid() bool {
	switch k {
	case KindFavorite, KindShoppingCart, KindSubscription:
		return true
	}
	return false
}

// ShoppingListItem — одна строка сводного списка покупок: суммарное
// количество ингредиента с данным названием и единицей измерения.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}
