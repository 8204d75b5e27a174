package catalog

// ---------- TAGS ----------

type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=200,wordchars"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
	Color string `json:"color" validate:"required,tagcolor"`
}

// ---------- INGREDIENTS ----------

type CreateIngredientRequest struct {
	Name            string `json:"name" validate:"required,max=200,wordchars"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}
