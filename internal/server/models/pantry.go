package models

// Pantry item field names.
const (
	FieldName       = "name"
	FieldCalories   = "calories"
	FieldServings   = "servings"
	FieldLikability = "likability"
	FieldMacros     = "macros"
)

// PantryItem lives at users/{userId}/pantry/{itemId}.
type PantryItem struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Calories   float64            `json:"calories"`
	Servings   float64            `json:"servings"`
	Likability float64            `json:"likability"`
	Macros     map[string]float64 `json:"macros"`
}
