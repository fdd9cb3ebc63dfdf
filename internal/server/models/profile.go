// Package models defines the per-user documents persisted in the document
// store and the paths they live at.
package models

import "time"

const (
	CollectionUsers         = "users"
	CollectionPantry        = "pantry"
	CollectionShoppingLists = "shoppingLists"
)

// Profile field names.
const (
	FieldEmail              = "email"
	FieldOnboardDate        = "onboardDate"
	FieldOnboarded          = "onboarded"
	FieldPreferredProviders = "preferredProviders"
)

// Profile is the root document of a user, users/{userId}.
type Profile struct {
	ID                 string         `json:"id"`
	Email              string         `json:"email"`
	OnboardDate        time.Time      `json:"onboardDate"`
	Onboarded          bool           `json:"onboarded"`
	PreferredProviders map[string]any `json:"preferredProviders"`
}
