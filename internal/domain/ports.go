package domain

import "context"

// RecipeProvider is the remote recipe database. Implementations can be the
// real REST client, a caching decorator, or a test fake.
type RecipeProvider interface {
	Autocomplete(ctx context.Context, query string, number int) ([]IngredientSuggestion, error)
	FindByIngredients(ctx context.Context, ingredients []string, number int) ([]RecipeMatch, error)
	InformationBulk(ctx context.Context, ids []int) ([]Recipe, error)
}

// KVStore is a string-keyed, string-valued persistent store, the terminal
// stand-in for browser local storage. A missing key is reported with
// ok=false and a nil error.
type KVStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// Narrator reads recipe instructions aloud. The no-op implementation is
// used when speech is not configured.
type Narrator interface {
	Read(ctx context.Context, recipe *Recipe) error
	Stop()
	Enabled() bool
}
