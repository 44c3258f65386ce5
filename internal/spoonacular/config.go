package spoonacular

import "time"

// DefaultBaseURL is the public Spoonacular API root.
const DefaultBaseURL = "https://api.spoonacular.com"

// Env var names for provider configuration. The key is a secret and is
// only ever read from the environment or a .env file.
const (
	EnvAPIKey  = "SPOONACULAR_API_KEY"
	EnvBaseURL = "SPOONACULAR_BASE_URL"
)

// Request sizes used by the explorer.
const (
	SuggestionLimit = 5
	MatchLimit      = 12
)

// Endpoint paths.
const (
	pathAutocomplete      = "/food/ingredients/autocomplete"
	pathFindByIngredients = "/recipes/findByIngredients"
	pathInformationBulk   = "/recipes/informationBulk"
)

const defaultTimeout = 15 * time.Second
