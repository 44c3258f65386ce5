// Package spoonacular is a small client for the three Spoonacular endpoints
// the explorer uses: ingredient autocomplete, find-by-ingredients, and bulk
// recipe information.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeProvider = (*Client)(nil)

// APIError is returned for any non-200 response.
type APIError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("spoonacular: %s returned %d: %s", e.Endpoint, e.Status, truncate(e.Body, 200))
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API root (used by tests and proxies).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// Client talks to the Spoonacular REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a client authenticated with apiKey.
func NewClient(apiKey string, log *logger.Logger, opts ...ClientOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("spoonacular: %s is empty: %w", EnvAPIKey, domain.ErrNotConfigured)
	}
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Autocomplete returns up to number ingredient suggestions for query.
func (c *Client) Autocomplete(ctx context.Context, query string, number int) ([]domain.IngredientSuggestion, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(number))

	var out []domain.IngredientSuggestion
	if err := c.get(ctx, pathAutocomplete, params, &out); err != nil {
		return nil, err
	}
	c.log.Debug("autocomplete %q: %d suggestions", query, len(out))
	return out, nil
}

// FindByIngredients returns up to number recipes that use the ingredients.
func (c *Client) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]domain.RecipeMatch, error) {
	params := url.Values{}
	params.Set("ingredients", strings.Join(ingredients, ","))
	params.Set("number", strconv.Itoa(number))

	var out []domain.RecipeMatch
	if err := c.get(ctx, pathFindByIngredients, params, &out); err != nil {
		return nil, err
	}
	c.log.Debug("findByIngredients %v: %d matches", ingredients, len(out))
	return out, nil
}

// InformationBulk returns full records for ids in a single round trip.
func (c *Client) InformationBulk(ctx context.Context, ids []int) ([]domain.Recipe, error) {
	params := url.Values{}
	params.Set("ids", JoinIDs(ids))

	var out []domain.Recipe
	if err := c.get(ctx, pathInformationBulk, params, &out); err != nil {
		return nil, err
	}
	c.log.Debug("informationBulk %d ids: %d recipes", len(ids), len(out))
	return out, nil
}

// get issues a GET for path with params plus the API key and decodes the
// JSON body into dst.
func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("spoonacular: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "RecipeExplorer/1.0")

	// Never log the key.
	c.log.Debug("GET %s", c.baseURL+path)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("spoonacular: %s: request failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("spoonacular: %s: read response: %w", path, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{Endpoint: path, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("spoonacular: %s: decode response: %w", path, err)
	}
	return nil
}

// JoinIDs renders ids as a comma-separated list.
func JoinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
