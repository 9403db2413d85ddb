package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/resep-nusantara/internal/metrics"
	"github.com/pageza/resep-nusantara/internal/models"
	"github.com/pageza/resep-nusantara/internal/types"
)

// RecipePage is one page of a recipe list response
type RecipePage struct {
	Recipes    []models.Recipe   `json:"recipes"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
}

// RecipeAPI is the remote recipe API as seen by the query layer
type RecipeAPI interface {
	GetRecipes(ctx context.Context, q types.RecipeQuery) types.Result[RecipePage]
	GetRecipeByID(ctx context.Context, id int) types.Result[models.Recipe]
	GetReviews(ctx context.Context) types.Result[[]models.Review]
}

// RecipeClient talks to the remote recipe API and normalizes its envelopes
type RecipeClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Ensure RecipeClient implements RecipeAPI
var _ RecipeAPI = (*RecipeClient)(nil)

// NewRecipeClient creates a client for the API at baseURL. apiKey is optional
// and has the form id:hexsecret.
func NewRecipeClient(baseURL, apiKey string, timeout time.Duration) *RecipeClient {
	return &RecipeClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		maxRetries: 2,
		retryDelay: 200 * time.Millisecond,
		logger:     slog.Default().With(slog.String("component", "recipe_client")),
	}
}

// WithRetry overrides the retry policy for transport failures and 5xx responses
func (c *RecipeClient) WithRetry(maxRetries int, delay time.Duration) *RecipeClient {
	c.maxRetries = maxRetries
	c.retryDelay = delay
	return c
}

// GetRecipes fetches one page of recipes matching q
func (c *RecipeClient) GetRecipes(ctx context.Context, q types.RecipeQuery) types.Result[RecipePage] {
	env, err := fetch[[]models.Recipe](ctx, c, "list", "/recipes", q.Values())
	if err != nil {
		return failure[RecipePage](err)
	}
	recipes := env.Data
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return types.Ok(RecipePage{Recipes: recipes, Pagination: env.Pagination})
}

// GetRecipeByID fetches a single recipe
func (c *RecipeClient) GetRecipeByID(ctx context.Context, id int) types.Result[models.Recipe] {
	env, err := fetch[models.Recipe](ctx, c, "detail", "/recipes/"+strconv.Itoa(id), nil)
	if err != nil {
		return failure[models.Recipe](err)
	}
	if env.Data.ID == 0 {
		return types.NotFound[models.Recipe](ErrRecipeNotFound.Error())
	}
	return types.Ok(env.Data)
}

// GetReviews fetches all reviews
func (c *RecipeClient) GetReviews(ctx context.Context) types.Result[[]models.Review] {
	env, err := fetch[[]models.Review](ctx, c, "reviews", "/reviews", nil)
	if err != nil {
		return failure[[]models.Review](err)
	}
	if env.Data == nil {
		env.Data = []models.Review{}
	}
	return types.Ok(env.Data)
}

func failure[T any](err error) types.Result[T] {
	if errors.Is(err, ErrRecipeNotFound) {
		return types.NotFound[T](err.Error())
	}
	return types.Err[T](err.Error())
}

// fetch performs a GET with retries and decodes the envelope. A response
// with success=false is a failure whatever its HTTP status.
func fetch[T any](ctx context.Context, c *RecipeClient, endpoint, path string, query url.Values) (*types.Envelope[T], error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrRemoteFailure, ctx.Err())
			case <-time.After(time.Duration(attempt) * c.retryDelay):
			}
		}

		start := time.Now()
		env, retry, err := doRequest[T](ctx, c, target)
		metrics.RemoteLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		if err == nil {
			metrics.RemoteRequests.WithLabelValues(endpoint, "ok").Inc()
			return env, nil
		}

		lastErr = err
		if !retry {
			break
		}
		c.logger.Warn("remote request failed, retrying",
			slog.String("endpoint", endpoint),
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))
	}

	outcome := "error"
	if errors.Is(lastErr, ErrRecipeNotFound) {
		outcome = "not_found"
	}
	metrics.RemoteRequests.WithLabelValues(endpoint, outcome).Inc()
	return nil, lastErr
}

// doRequest performs one attempt. The bool reports whether the failure is
// worth retrying.
func doRequest[T any](ctx context.Context, c *RecipeClient, target string) (*types.Envelope[T], bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		token, err := c.createToken()
		if err != nil {
			return nil, false, fmt.Errorf("failed to create api token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// cancelled requests are not retried
		return nil, ctx.Err() == nil, fmt.Errorf("%w: %v", ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, ErrRecipeNotFound
	}
	if resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("%w: status %d", ErrRemoteFailure, resp.StatusCode)
	}

	var probe struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, false, fmt.Errorf("%w: failed to decode response: %v", ErrRemoteFailure, err)
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false, fmt.Errorf("%w: malformed envelope: %v", ErrRemoteFailure, err)
	}
	if !probe.Success {
		msg := probe.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, false, fmt.Errorf("%w: %s", ErrRemoteFailure, msg)
	}
	if resp.StatusCode >= 400 {
		return nil, false, fmt.Errorf("%w: status %d", ErrRemoteFailure, resp.StatusCode)
	}
	var out types.Envelope[T]
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false, fmt.Errorf("%w: failed to decode data: %v", ErrRemoteFailure, err)
	}
	return &out, false, nil
}

// createToken signs a short-lived HS256 token for the API key id:secret
func (c *RecipeClient) createToken() (string, error) {
	id, secretHex, ok := strings.Cut(c.apiKey, ":")
	if !ok || id == "" {
		return "", fmt.Errorf("invalid api key format: expected id:secret")
	}
	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "resep-nusantara",
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}
