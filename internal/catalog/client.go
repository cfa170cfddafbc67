// Package catalog wraps the external game metadata catalog's REST API:
// lookup by numeric game id, fuzzy lookup by name, and artwork queries.
// Results paginate through next-page continuations.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

// Config describes the catalog client configuration.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client wraps the catalog REST API.
type Client struct {
	apiKey  string
	baseURL *url.URL
	http    *http.Client
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("catalog: base url is required")
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base url: %w", err)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		http:    client,
	}, nil
}

// Game is one catalog entry, reduced to the fields cartkeep consumes.
type Game struct {
	ID          int64
	Title       string
	Platform    int64
	Overview    string
	Players     int
	ReleaseDate string
	Genre       string
}

// Image is one artwork candidate for a game.
type Image struct {
	Type     string
	Side     string
	FileName string
}

// Page is one page of a games query. BoxArt carries the included artwork
// for the games on this page, keyed by game id.
type Page struct {
	Games      []Game
	BoxArtBase string
	BoxArt     map[int64][]Image

	next   string
	client *Client
}

// HasNext reports whether another page is available.
func (p *Page) HasNext() bool { return p != nil && p.next != "" }

// NextPage fetches the next page of the originating query. Returns false
// when pagination is exhausted.
func (p *Page) NextPage(ctx context.Context) (*Page, bool, error) {
	if !p.HasNext() {
		return nil, false, nil
	}
	page, err := p.client.fetchPage(ctx, p.next)
	if err != nil {
		return nil, false, err
	}
	return page, true, nil
}

// ByGameIDs queries games by catalog id, optionally including box art.
func (c *Client) ByGameIDs(ctx context.Context, ids []int64, includeBoxArt bool, fields ...string) (*Page, error) {
	if c == nil {
		return nil, errors.New("catalog: client is nil")
	}
	if len(ids) == 0 {
		return &Page{}, nil
	}
	endpoint := c.baseURL.JoinPath("Games", "ByGameID")
	params := c.baseParams(fields)
	params.Set("id", joinInt64(ids))
	if includeBoxArt {
		params.Set("include", "boxart")
	}
	endpoint.RawQuery = params.Encode()
	return c.fetchPage(ctx, endpoint.String())
}

// ByName queries games by fuzzy name, restricted to the given catalog
// platform ids. Exactly one page of at most pageSize results is requested;
// callers that want more follow the continuation.
func (c *Client) ByName(ctx context.Context, name string, pageSize int, platformIDs []int64, includeBoxArt bool, fields ...string) (*Page, error) {
	if c == nil {
		return nil, errors.New("catalog: client is nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &Page{}, nil
	}
	endpoint := c.baseURL.JoinPath("Games", "ByGameName")
	params := c.baseParams(fields)
	params.Set("name", name)
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	if len(platformIDs) > 0 {
		params.Set("filter[platform]", joinInt64(platformIDs))
	}
	if includeBoxArt {
		params.Set("include", "boxart")
	}
	endpoint.RawQuery = params.Encode()
	return c.fetchPage(ctx, endpoint.String())
}

// ImagesResult bundles artwork candidates for a set of games.
type ImagesResult struct {
	BaseURL string
	Images  map[int64][]Image
}

// ImagesByIDs queries artwork candidates of the given types for a set of
// games.
func (c *Client) ImagesByIDs(ctx context.Context, ids []int64, imageTypes ...string) (ImagesResult, error) {
	if c == nil {
		return ImagesResult{}, errors.New("catalog: client is nil")
	}
	if len(ids) == 0 {
		return ImagesResult{Images: map[int64][]Image{}}, nil
	}
	endpoint := c.baseURL.JoinPath("Games", "Images")
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	params.Set("games_id", joinInt64(ids))
	if len(imageTypes) > 0 {
		params.Set("filter[type]", strings.Join(imageTypes, ","))
	}
	endpoint.RawQuery = params.Encode()

	var payload imagesResponse
	if err := c.get(ctx, endpoint.String(), &payload); err != nil {
		return ImagesResult{}, err
	}
	if payload.Code != http.StatusOK {
		return ImagesResult{}, fmt.Errorf("catalog: images query returned code %d", payload.Code)
	}

	result := ImagesResult{
		BaseURL: payload.Data.BaseURL.Original,
		Images:  make(map[int64][]Image, len(payload.Data.Images)),
	}
	for key, entries := range payload.Data.Images {
		gameID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		images := make([]Image, 0, len(entries))
		for _, entry := range entries {
			images = append(images, Image{Type: entry.Type, Side: entry.Side, FileName: entry.FileName})
		}
		result.Images[gameID] = images
	}
	return result, nil
}

func (c *Client) baseParams(fields []string) url.Values {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	return params
}

func (c *Client) fetchPage(ctx context.Context, rawURL string) (*Page, error) {
	var payload gamesResponse
	if err := c.get(ctx, rawURL, &payload); err != nil {
		return nil, err
	}
	if payload.Code != http.StatusOK {
		return nil, fmt.Errorf("catalog: games query returned code %d", payload.Code)
	}

	page := &Page{
		Games:      make([]Game, 0, len(payload.Data.Games)),
		BoxArtBase: payload.Include.BoxArt.BaseURL.Original,
		BoxArt:     make(map[int64][]Image),
		next:       payload.Pages.Next,
		client:     c,
	}
	for _, game := range payload.Data.Games {
		page.Games = append(page.Games, Game{
			ID:          game.ID,
			Title:       game.GameTitle,
			Platform:    game.Platform,
			Overview:    game.Overview,
			Players:     game.Players,
			ReleaseDate: game.ReleaseDate,
			Genre:       strings.Join(game.Genres, ", "),
		})
	}
	for key, entries := range payload.Include.BoxArt.Data {
		gameID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		images := make([]Image, 0, len(entries))
		for _, entry := range entries {
			images = append(images, Image{Type: entry.Type, Side: entry.Side, FileName: entry.FileName})
		}
		page.BoxArt[gameID] = images
	}
	return page, nil
}

func (c *Client) get(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("catalog: request failed (%s): %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalog: decode response: %w", err)
	}
	return nil
}

func joinInt64(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
