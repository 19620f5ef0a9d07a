package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"concierge/internal/infra"
	"concierge/internal/models/chat_models"
	mem "concierge/pkg/memcache"
	"concierge/pkg/utils"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const (
	unsplashBaseURL  = "https://api.unsplash.com"
	maxPhotosPerPage = 30
)

type PhotoServiceInterface interface {
	SearchPhotos(ctx context.Context, query string, count int) ([]chat_models.ItineraryImage, error)
	// TrackDownload notifies the provider that a photo was displayed. Repeats are suppressed.
	TrackDownload(ctx context.Context, downloadURL string) error
	Enabled() bool
}

type photoCacheKey struct {
	Query string
	Count int
}

type UnsplashClient struct {
	HTTP      *http.Client
	BaseURL   string
	AccessKey string
	Cache     *expirable.LRU[photoCacheKey, []chat_models.ItineraryImage]
	Limiter   *rate.Limiter
	Tracked   mem.TrackedDownloadStore
}

func NewUnsplashClient(cfg *infra.Config, tracked mem.TrackedDownloadStore) *UnsplashClient {
	return &UnsplashClient{
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		BaseURL:   unsplashBaseURL,
		AccessKey: cfg.UnsplashAPIKey,
		Cache:     expirable.NewLRU[photoCacheKey, []chat_models.ItineraryImage](256, nil, cfg.PhotoCacheTTL),
		Limiter:   rate.NewLimiter(rate.Limit(cfg.UnsplashRPS), 1),
		Tracked:   tracked,
	}
}

func (c *UnsplashClient) Enabled() bool {
	return c.AccessKey != ""
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		Links struct {
			DownloadLocation string `json:"download_location"`
		} `json:"links"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// SearchPhotos returns up to count landscape photos for query. A missing key yields an empty list.
func (c *UnsplashClient) SearchPhotos(ctx context.Context, query string, count int) ([]chat_models.ItineraryImage, error) {
	if !c.Enabled() {
		log.Println("Unsplash API key is not set, skipping image search")
		return []chat_models.ItineraryImage{}, nil
	}
	query = strings.TrimSpace(query)
	if query == "" || count <= 0 {
		return []chat_models.ItineraryImage{}, nil
	}
	if count > maxPhotosPerPage {
		count = maxPhotosPerPage
	}

	key := photoCacheKey{Query: strings.ToLower(query), Count: count}
	if images, ok := c.Cache.Get(key); ok {
		return append([]chat_models.ItineraryImage{}, images...), nil
	}

	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrPhotoServiceError, err)
	}

	u, err := url.Parse(c.BaseURL + "/search/photos")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrPhotoServiceError, err)
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("per_page", strconv.Itoa(count))
	q.Set("orientation", "landscape")
	u.RawQuery = q.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	c.authorize(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: unsplash http error: %v", utils.ErrPhotoServiceError, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: unsplash bad status %s: %s", utils.ErrPhotoServiceError, resp.Status, body)
	}

	var payload unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: unsplash decode: %v", utils.ErrPhotoServiceError, err)
	}

	images := make([]chat_models.ItineraryImage, 0, len(payload.Results))
	for _, r := range payload.Results {
		images = append(images, chat_models.ItineraryImage{
			URL:              r.URLs.Regular,
			DownloadURL:      r.Links.DownloadLocation,
			PhotographerName: r.User.Name,
			PhotographerURL:  r.User.Links.HTML,
		})
	}
	if len(images) == 0 {
		log.Printf("No Unsplash images found for query: %q", query)
	}
	c.Cache.Add(key, images)
	return append([]chat_models.ItineraryImage{}, images...), nil
}

func (c *UnsplashClient) TrackDownload(ctx context.Context, downloadURL string) error {
	if !c.Enabled() {
		return utils.ErrPhotoServiceDisabled
	}
	if downloadURL == "" {
		return fmt.Errorf("%w: empty download url", utils.ErrInvalidInput)
	}
	if !c.Tracked.MarkIfNew(downloadURL) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		c.Tracked.Forget(downloadURL)
		return fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	c.authorize(req)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Tracked.Forget(downloadURL)
		return fmt.Errorf("%w: download tracking: %v", utils.ErrPhotoServiceError, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		c.Tracked.Forget(downloadURL)
		return fmt.Errorf("%w: download tracking bad status: %s", utils.ErrPhotoServiceError, resp.Status)
	}
	return nil
}

func (c *UnsplashClient) authorize(req *http.Request) {
	req.Header.Set("Authorization", "Client-ID "+c.AccessKey)
	req.Header.Set("Accept-Version", "v1")
}
