// Package youtube wraps the two upstream video endpoints the pipeline
// depends on: the Data API v3 directory (search, channel listing, video
// lookup, handle resolution) and the timedtext transcript endpoint.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Soohyeuk/ChefPanda/errors"
	"github.com/Soohyeuk/ChefPanda/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client talks to the YouTube Data API v3. Calls are single-shot; retry
// policy, where any, belongs to the caller.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *logrus.Logger
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     logrus.StandardLogger(),
	}
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type channelsResponse struct {
	Items []struct {
		ID string `json:"id"`
	} `json:"items"`
}

// Search returns up to limit video references for a free-text query, in
// provider-ranking order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]models.VideoReference, error) {
	const op = "youtube.Search"

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, apperrors.Internal(op, err, "YouTube search failed")
	}

	refs := make([]models.VideoReference, 0, len(resp.Items))
	for _, item := range resp.Items {
		refs = append(refs, models.VideoReference{
			ID:    item.ID.VideoID,
			Title: item.Snippet.Title,
		})
	}
	return refs, nil
}

// ChannelVideos returns up to limit video references for a channel,
// ordered by publish date, most recent first.
func (c *Client) ChannelVideos(ctx context.Context, channelID string, limit int) ([]models.VideoReference, error) {
	const op = "youtube.ChannelVideos"

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)
	params.Set("type", "video")
	params.Set("order", "date")
	params.Set("maxResults", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, apperrors.Internal(op, err, "YouTube channel listing failed")
	}

	refs := make([]models.VideoReference, 0, len(resp.Items))
	for _, item := range resp.Items {
		refs = append(refs, models.VideoReference{
			ID:    item.ID.VideoID,
			Title: item.Snippet.Title,
		})
	}
	return refs, nil
}

// Video looks up one video by ID and returns zero or one reference.
func (c *Client) Video(ctx context.Context, videoID string) ([]models.VideoReference, error) {
	const op = "youtube.Video"

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)

	var resp videosResponse
	if err := c.get(ctx, "/videos", params, &resp); err != nil {
		return nil, apperrors.Internal(op, err, "YouTube video lookup failed")
	}

	refs := make([]models.VideoReference, 0, len(resp.Items))
	for _, item := range resp.Items {
		refs = append(refs, models.VideoReference{
			ID:    item.ID,
			Title: item.Snippet.Title,
		})
	}
	return refs, nil
}

// ChannelIDByHandle resolves a channel handle to its channel ID. A leading
// "@" is stripped before the lookup, so "@cook" and "cook" query the same
// argument.
func (c *Client) ChannelIDByHandle(ctx context.Context, handle string) (string, error) {
	const op = "youtube.ChannelIDByHandle"

	params := url.Values{}
	params.Set("part", "id")
	params.Set("forHandle", strings.TrimPrefix(handle, "@"))

	var resp channelsResponse
	if err := c.get(ctx, "/channels", params, &resp); err != nil {
		return "", apperrors.Internal(op, err, "YouTube handle resolution failed")
	}

	if len(resp.Items) == 0 {
		return "", apperrors.NotFound(op, nil, fmt.Sprintf("channel not found for handle: %s", handle))
	}

	return resp.Items[0].ID, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v interface{}) error {
	params.Set("key", c.apiKey)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"path":   path,
			"status": resp.StatusCode,
		}).Warn("YouTube API returned non-OK status")
		return errors.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrapf(err, "decode %s response", path)
	}

	return nil
}
