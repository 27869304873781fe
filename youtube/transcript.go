package youtube

import (
	"context"
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/Soohyeuk/ChefPanda/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type TranscriptConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TranscriptClient fetches timed caption tracks from the timedtext
// endpoint. Manual captions are tried first; auto-generated ("asr") tracks
// are the fallback and mark the transcript as generated.
type TranscriptClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *logrus.Logger
}

func NewTranscriptClient(cfg TranscriptConfig) *TranscriptClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &TranscriptClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     logrus.StandardLogger(),
	}
}

type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

// Fetch retrieves the transcript for one video in the given language. A
// transcript element with zero text nodes is a valid empty transcript; a
// missing track (empty response body) is an error.
func (t *TranscriptClient) Fetch(ctx context.Context, videoID, language string) (*models.Transcript, error) {
	body, err := t.fetchTrack(ctx, videoID, language, "")
	isGenerated := false

	if err != nil || len(body) == 0 {
		t.logger.WithFields(logrus.Fields{
			"video_id": videoID,
			"language": language,
		}).Debug("No manual captions, trying auto-generated track")

		body, err = t.fetchTrack(ctx, videoID, language, "asr")
		if err != nil {
			return nil, errors.Wrapf(err, "fetch transcript for %s", videoID)
		}
		if len(body) == 0 {
			return nil, errors.Errorf("no %s transcript available for video %s", language, videoID)
		}
		isGenerated = true
	}

	snippets, err := parseTimedText(body)
	if err != nil {
		return nil, errors.Wrapf(err, "parse transcript for %s", videoID)
	}

	return &models.Transcript{
		VideoID:      videoID,
		LanguageCode: language,
		IsGenerated:  isGenerated,
		Snippets:     snippets,
	}, nil
}

func (t *TranscriptClient) fetchTrack(ctx context.Context, videoID, language, kind string) ([]byte, error) {
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", language)
	if kind != "" {
		params.Set("kind", kind)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request transcript track")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("transcript track request: unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func parseTimedText(body []byte) ([]models.TranscriptSnippet, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(body)))
	decoder.Strict = false
	decoder.Entity = xml.HTMLEntity

	var doc timedText
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode timedtext XML")
	}

	snippets := make([]models.TranscriptSnippet, 0, len(doc.Texts))
	for _, text := range doc.Texts {
		snippets = append(snippets, models.TranscriptSnippet{
			Text:     strings.TrimSpace(text.Body),
			Start:    text.Start,
			Duration: text.Duration,
		})
	}

	// The endpoint serves tracks in time order already; keep the invariant
	// even if a track arrives unsorted.
	sort.SliceStable(snippets, func(i, j int) bool {
		return snippets[i].Start < snippets[j].Start
	})

	return snippets, nil
}
