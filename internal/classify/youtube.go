package classify

import (
	"context"
	"errors"
	"fmt"
	"fsd/internal/models"
	"fsd/internal/providers"
	"fsd/internal/structures"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
)

// videoCategoryMap translates YouTube Data API category ids. Everything not
// listed (gaming, entertainment, comedy, ...) counts as red.
var videoCategoryMap = map[string]string{
	"26": models.CategoryGreen,  // How-to & Style
	"27": models.CategoryGreen,  // Education
	"28": models.CategoryGreen,  // Science & Technology
	"25": models.CategoryYellow, // News & Politics
}

func CategoryForCode(code string) string {
	if cat, ok := videoCategoryMap[code]; ok {
		return cat
	}
	return models.CategoryRed
}

var ErrLookupUnavailable = errors.New("video lookup unavailable")

type YoutubeClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  providers.Logger
}

func NewVideoLookup(conf *structures.Config, logger providers.Logger) VideoLookupInterface {
	if conf.Classifier.YoutubeAPIKey == "" {
		logger.Infof(providers.TypeApp, "Video lookup disabled: no API key configured")
		return &disabledLookup{}
	}
	return &YoutubeClient{
		apiKey:  conf.Classifier.YoutubeAPIKey,
		baseURL: conf.Classifier.YoutubeAPIBase,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

type videoListResponse struct {
	Items []struct {
		Snippet struct {
			CategoryID string `json:"categoryId"`
		} `json:"snippet"`
	} `json:"items"`
}

// VideoCategory fetches the platform-assigned category id for a video.
func (y *YoutubeClient) VideoCategory(ctx context.Context, videoID string) (string, error) {
	if videoID == "" {
		return "", errors.New("empty video id")
	}

	apiURL := fmt.Sprintf("%s/videos?part=snippet&id=%s&key=%s",
		y.baseURL, url.QueryEscape(videoID), url.QueryEscape(y.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := y.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video lookup status %d", resp.StatusCode)
	}

	var payload videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Items) == 0 || payload.Items[0].Snippet.CategoryID == "" {
		return "", errors.New("video not found")
	}
	return payload.Items[0].Snippet.CategoryID, nil
}

type disabledLookup struct{}

func (d *disabledLookup) VideoCategory(_ context.Context, _ string) (string, error) {
	return "", ErrLookupUnavailable
}
