package store

import (
	"bytes"
	"fsd/internal/models"
	"fsd/internal/providers"
	"fsd/internal/structures"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
)

// UploaderInterface pushes a finalized session to the remote store.
// Best effort only: the local record is authoritative, so failures are
// logged and dropped, never retried or surfaced.
type UploaderInterface interface {
	Upload(session *models.Session)
}

type HTTPUploader struct {
	url     string
	client  *http.Client
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewUploader(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) UploaderInterface {
	if !conf.Upload.Enabled || conf.Upload.URL == "" {
		logger.Infof(providers.TypeApp, "Session upload disabled")
		return &noopUploader{}
	}

	timeout := conf.Upload.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPUploader{
		url:     conf.Upload.URL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
		metrics: metrics,
	}
}

func (u *HTTPUploader) Upload(session *models.Session) {
	body, err := json.Marshal(session)
	if err != nil {
		u.logger.Errorf(providers.TypeApp, "Session %s upload marshal failed: %s", session.ID, err)
		u.metrics.IncUploadFailures()
		return
	}

	resp, err := u.client.Post(u.url, "application/json", bytes.NewReader(body))
	if err != nil {
		u.logger.Warnf(providers.TypeApp, "Session %s upload failed: %s", session.ID, err)
		u.metrics.IncUploadFailures()
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		u.logger.Warnf(providers.TypeApp, "Session %s upload rejected: status %d", session.ID, resp.StatusCode)
		u.metrics.IncUploadFailures()
	}
}

type noopUploader struct{}

func (n *noopUploader) Upload(_ *models.Session) {}
