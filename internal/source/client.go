package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/central-university-dev/go-content-notifier/internal/common/httputil"
	"github.com/central-university-dev/go-content-notifier/internal/common/metrics"
	"github.com/central-university-dev/go-content-notifier/internal/config"
	"github.com/central-university-dev/go-content-notifier/internal/domain/errors"
	"github.com/central-university-dev/go-content-notifier/internal/domain/models"
	"github.com/go-resty/resty/v2"
)

// Client — клиент табличного хранилища контента (Airtable-совместимый REST API).
type Client struct {
	client      *resty.Client
	baseURL     string
	token       string
	baseID      string
	postsTable  string
	guidesTable string
	logger      *slog.Logger
}

func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	baseURL := cfg.SourceBaseURL
	if baseURL == "" {
		baseURL = "https://api.airtable.com"
	}

	client := httputil.CreateResilientHTTPClient(cfg, logger, "content_source")

	return &Client{
		client:      client,
		baseURL:     baseURL,
		token:       cfg.SourceAPIToken,
		baseID:      cfg.SourceBaseID,
		postsTable:  cfg.SourcePostsTable,
		guidesTable: cfg.SourceGuidesTable,
		logger:      logger,
	}
}

type recordsPage struct {
	Records []struct {
		ID     string `json:"id"`
		Fields struct {
			Title string `json:"Title"`
		} `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

func (c *Client) FetchPosts(ctx context.Context) ([]models.ContentRecord, error) {
	return c.fetchTable(ctx, c.postsTable)
}

func (c *Client) FetchGuides(ctx context.Context) ([]models.ContentRecord, error) {
	return c.fetchTable(ctx, c.guidesTable)
}

func (c *Client) fetchTable(ctx context.Context, table string) ([]models.ContentRecord, error) {
	url := fmt.Sprintf("%s/v0/%s/%s", c.baseURL, c.baseID, table)

	records := make([]models.ContentRecord, 0)
	offset := ""

	for {
		start := time.Now()

		var page recordsPage

		request := c.client.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+c.token).
			SetResult(&page)

		if offset != "" {
			request.SetQueryParam("offset", offset)
		}

		resp, err := request.Get(url)
		if err != nil {
			metrics.RecordSourceRequest(table, "error", time.Since(start))
			c.logger.Error("Ошибка при запросе к источнику контента",
				"table", table,
				"error", err,
			)

			return nil, &errors.ErrSourceUnavailable{Source: table, Cause: err}
		}

		if !resp.IsSuccess() {
			metrics.RecordSourceRequest(table, "error", time.Since(start))
			c.logger.Error("Источник контента вернул ошибочный статус",
				"table", table,
				"status", resp.StatusCode(),
			)

			return nil, &errors.ErrSourceUnavailable{
				Source: table,
				Cause:  &errors.HTTPError{StatusCode: resp.StatusCode()},
			}
		}

		metrics.RecordSourceRequest(table, "success", time.Since(start))

		for _, record := range page.Records {
			records = append(records, models.ContentRecord{
				ID:    record.ID,
				Title: record.Fields.Title,
			})
		}

		// Источник отдаёт записи страницами: непустой offset означает, что есть ещё.
		if page.Offset == "" {
			break
		}

		offset = page.Offset
	}

	return records, nil
}
