package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/jsonapi"
	"github.com/a-h/searchserver/models"
)

func New(baseURL, apiKey string) Client {
	return Client{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type Client struct {
	baseURL string
	apiKey  string
}

func (c Client) SearchPost(ctx context.Context, req models.SearchPostRequest) (results []models.SearchResult, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("api", "search").String()
	if err != nil {
		return nil, err
	}
	return jsonapi.Post[models.SearchPostRequest, []models.SearchResult](ctx, url, req, jsonapi.WithRequestHeader("Authorization", c.apiKey))
}

func (c Client) SummaryPost(ctx context.Context, req models.SummaryPostRequest) (resp models.SummaryPostResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("api", "summary").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.SummaryPostRequest, models.SummaryPostResponse](ctx, url, req, jsonapi.WithRequestHeader("Authorization", c.apiKey))
}

func (c Client) DocumentGet(ctx context.Context, id string) (doc map[string]any, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("api", "document", id).String()
	if err != nil {
		return nil, err
	}
	err = c.get(ctx, url, &doc)
	return doc, err
}

// HistoryGet lists recent searches. A limit of zero uses the server default.
func (c Client) HistoryGet(ctx context.Context, limit int) (resp models.HistoryGetResponse, err error) {
	ub := jsonapi.URL(c.baseURL).Path("api", "history")
	if limit > 0 {
		ub = ub.Query(map[string]string{"limit": strconv.Itoa(limit)})
	}
	url, err := ub.String()
	if err != nil {
		return resp, err
	}
	err = c.get(ctx, url, &resp)
	return resp, err
}

func (c Client) get(ctx context.Context, url string, out any) (err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	res, err := jsonapi.Raw(httpReq, jsonapi.WithRequestHeader("Authorization", c.apiKey))
	if err != nil {
		return fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(res.Body)
		return jsonapi.InvalidStatusError{
			Status: res.StatusCode,
			Body:   string(body),
		}
	}
	if err = json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
