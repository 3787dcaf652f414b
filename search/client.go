package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/jsonapi"
)

const DefaultAPIVersion = "2023-07-01-Preview"

type Option func(*Client)

func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithSemanticConfiguration enables semantic ranking, captions and answers
// using the named semantic configuration of the index.
func WithSemanticConfiguration(name string) Option {
	return func(c *Client) {
		c.semanticConfiguration = name
	}
}

func WithTop(n int) Option {
	return func(c *Client) {
		c.top = n
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client for a single index of an Azure AI Search service.
func New(endpoint, index, apiKey string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		index:      index,
		apiKey:     apiKey,
		apiVersion: DefaultAPIVersion,
		top:        10,
		timeout:    30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Client struct {
	endpoint              string
	index                 string
	apiKey                string
	apiVersion            string
	semanticConfiguration string
	top                   int
	timeout               time.Duration
}

type queryRequest struct {
	Search                string `json:"search"`
	Top                   int    `json:"top,omitempty"`
	Count                 bool   `json:"count"`
	Highlight             string `json:"highlight,omitempty"`
	QueryType             string `json:"queryType,omitempty"`
	SemanticConfiguration string `json:"semanticConfiguration,omitempty"`
	Captions              string `json:"captions,omitempty"`
	Answers               string `json:"answers,omitempty"`
}

// Query runs a search and returns the decoded response body. Numbers are
// decoded as json.Number.
func (c *Client) Query(ctx context.Context, text string) (body any, err error) {
	url, err := c.url("docs", "search")
	if err != nil {
		return nil, err
	}
	req := queryRequest{
		Search:    text,
		Top:       c.top,
		Count:     true,
		Highlight: "content",
	}
	if c.semanticConfiguration != "" {
		req.QueryType = "semantic"
		req.SemanticConfiguration = c.semanticConfiguration
		req.Captions = "extractive"
		req.Answers = "extractive"
	}
	err = c.do(ctx, http.MethodPost, url, req, &body)
	return body, err
}

// Document gets a single document from the index by its key.
func (c *Client) Document(ctx context.Context, key string) (doc map[string]any, ok bool, err error) {
	url, err := c.url("docs", key)
	if err != nil {
		return nil, false, err
	}
	err = c.do(ctx, http.MethodGet, url, nil, &doc)
	var ise jsonapi.InvalidStatusError
	if errors.As(err, &ise) && ise.Status == http.StatusNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

type IndexDefinition struct {
	Name   string  `json:"name"`
	ETag   string  `json:"@odata.etag"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Key         bool   `json:"key"`
	Searchable  bool   `json:"searchable"`
	Filterable  bool   `json:"filterable"`
	Sortable    bool   `json:"sortable"`
	Facetable   bool   `json:"facetable"`
	Retrievable bool   `json:"retrievable"`
}

func (d IndexDefinition) SearchableFields() (names []string) {
	for _, f := range d.Fields {
		if f.Searchable {
			names = append(names, f.Name)
		}
	}
	return names
}

func (d IndexDefinition) RetrievableFields() (names []string) {
	for _, f := range d.Fields {
		if f.Retrievable {
			names = append(names, f.Name)
		}
	}
	return names
}

// HasField reports whether the index defines the named field.
func (d IndexDefinition) HasField(name string) bool {
	for _, f := range d.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Index gets the definition of the index, used to check which of the
// file name fields the documents can carry.
func (c *Client) Index(ctx context.Context) (def IndexDefinition, err error) {
	url, err := c.url()
	if err != nil {
		return def, err
	}
	err = c.do(ctx, http.MethodGet, url, nil, &def)
	return def, err
}

func (c *Client) url(segments ...string) (string, error) {
	return jsonapi.URL(c.endpoint).
		Path(append([]string{"indexes", c.index}, segments...)...).
		Query(map[string]string{"api-version": c.apiVersion}).
		String()
}

func (c *Client) do(ctx context.Context, method, url string, body any, out any) (err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("search: failed to marshal request: %w", err)
		}
		r = bytes.NewReader(buf)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return fmt.Errorf("search: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	res, err := jsonapi.Raw(httpReq, jsonapi.WithRequestHeader("api-key", c.apiKey))
	if err != nil {
		return fmt.Errorf("search: failed to perform HTTP request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 64*1024))
		return jsonapi.InvalidStatusError{
			Status: res.StatusCode,
			Body:   string(body),
		}
	}
	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	if err = dec.Decode(out); err != nil {
		return fmt.Errorf("search: failed to decode response: %w", err)
	}
	return nil
}
