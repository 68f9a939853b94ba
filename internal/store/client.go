package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"billed/internal/models"
)

// HTTPDoer defines the http.Client interface subset used by the client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource yields the bearer token for the active session, if any.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the billed-api over HTTP and implements Store.
type Client struct {
	baseURL string
	client  HTTPDoer
	tokens  TokenSource
	logger  *zap.Logger
}

// NewClient builds the HTTP store client.
func NewClient(baseURL string, client HTTPDoer, tokens TokenSource, logger *zap.Logger) *Client {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		tokens:  tokens,
		logger:  logger,
	}
}

// Bills returns the bills resource handle.
func (c *Client) Bills() Resource {
	return &billsResource{client: c}
}

type billsResource struct {
	client *Client
}

func (r *billsResource) List(ctx context.Context) ([]models.Bill, error) {
	req, err := r.client.newRequest(ctx, http.MethodGet, "/bills", "", nil)
	if err != nil {
		return nil, err
	}
	var bills []models.Bill
	if err := r.client.do(req, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billsResource) Create(ctx context.Context, input CreateInput) (CreateResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", input.File.Name)
	if err != nil {
		return CreateResult{}, err
	}
	if _, err := part.Write(input.File.Content); err != nil {
		return CreateResult{}, err
	}
	if err := writer.WriteField("email", input.Email); err != nil {
		return CreateResult{}, err
	}
	if err := writer.Close(); err != nil {
		return CreateResult{}, err
	}

	req, err := r.client.newRequest(ctx, http.MethodPost, "/bills", writer.FormDataContentType(), &body)
	if err != nil {
		return CreateResult{}, err
	}
	var result CreateResult
	if err := r.client.do(req, &result); err != nil {
		return CreateResult{}, err
	}
	return result, nil
}

func (r *billsResource) Update(ctx context.Context, input UpdateInput) (models.Bill, error) {
	data, err := json.Marshal(input.Data)
	if err != nil {
		return models.Bill{}, err
	}
	path := fmt.Sprintf("/bills/%s", input.Selector)
	req, err := r.client.newRequest(ctx, http.MethodPut, path, "application/json", bytes.NewReader(data))
	if err != nil {
		return models.Bill{}, err
	}
	var updated models.Bill
	if err := r.client.do(req, &updated); err != nil {
		return models.Bill{}, err
	}
	return updated, nil
}

func (c *Client) newRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("store request failed", zap.String("path", req.URL.Path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// statusError converts a non-success response into the error whose message
// is rendered verbatim on the page. 404 and 500 map to their fixed labels;
// anything else passes the server's own message through untouched.
func statusError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound:
		return errors.New("Erreur 404")
	case http.StatusInternalServerError:
		return errors.New("Erreur 500")
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s", payload.Error)
	}
	return fmt.Errorf("Erreur %d", resp.StatusCode)
}
