package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrEmptyName    = errors.New("play name is required")
	ErrSaveRejected = errors.New("save rejected")
	ErrNoDiagram    = errors.New("no diagram data")
)

// PlayClient talks to the play storage endpoints.
type PlayClient struct {
	baseURL string
	http    *http.Client
}

func NewPlayClient(baseURL string) *PlayClient {
	return &PlayClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
	}
}

type SaveRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DiagramData string `json:"diagram_data"`
}

// playID accepts identifiers sent either as JSON numbers or strings.
type playID string

func (id *playID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = playID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("play id: %w", err)
	}
	*id = playID(n.String())
	return nil
}

type saveResponse struct {
	Status  string `json:"status"`
	ID      playID `json:"id"`
	Message string `json:"message"`
}

// Save stores a diagram under name and returns the identifier the server
// assigned. An empty name is rejected without contacting the server.
func (c *PlayClient) Save(ctx context.Context, req SaveRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" {
		return "", ErrEmptyName
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("save play: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/play/save", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("save play: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("save play: %w", err)
	}
	defer resp.Body.Close()

	var out saveResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("save play: %s: %w", resp.Status, err)
	}
	if out.Status != "success" {
		return "", fmt.Errorf("%w: %s", ErrSaveRejected, out.Message)
	}
	return string(out.ID), nil
}

// Play is a stored diagram with its metadata.
type Play struct {
	ID          string
	Name        string
	Description string
	DiagramData []byte
}

type loadResponse struct {
	ID          playID          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DiagramData json.RawMessage `json:"diagram_data"`
}

// Load fetches a stored diagram. The diagram may be embedded either as a JSON
// string or as an object.
func (c *PlayClient) Load(ctx context.Context, id string) (*Play, error) {
	u := c.baseURL + "/api/play/" + url.PathEscape(id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("load play %s: %w", id, err)
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("load play %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("load play %s: %s", id, resp.Status)
	}

	var out loadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("load play %s: %s: %w", id, resp.Status, err)
	}

	data := bytes.TrimSpace(out.DiagramData)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("load play %s: %w", id, err)
		}
		data = []byte(s)
	}
	if len(data) == 0 || string(data) == "null" {
		return nil, fmt.Errorf("load play %s: %w", id, ErrNoDiagram)
	}

	return &Play{
		ID:          string(out.ID),
		Name:        out.Name,
		Description: out.Description,
		DiagramData: data,
	}, nil
}
