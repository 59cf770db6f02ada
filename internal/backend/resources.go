package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/studiowebux/apiconsole/internal/types"
)

const resourcesPath = "/api/apis"

// listResponse is the paginated listing envelope
type listResponse struct {
	APIs  []types.ApiResource `json:"apis"`
	Pages int                 `json:"pages"`
	Page  int                 `json:"page"`
}

// ListResources fetches one page of resources
func (c *Client) ListResources(ctx context.Context, page, pageSize int) (types.Page[types.ApiResource], error) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		query.Set("per_page", strconv.Itoa(pageSize))
	}

	body, err := c.do(ctx, "GET", resourcesPath, query, nil, "")
	if err != nil {
		return types.Page[types.ApiResource]{}, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return types.Page[types.ApiResource]{}, fmt.Errorf("parsing response: %w", err)
	}

	result := types.Page[types.ApiResource]{
		Items:      resp.APIs,
		Page:       resp.Page,
		TotalPages: resp.Pages,
	}
	if result.Items == nil {
		result.Items = []types.ApiResource{}
	}
	if result.Page < 1 {
		result.Page = page
	}
	// An empty collection reports zero pages
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	return result, nil
}

// CreateResource creates a resource; the server assigns id, status and timestamps
func (c *Client) CreateResource(ctx context.Context, in types.ResourceInput) (types.ApiResource, error) {
	in.Status = ""
	body, err := c.do(ctx, "POST", resourcesPath, nil, in, "")
	if err != nil {
		return types.ApiResource{}, err
	}
	var r types.ApiResource
	if err := decodeEnveloped(body, "api", &r); err != nil {
		return types.ApiResource{}, err
	}
	return r, nil
}

// UpdateResource replaces the writable fields of resource id
func (c *Client) UpdateResource(ctx context.Context, id string, in types.ResourceInput) (types.ApiResource, error) {
	if id == "" {
		return types.ApiResource{}, fmt.Errorf("resource id is required")
	}
	body, err := c.do(ctx, "PUT", resourcesPath+"/"+url.PathEscape(id), nil, in, "")
	if err != nil {
		return types.ApiResource{}, err
	}
	var r types.ApiResource
	if err := decodeEnveloped(body, "api", &r); err != nil {
		return types.ApiResource{}, err
	}
	return r, nil
}

// DeleteResource removes resource id
func (c *Client) DeleteResource(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("resource id is required")
	}
	_, err := c.do(ctx, "DELETE", resourcesPath+"/"+url.PathEscape(id), nil, nil, "")
	return err
}

// FindResource walks the listing until a resource with id is found.
// The backend has no single-record endpoint.
func (c *Client) FindResource(ctx context.Context, id string, pageSize int) (types.ApiResource, error) {
	for page := 1; ; page++ {
		p, err := c.ListResources(ctx, page, pageSize)
		if err != nil {
			return types.ApiResource{}, err
		}
		for _, r := range p.Items {
			if r.ID == id {
				return r, nil
			}
		}
		if page >= p.TotalPages || p.Empty() {
			return types.ApiResource{}, fmt.Errorf("resource %q not found", id)
		}
	}
}
