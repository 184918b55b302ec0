package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"finlit/config"
	journeyModels "finlit/models/journey"

	"github.com/go-resty/resty/v2"
)

// pathQuery is the audience-parameterized query for journey paths.
// The userType predicate is applied at every level of the tree (path,
// module, lesson) on purpose; the local re-filter in the journey
// package applies the same rule again after the round trip.
const pathQuery = `*[_type == "journeyPath" && slug.current in $slugs && (!defined(userType) || userType == "all" || userType == $userType)] | order(orderIndex asc) {
  _id, title, "slug": slug.current, description, duration, level, is_premium, user_type,
  "modules": modules[!defined(userType) || userType == "all" || userType == $userType] | order(order_index asc) {
    _id, title, description, duration, order_index, user_type,
    "lessons": lessons[!defined(userType) || userType == "all" || userType == $userType] | order(order_index asc) {
      _id, title, "slug": slug.current, type, order_index, duration, user_type,
      intro, learn, takeaways, actions, questions, video_url
    }
  }
}`

// ContentClient queries the headless content store. Reads only; the
// content team owns the data.
type ContentClient struct {
	http    *resty.Client
	dataset string
}

// NewContentClient builds a client from configuration. Missing
// credentials are a configuration error and fail immediately rather
// than on first query.
func NewContentClient() (*ContentClient, error) {
	cfg := config.AppConfig
	if cfg.ContentProjectID == "" {
		return nil, fmt.Errorf("content store: missing CONTENT_PROJECT_ID credential")
	}

	client := resty.New().
		SetBaseURL(fmt.Sprintf("https://%s.api.content.io/v%s/data/query/%s",
			cfg.ContentProjectID, cfg.ContentAPIVersion, cfg.ContentDataset))
	if cfg.ContentToken != "" {
		client.SetAuthToken(cfg.ContentToken)
	}

	return &ContentClient{http: client, dataset: cfg.ContentDataset}, nil
}

// NewContentClientWithBaseURL is used by tests to point the client at
// a stub server.
func NewContentClientWithBaseURL(baseURL string) *ContentClient {
	return &ContentClient{http: resty.New().SetBaseURL(baseURL)}
}

type queryResponse struct {
	Result  []journeyModels.Path `json:"result"`
	Message string               `json:"message"`
}

// QueryUserType returns the literal query parameter for a viewer
// variant. An unset variant is passed through as "all".
func QueryUserType(variant journeyModels.AudienceTag) string {
	if variant == "" {
		return string(journeyModels.AudienceAll)
	}
	return string(variant)
}

// FetchPaths fetches the journey paths for the given slugs, with
// modules and lessons already restricted to the viewer's audience.
// Errors propagate with store-specific diagnostics; no retry.
func (cc *ContentClient) FetchPaths(ctx context.Context, slugs []string, variant journeyModels.AudienceTag) ([]journeyModels.Path, error) {
	if len(slugs) == 0 {
		return nil, fmt.Errorf("content store: at least one path slug is required")
	}

	slugsParam, err := json.Marshal(slugs)
	if err != nil {
		return nil, fmt.Errorf("content store: failed to encode slugs: %w", err)
	}

	var body queryResponse
	resp, err := cc.http.R().
		SetContext(ctx).
		SetQueryParam("query", pathQuery).
		SetQueryParam("$slugs", string(slugsParam)).
		SetQueryParam("$userType", fmt.Sprintf("%q", QueryUserType(variant))).
		SetResult(&body).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("content store: request failed: %w", err)
	}

	switch resp.StatusCode() {
	case 200:
	case 401, 403:
		return nil, fmt.Errorf("content store: unauthorized, check CONTENT_TOKEN")
	case 404:
		return nil, fmt.Errorf("content store: project or dataset not found, check CONTENT_PROJECT_ID and CONTENT_DATASET")
	default:
		return nil, fmt.Errorf("content store: query failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	return body.Result, nil
}

// FetchPath is FetchPaths for a single slug
func (cc *ContentClient) FetchPath(ctx context.Context, slug string, variant journeyModels.AudienceTag) (journeyModels.Path, error) {
	paths, err := cc.FetchPaths(ctx, []string{slug}, variant)
	if err != nil {
		return journeyModels.Path{}, err
	}
	if len(paths) == 0 {
		return journeyModels.Path{}, fmt.Errorf("content store: no path found for slug %q", slug)
	}
	return paths[0], nil
}
