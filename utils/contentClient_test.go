package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	journeyModels "finlit/models/journey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPathsSendsAudienceParams(t *testing.T) {
	var gotQuery, gotSlugs, gotUserType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotSlugs = r.URL.Query().Get("$slugs")
		gotUserType = r.URL.Query().Get("$userType")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": []map[string]interface{}{
				{"_id": "p1", "slug": "new-to-america", "title": "New to America"},
			},
		})
	}))
	defer server.Close()

	client := NewContentClientWithBaseURL(server.URL)

	paths, err := client.FetchPaths(context.Background(), []string{"new-to-america"}, journeyModels.AudienceImmigrant)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "new-to-america", paths[0].Slug)

	assert.Contains(t, gotQuery, `userType == $userType`)
	assert.Equal(t, `["new-to-america"]`, gotSlugs)
	assert.Equal(t, `"immigrant"`, gotUserType)
}

func TestFetchPathsUnsetVariantPassesAll(t *testing.T) {
	var gotUserType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserType = r.URL.Query().Get("$userType")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"result": []interface{}{}})
	}))
	defer server.Close()

	client := NewContentClientWithBaseURL(server.URL)

	_, err := client.FetchPaths(context.Background(), []string{"banking-basics"}, "")
	require.NoError(t, err)
	assert.Equal(t, `"all"`, gotUserType)
}

func TestFetchPathsErrorDiagnostics(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantSubstr string
	}{
		{"unauthorized", http.StatusUnauthorized, "unauthorized"},
		{"forbidden", http.StatusForbidden, "unauthorized"},
		{"project not found", http.StatusNotFound, "not found"},
		{"server error", http.StatusInternalServerError, "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewContentClientWithBaseURL(server.URL)
			_, err := client.FetchPaths(context.Background(), []string{"x"}, journeyModels.AudienceAll)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantSubstr)
		})
	}
}

func TestFetchPathsRequiresSlugs(t *testing.T) {
	client := NewContentClientWithBaseURL("http://unused.invalid")
	_, err := client.FetchPaths(context.Background(), nil, journeyModels.AudienceAll)
	assert.Error(t, err)
}

func TestFetchPathNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"result": []interface{}{}})
	}))
	defer server.Close()

	client := NewContentClientWithBaseURL(server.URL)
	_, err := client.FetchPath(context.Background(), "missing-path", journeyModels.AudienceAll)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-path")
}

func TestQueryUserType(t *testing.T) {
	assert.Equal(t, "all", QueryUserType(""))
	assert.Equal(t, "all", QueryUserType(journeyModels.AudienceAll))
	assert.Equal(t, "immigrant", QueryUserType(journeyModels.AudienceImmigrant))
}
