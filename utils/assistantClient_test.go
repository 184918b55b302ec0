package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAssistant fakes the assistant API: a run that first requires a
// tool call, then completes after outputs are submitted.
func stubAssistant(t *testing.T) (*httptest.Server, *[]string) {
	var toolSubmissions []string
	polls := 0

	mux := http.NewServeMux()
	mux.HandleFunc("POST /threads", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "thread_1"})
	})
	mux.HandleFunc("POST /threads/thread_1/messages", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("POST /threads/thread_1/runs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "run_1",
			"status": "requires_action",
			"required_action": map[string]interface{}{
				"submit_tool_outputs": map[string]interface{}{
					"tool_calls": []map[string]interface{}{
						{
							"id": "call_1",
							"function": map[string]string{
								"name":      "get_user_progress",
								"arguments": `{"path_slug":"new-to-america"}`,
							},
						},
					},
				},
			},
		})
	})
	mux.HandleFunc("POST /threads/thread_1/runs/run_1/submit_tool_outputs", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ToolOutputs []struct {
				Output string `json:"output"`
			} `json:"tool_outputs"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		for _, out := range body.ToolOutputs {
			toolSubmissions = append(toolSubmissions, out.Output)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "run_1", "status": "in_progress"})
	})
	mux.HandleFunc("GET /threads/thread_1/runs/run_1", func(w http.ResponseWriter, r *http.Request) {
		polls++
		status := "in_progress"
		if polls >= 1 {
			status = "completed"
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "run_1", "status": status})
	})
	mux.HandleFunc("GET /threads/thread_1/messages", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{
					"role": "assistant",
					"content": []map[string]interface{}{
						{"text": map[string]string{"value": "You have completed 3 lessons."}},
					},
				},
			},
		})
	})

	return httptest.NewServer(mux), &toolSubmissions
}

func TestAssistantRunWithToolDispatch(t *testing.T) {
	server, submissions := stubAssistant(t)
	defer server.Close()

	client := NewAssistantClientWithBaseURL(server.URL, "asst_test")
	ctx := context.Background()

	threadID, err := client.CreateThread(ctx)
	require.NoError(t, err)
	assert.Equal(t, "thread_1", threadID)

	require.NoError(t, client.AddMessage(ctx, threadID, "How am I doing?"))

	var toolName string
	var toolArgs string
	tools := func(name string, args json.RawMessage) (string, error) {
		toolName = name
		toolArgs = string(args)
		return `{"completed_lessons":3}`, nil
	}

	require.NoError(t, client.RunAndWait(ctx, threadID, "en", tools))

	assert.Equal(t, "get_user_progress", toolName)
	assert.JSONEq(t, `{"path_slug":"new-to-america"}`, toolArgs)
	require.Len(t, *submissions, 1)
	assert.JSONEq(t, `{"completed_lessons":3}`, (*submissions)[0])

	reply, err := client.LatestAssistantMessage(ctx, threadID)
	require.NoError(t, err)
	assert.Equal(t, "You have completed 3 lessons.", reply)
}

func TestAssistantRunTerminalFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /threads/thread_1/runs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":         "run_1",
			"status":     "failed",
			"last_error": map[string]string{"message": "rate limited"},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewAssistantClientWithBaseURL(server.URL, "asst_test")

	err := client.RunAndWait(context.Background(), "thread_1", "en", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
	assert.Contains(t, err.Error(), "rate limited")
}
