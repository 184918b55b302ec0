package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"finlit/config"

	"github.com/go-resty/resty/v2"
)

// ToolHandler resolves one assistant tool call to its string output.
// The chat controller wires in handlers backed by the progress store
// and the content client.
type ToolHandler func(name string, args json.RawMessage) (string, error)

// AssistantClient drives a multi-turn conversation thread against the
// assistant API: create or reuse a thread, add the user message, run
// the assistant and poll until a terminal status, dispatching at most
// one level of tool calls along the way.
type AssistantClient struct {
	http        *resty.Client
	assistantID string
}

// NewAssistantClient builds a client from configuration
func NewAssistantClient() (*AssistantClient, error) {
	cfg := config.AppConfig
	if cfg.AssistantAPIKey == "" {
		return nil, fmt.Errorf("assistant: missing ASSISTANT_API_KEY credential")
	}
	if cfg.AssistantID == "" {
		return nil, fmt.Errorf("assistant: missing ASSISTANT_ID credential")
	}

	client := resty.New().
		SetBaseURL(cfg.AssistantAPIURL).
		SetAuthToken(cfg.AssistantAPIKey).
		SetHeader("OpenAI-Beta", "assistants=v2")

	return &AssistantClient{http: client, assistantID: cfg.AssistantID}, nil
}

// NewAssistantClientWithBaseURL is used by tests to point the client
// at a stub server.
func NewAssistantClientWithBaseURL(baseURL, assistantID string) *AssistantClient {
	return &AssistantClient{
		http:        resty.New().SetBaseURL(baseURL),
		assistantID: assistantID,
	}
}

type threadResponse struct {
	ID string `json:"id"`
}

type runResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	RequiredAction *struct {
		SubmitToolOutputs struct {
			ToolCalls []struct {
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"submit_tool_outputs"`
	} `json:"required_action"`
	LastError *struct {
		Message string `json:"message"`
	} `json:"last_error"`
}

type messageListResponse struct {
	Data []struct {
		Role    string `json:"role"`
		Content []struct {
			Text struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

// CreateThread opens a new conversation thread
func (ac *AssistantClient) CreateThread(ctx context.Context) (string, error) {
	var thread threadResponse
	resp, err := ac.http.R().
		SetContext(ctx).
		SetResult(&thread).
		Post("/threads")
	if err != nil {
		return "", fmt.Errorf("assistant: failed to create thread: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("assistant: thread creation failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return thread.ID, nil
}

// AddMessage appends a user message to the thread
func (ac *AssistantClient) AddMessage(ctx context.Context, threadID, message string) error {
	resp, err := ac.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"role": "user", "content": message}).
		Post(fmt.Sprintf("/threads/%s/messages", threadID))
	if err != nil {
		return fmt.Errorf("assistant: failed to add message: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("assistant: message add failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// RunAndWait starts a run and polls until a terminal status. A
// requires_action status dispatches the requested tool calls through
// the handler and submits their outputs, then keeps polling.
func (ac *AssistantClient) RunAndWait(ctx context.Context, threadID, language string, tools ToolHandler) error {
	var run runResponse
	resp, err := ac.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"assistant_id":            ac.assistantID,
			"additional_instructions": fmt.Sprintf("Respond in language code %q.", language),
		}).
		SetResult(&run).
		Post(fmt.Sprintf("/threads/%s/runs", threadID))
	if err != nil {
		return fmt.Errorf("assistant: failed to start run: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("assistant: run start failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	for {
		switch run.Status {
		case "completed":
			return nil
		case "failed", "cancelled", "expired":
			detail := run.Status
			if run.LastError != nil {
				detail = fmt.Sprintf("%s: %s", run.Status, run.LastError.Message)
			}
			return fmt.Errorf("assistant: run ended with status %s", detail)
		case "requires_action":
			if err := ac.submitToolOutputs(ctx, threadID, &run, tools); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}

		pollResp, err := ac.http.R().
			SetContext(ctx).
			SetResult(&run).
			Get(fmt.Sprintf("/threads/%s/runs/%s", threadID, run.ID))
		if err != nil {
			return fmt.Errorf("assistant: failed to poll run: %w", err)
		}
		if pollResp.IsError() {
			return fmt.Errorf("assistant: run poll failed with status %d: %s", pollResp.StatusCode(), pollResp.String())
		}
	}
}

func (ac *AssistantClient) submitToolOutputs(ctx context.Context, threadID string, run *runResponse, tools ToolHandler) error {
	if run.RequiredAction == nil || tools == nil {
		return fmt.Errorf("assistant: run requires action but no tool handler is wired")
	}

	type toolOutput struct {
		ToolCallID string `json:"tool_call_id"`
		Output     string `json:"output"`
	}

	var outputs []toolOutput
	for _, call := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
		output, err := tools(call.Function.Name, json.RawMessage(call.Function.Arguments))
		if err != nil {
			log.Printf("[CHAT] Tool %q failed: %v", call.Function.Name, err)
			output = fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		outputs = append(outputs, toolOutput{ToolCallID: call.ID, Output: output})
	}

	resp, err := ac.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"tool_outputs": outputs}).
		SetResult(run).
		Post(fmt.Sprintf("/threads/%s/runs/%s/submit_tool_outputs", threadID, run.ID))
	if err != nil {
		return fmt.Errorf("assistant: failed to submit tool outputs: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("assistant: tool output submit failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// LatestAssistantMessage returns the newest assistant reply in the
// thread.
func (ac *AssistantClient) LatestAssistantMessage(ctx context.Context, threadID string) (string, error) {
	var list messageListResponse
	resp, err := ac.http.R().
		SetContext(ctx).
		SetQueryParam("order", "desc").
		SetQueryParam("limit", "10").
		SetResult(&list).
		Get(fmt.Sprintf("/threads/%s/messages", threadID))
	if err != nil {
		return "", fmt.Errorf("assistant: failed to list messages: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("assistant: message list failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	for _, msg := range list.Data {
		if msg.Role == "assistant" && len(msg.Content) > 0 {
			return msg.Content[0].Text.Value, nil
		}
	}
	return "", fmt.Errorf("assistant: no assistant reply found in thread")
}
