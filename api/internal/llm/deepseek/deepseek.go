// Package deepseek implements the text half of llm.Engine over the
// DeepSeek chat API. The API takes no images, so Read is a capability
// error and photo chats must switch engines.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mathbot/api/internal/llm"
	"mathbot/api/internal/util"
)

const endpoint = "https://api.deepseek.com/chat/completions"

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: key,
		Model:  model,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string     { return "deepseek" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Read(_ context.Context, _ []byte, _ string) (llm.ReadResult, error) {
	return llm.ReadResult{}, fmt.Errorf("deepseek cannot read images; use /engine gemini or /engine gpt for photos")
}

func (e *Engine) SolveText(ctx context.Context, problem string) (string, error) {
	return e.answer(ctx, llm.SolveSystemPrompt, problem, "solve")
}

func (e *Engine) Evaluate(ctx context.Context, expr string) (string, error) {
	return e.answer(ctx, llm.EvalSystemPrompt, expr, "eval")
}

func (e *Engine) answer(ctx context.Context, system, input, stage string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("DEEPSEEK_API_KEY is empty")
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": system},
			map[string]any{"role": "user", "content": input},
		},
		"temperature":     0,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("deepseek %s %d: %s", stage, resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", err
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("deepseek %s: empty response", stage)
	}
	out := util.StripCodeFences(strings.TrimSpace(raw.Choices[0].Message.Content))

	var pr struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(out), &pr); err != nil {
		return "", fmt.Errorf("deepseek %s: bad JSON: %w", stage, err)
	}
	return strings.TrimSpace(pr.Answer), nil
}
