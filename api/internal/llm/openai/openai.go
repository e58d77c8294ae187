// Package openai implements the llm.Engine surface over the raw
// chat-completions HTTP API.
package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mathbot/api/internal/llm"
	"mathbot/api/internal/util"
)

const endpoint = "https://api.openai.com/v1/chat/completions"

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

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Read(ctx context.Context, image []byte, mime string) (llm.ReadResult, error) {
	if e.APIKey == "" {
		return llm.ReadResult{}, fmt.Errorf("OPENAI_API_KEY is empty")
	}
	if mime == "" {
		mime = util.SniffMimeHTTP(image)
	}
	dataURL := util.MakeDataURL(mime, base64.StdEncoding.EncodeToString(image))

	messages := []any{
		map[string]any{"role": "system", "content": llm.ReadSystemPrompt},
		map[string]any{
			"role": "user",
			"content": []any{
				map[string]any{"type": "text", "text": "Transcribe the problem. Reply with the JSON object only."},
				map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL, "detail": "high"}},
			},
		},
	}

	out, err := e.chat(ctx, messages, "read")
	if err != nil {
		return llm.ReadResult{}, err
	}

	var rr llm.ReadResult
	if err := json.Unmarshal([]byte(out), &rr); err != nil {
		return llm.ReadResult{}, fmt.Errorf("openai read: bad JSON: %w", err)
	}
	llm.ApplyReadPolicy(&rr)
	return rr, nil
}

func (e *Engine) SolveText(ctx context.Context, problem string) (string, error) {
	return e.answer(ctx, llm.SolveSystemPrompt, problem, "solve")
}

func (e *Engine) Evaluate(ctx context.Context, expr string) (string, error) {
	return e.answer(ctx, llm.EvalSystemPrompt, expr, "eval")
}

func (e *Engine) answer(ctx context.Context, system, input, stage string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is empty")
	}
	messages := []any{
		map[string]any{"role": "system", "content": system},
		map[string]any{"role": "user", "content": input},
	}
	out, err := e.chat(ctx, messages, stage)
	if err != nil {
		return "", err
	}
	var payload struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		return "", fmt.Errorf("openai %s: bad JSON: %w", stage, err)
	}
	return strings.TrimSpace(payload.Answer), nil
}

// chat posts one completion request in strict JSON mode and returns the
// reply content with code fences stripped.
func (e *Engine) chat(ctx context.Context, messages []any, stage string) (string, error) {
	body := map[string]any{
		"model":           e.Model,
		"messages":        messages,
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
		return "", fmt.Errorf("openai %s %d: %s", stage, resp.StatusCode, strings.TrimSpace(string(x)))
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
		return "", fmt.Errorf("openai %s: empty response", stage)
	}
	return util.StripCodeFences(strings.TrimSpace(raw.Choices[0].Message.Content)), nil
}
