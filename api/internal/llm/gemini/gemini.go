// Package gemini implements the llm.Engine surface on the Google
// generative-ai SDK. All calls run with temperature 0 and a JSON response
// MIME type; transient failures get three attempts with a linear backoff.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"mathbot/api/internal/llm"
	"mathbot/api/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// --------------------------- READ ---------------------------

func (e *Engine) Read(ctx context.Context, image []byte, mime string) (llm.ReadResult, error) {
	if e.APIKey == "" {
		return llm.ReadResult{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return llm.ReadResult{}, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llm.ReadSystemPrompt)},
	}

	finalMIME := util.PickMIME(mime, "", image)
	parts := []genai.Part{
		genai.Text("Transcribe the problem. Reply with the JSON object only."),
		&genai.Blob{MIMEType: finalMIME, Data: image},
	}

	txt, err := e.generate(ctx, m, parts, "read")
	if err != nil {
		return llm.ReadResult{}, err
	}

	var rr llm.ReadResult
	if err := json.Unmarshal([]byte(txt), &rr); err != nil {
		return llm.ReadResult{}, fmt.Errorf("gemini read: bad JSON: %w", err)
	}
	llm.ApplyReadPolicy(&rr)
	return rr, nil
}

// --------------------------- SOLVE / EVAL ---------------------------

func (e *Engine) SolveText(ctx context.Context, problem string) (string, error) {
	return e.answer(ctx, llm.SolveSystemPrompt, problem, "solve")
}

func (e *Engine) Evaluate(ctx context.Context, expr string) (string, error) {
	return e.answer(ctx, llm.EvalSystemPrompt, expr, "eval")
}

func (e *Engine) answer(ctx context.Context, system, input, stage string) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	txt, err := e.generate(ctx, m, []genai.Part{genai.Text(input)}, stage)
	if err != nil {
		return "", err
	}

	var out struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(txt), &out); err != nil {
		return "", fmt.Errorf("gemini %s: bad JSON: %w", stage, err)
	}
	return strings.TrimSpace(out.Answer), nil
}

// generate runs one model call with retries and returns the fenced-free
// reply text.
func (e *Engine) generate(ctx context.Context, m *genai.GenerativeModel, parts []genai.Part, stage string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return "", fmt.Errorf("gemini %s: empty response", stage)
		}
		return util.StripCodeFences(txt), nil
	}
	return "", fmt.Errorf("gemini %s: %w", stage, lastErr)
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
