// Package yandex wraps the Yandex Vision OCR endpoint as a read-only
// llm.Engine. It transcribes handwriting well but cannot reason, so
// SolveText and Evaluate are capability errors and the solver treats a
// chat on this engine as oracle-less.
package yandex

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

type Engine struct {
	iamc     *IamClient
	folderID string
	httpc    *http.Client
}

func New(oauthToken, folderID string) *Engine {
	return &Engine{
		iamc:     NewIamClient(oauthToken),
		folderID: folderID,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string     { return "yandex" }
func (e *Engine) GetModel() string { return "handwritten" }

type request struct {
	Content       string   `json:"content"`
	MimeType      string   `json:"mimeType,omitempty"` // "JPEG" | "PNG" | "PDF"
	LanguageCodes []string `json:"languageCodes,omitempty"`
	Model         string   `json:"model,omitempty"`
}

type response struct {
	Result *struct {
		TextAnnotation *textAnnotation `json:"textAnnotation,omitempty"`
	} `json:"result,omitempty"`
}

type textAnnotation struct {
	FullText string `json:"fullText,omitempty"`
	Blocks   []struct {
		Lines []struct {
			Text string `json:"text,omitempty"`
		} `json:"lines,omitempty"`
	} `json:"blocks,omitempty"`
}

// Read runs one OCR pass. Vision reports no per-document confidence in
// this response shape, so Confidence stays 0 and the read policy always
// asks the user to confirm the transcript.
func (e *Engine) Read(ctx context.Context, image []byte, _ string) (llm.ReadResult, error) {
	iamToken, err := e.iamc.Token(ctx)
	if err != nil {
		return llm.ReadResult{}, err
	}

	reqBody := request{
		Content:       base64.StdEncoding.EncodeToString(image),
		MimeType:      util.SniffMimeForOCR(image),
		LanguageCodes: []string{"en", "ru"},
		Model:         "handwritten",
	}
	payload, _ := json.Marshal(reqBody)

	doPost := func(token string) (*http.Response, error) {
		req, _ := http.NewRequestWithContext(ctx, "POST",
			"https://ocr.api.cloud.yandex.net/ocr/v1/recognizeText",
			bytes.NewReader(payload),
		)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("x-folder-id", e.folderID)
		return e.httpc.Do(req)
	}

	resp, err := doPost(iamToken)
	if err != nil {
		return llm.ReadResult{}, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// one retry with a freshly issued IAM token
		resp.Body.Close()
		e.iamc.Invalidate()
		if iamToken, err = e.iamc.Token(ctx); err != nil {
			return llm.ReadResult{}, err
		}
		if resp, err = doPost(iamToken); err != nil {
			return llm.ReadResult{}, err
		}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return llm.ReadResult{}, fmt.Errorf("yandex ocr %d: %s", resp.StatusCode, string(x))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return llm.ReadResult{}, err
	}

	rr := llm.ReadResult{
		Text: extractText(&out),
		Note: "plain OCR transcript, please check the math symbols",
	}
	llm.ApplyReadPolicy(&rr)
	return rr, nil
}

func (e *Engine) SolveText(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("yandex is OCR-only and cannot solve; use /engine gemini, gpt or deepseek")
}

func (e *Engine) Evaluate(_ context.Context, _ string) (string, error) {
	return "", fmt.Errorf("yandex is OCR-only and cannot evaluate; use /engine gemini, gpt or deepseek")
}

// extractText prefers the assembled fullText and falls back to joining
// block lines.
func extractText(r *response) string {
	if r == nil || r.Result == nil || r.Result.TextAnnotation == nil {
		return ""
	}
	ta := r.Result.TextAnnotation
	if t := strings.TrimSpace(ta.FullText); t != "" {
		return t
	}
	var lines []string
	for _, b := range ta.Blocks {
		for _, l := range b.Lines {
			if s := strings.TrimSpace(l.Text); s != "" {
				lines = append(lines, s)
			}
		}
	}
	return strings.Join(lines, "\n")
}
