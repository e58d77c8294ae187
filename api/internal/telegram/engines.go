package telegram

import (
	"mathbot/api/internal/llm"
	"mathbot/api/internal/llm/deepseek"
	"mathbot/api/internal/llm/gemini"
	"mathbot/api/internal/llm/openai"
	"mathbot/api/internal/llm/yandex"
)

// Engines is the set a chat can switch between with /engine. Nil entries
// are engines the deployment has no key for.
type Engines struct {
	Gemini   *gemini.Engine
	OpenAI   *openai.Engine
	Deepseek *deepseek.Engine
	Yandex   *yandex.Engine
}

// byName resolves an /engine argument. A model override builds a fresh
// instance so other chats keep their model.
func (e Engines) byName(name, model string) llm.Engine {
	switch name {
	case "gemini":
		if e.Gemini == nil {
			return nil
		}
		if model != "" {
			return gemini.New(e.Gemini.APIKey, model)
		}
		return e.Gemini
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil
		}
		if model != "" {
			return openai.New(e.OpenAI.APIKey, model)
		}
		return e.OpenAI
	case "deepseek":
		if e.Deepseek == nil {
			return nil
		}
		if model != "" {
			return deepseek.New(e.Deepseek.APIKey, model)
		}
		return e.Deepseek
	case "yandex":
		if e.Yandex == nil {
			return nil
		}
		return e.Yandex
	default:
		return nil
	}
}

// Default picks the startup engine by config name, falling back to the
// first configured one.
func (e Engines) Default(name string) llm.Engine {
	if eng := e.byName(name, ""); eng != nil {
		return eng
	}
	switch {
	case e.Gemini != nil:
		return e.Gemini
	case e.OpenAI != nil:
		return e.OpenAI
	case e.Deepseek != nil:
		return e.Deepseek
	case e.Yandex != nil:
		return e.Yandex
	default:
		return nil
	}
}
