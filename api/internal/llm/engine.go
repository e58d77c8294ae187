// Package llm defines the engine surface shared by the model providers:
// reading a problem off a photo and acting as the solver's external
// oracle for text it cannot handle locally.
package llm

import (
	"context"
	"sync"
)

type Engine interface {
	Name() string
	GetModel() string
	// Read extracts problem text from a photo. Unreadable spans come back
	// in [square brackets] so the confirmation policy can count them.
	Read(ctx context.Context, image []byte, mime string) (ReadResult, error)
	// SolveText asks the model for a final answer to a free-form problem.
	SolveText(ctx context.Context, problem string) (string, error)
	// Evaluate asks the model to evaluate or simplify a bare expression.
	Evaluate(ctx context.Context, expr string) (string, error)
}

// Manager keeps a per-chat engine choice over a default. Safe for
// concurrent use.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}

func (m *Manager) Default() Engine { return m.def }
