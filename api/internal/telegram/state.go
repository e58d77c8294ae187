package telegram

import (
	"sync"
	"time"

	"mathbot/api/internal/llm"
)

const (
	// albumDebounce is how long after the last photo of a media group we
	// wait before merging and reading the batch.
	albumDebounce = 1200 * time.Millisecond
	// maxPixels caps the merged image before it goes to a vision model.
	maxPixels = 18_000_000
	// replyLimit keeps replies under Telegram's 4096-byte message cap.
	replyLimit = 3900
	// cacheMaxAge bounds how old a cached photo extraction may be.
	cacheMaxAge = 30 * 24 * time.Hour
)

// readPending is a photo extraction waiting for the user's yes/no (or a
// typed correction after "no"). Engine and Model pin the cache row that
// produced it, in case the chat switches engines before answering.
type readPending struct {
	Hash   string
	Read   llm.ReadResult
	Engine string
	Model  string
}

type photoBatch struct {
	ChatID       int64
	Key          string // "grp:<mediaGroupID>" | "chat:<chatID>"
	MediaGroupID string

	mu     sync.Mutex
	images [][]byte
	timer  *time.Timer
}

var (
	batches      sync.Map // key -> *photoBatch
	readWait     sync.Map // chatID -> *readPending
	pendingSteps sync.Map // chatID -> string (full markdown behind the steps button)
)
