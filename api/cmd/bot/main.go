package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mathbot/api/internal/config"
	"mathbot/api/internal/httpserver"
	"mathbot/api/internal/llm"
	"mathbot/api/internal/llm/deepseek"
	"mathbot/api/internal/llm/gemini"
	"mathbot/api/internal/llm/openai"
	"mathbot/api/internal/llm/yandex"
	"mathbot/api/internal/store"
	"mathbot/api/internal/telegram"
)

func main() {
	cfg := config.Load()

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is empty")
	}

	// --- Postgres (optional) ---
	var db *sql.DB
	var solveRepo *store.SolveRepo
	var readRepo *store.ReadRepo

	if dsn := cfg.ResolveDSN(); dsn != "" {
		var err error
		db, err = store.Connect(context.Background(), dsn)
		if err != nil {
			log.Fatalf("store.Connect: %v", err)
		}
		log.Printf("db connected: %s", store.SafeDSNSummary(dsn))
		solveRepo = store.NewSolveRepo(db)
		readRepo = store.NewReadRepo(db)
		go housekeeping(solveRepo, readRepo)
	} else {
		log.Printf("no database configured; history and photo cache are off")
	}

	// --- Telegram bot ---
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false
	log.Printf("authorized as @%s", bot.Self.UserName)

	engines := buildEngines(cfg)
	def := engines.Default(cfg.DefaultEngine)
	if def == nil {
		log.Printf("no engine keys configured; photos and the oracle fallback are off")
	} else {
		log.Printf("default engine: %s (%s)", def.Name(), def.GetModel())
	}

	r := &telegram.Router{
		Bot:       bot,
		Manager:   llm.NewManager(def),
		Available: engines,
		SolveRepo: solveRepo,
		ReadRepo:  readRepo,
	}

	// ListenForWebhook registers on the DefaultServeMux, so healthz goes
	// there too.
	http.HandleFunc("/healthz", httpserver.Healthz(db))
	http.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("mathbot"))
	})

	addr := "0.0.0.0:" + cfg.Port

	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		startWebhookMode(addr, bot, r, webhookURL)
	} else {
		startPollingMode(addr, bot, r)
	}
}

func buildEngines(cfg *config.Config) telegram.Engines {
	var e telegram.Engines
	if cfg.GeminiAPIKey != "" {
		e.Gemini = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	}
	if cfg.OpenAIAPIKey != "" {
		e.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if cfg.DeepseekAPIKey != "" {
		e.Deepseek = deepseek.New(cfg.DeepseekAPIKey, cfg.DeepseekModel)
	}
	if cfg.YCOAuthToken != "" && cfg.YCFolderID != "" {
		e.Yandex = yandex.New(cfg.YCOAuthToken, cfg.YCFolderID)
	}
	return e
}

// ---------------- Modes -----------------

func startWebhookMode(addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string) {
	// Secret webhook path derived from the token.
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.Fatal(err)
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.Fatal(err)
	}

	// ListenForWebhook registers its handler on the DefaultServeMux.
	updates := bot.ListenForWebhook(path)

	go func() {
		for upd := range updates {
			r.HandleUpdate(upd)
		}
		log.Printf("webhook updates channel closed")
	}()

	log.Printf("webhook listening on %s%s", addr, path)
	if err := http.ListenAndServe(addr, nil); err != nil { // DefaultServeMux
		log.Fatal(err)
	}
}

func startPollingMode(addr string, bot *tgbotapi.BotAPI, r *telegram.Router) {
	// healthz stays useful even when polling.
	go func() {
		log.Printf("health server listening on %s/healthz", addr)
		if err := http.ListenAndServe(addr, nil); err != nil { // DefaultServeMux
			log.Fatal(err)
		}
	}()

	runPolling(context.Background(), bot, r.HandleUpdate)
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // Telegram HTTP 429
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

// runPolling long-polls getUpdates and keeps going through transient
// errors with a capped backoff instead of exiting.
func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			log.Printf("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling timeout (sec)

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := retryDelayFromError(err)
			if d < baseDelay {
				d = baseDelay
			}
			if d > maxDelay {
				d = maxDelay
			}
			log.Printf("polling error: %v; retry in %v", err, d)
			time.Sleep(d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

// ---------------- Helpers -----------------

// housekeeping drops read-cache rows past their freshness window and
// history older than a year, once a day.
func housekeeping(solveRepo *store.SolveRepo, readRepo *store.ReadRepo) {
	for {
		time.Sleep(24 * time.Hour)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if n, err := readRepo.PurgeOlderThan(ctx, 30*24*time.Hour); err != nil {
			log.Printf("purge read cache: %v", err)
		} else if n > 0 {
			log.Printf("purged %d read cache rows", n)
		}
		if n, err := solveRepo.PurgeOlderThan(ctx, 365*24*time.Hour); err != nil {
			log.Printf("purge history: %v", err)
		} else if n > 0 {
			log.Printf("purged %d history rows", n)
		}
		cancel()
	}
}

func shortHash(s string) string {
	// FNV-1a, hex. Stable per token, not secret by itself.
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
