// Package telegram drives the bot: text problems go straight to the
// solver, photos go through engine read and user confirmation first.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"mathbot/api/internal/llm"
	"mathbot/api/internal/solver"
	"mathbot/api/internal/store"
	"mathbot/api/internal/util"
)

type Router struct {
	Bot       *tgbotapi.BotAPI
	Manager   *llm.Manager
	Available Engines

	// nil repos disable persistence; everything else keeps working
	SolveRepo *store.SolveRepo
	ReadRepo  *store.ReadRepo
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	// a text message while a "No, let me fix it" is pending is the
	// corrected problem statement
	if _, ok := readWait.Load(cid); ok && !upd.Message.IsCommand() && upd.Message.Text != "" {
		r.applyCorrection(cid, upd.Message.Text)
		return
	}

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}

	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}

	if text := strings.TrimSpace(upd.Message.Text); text != "" {
		r.handleText(cid, text)
	}
}

// ---------------- Commands -----------------

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	args := strings.TrimSpace(upd.Message.CommandArguments())

	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Hi! Send me a math problem as text or a photo and I will solve it step by step.\n"+
			"Several problems in one message are fine, I solve them one by one.\n"+
			"Commands: /help /engine /classify /history /health")
	case "help":
		r.send(cid, "• Text: just type the problem, e.g. \"Solve 2x + 3 = 7\" or \"What is sin(30) + cos(60)?\"\n"+
			"• Photo: send a picture of the problem; multi-photo albums are merged into one page.\n"+
			"• /engine {gemini|gpt|deepseek|yandex} [model] picks the model for photo reading and hard problems.\n"+
			"• /classify <text> shows the detected category without solving.\n"+
			"• /history shows your recent solves.")
	case "engine":
		r.handleEngineCommand(cid, args)
	case "classify":
		if args == "" {
			r.send(cid, "Usage: /classify <problem text>")
			return
		}
		r.send(cid, "Category: "+solver.Classify(args))
	case "history":
		r.handleHistory(cid)
	case "health":
		r.handleHealth(cid)
	default:
		r.send(cid, "Unknown command. Try /help.")
	}
}

func (r *Router) handleEngineCommand(cid int64, args string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		cur := r.Manager.Get(cid)
		if cur == nil {
			r.send(cid, "No engine configured. Set GEMINI_API_KEY, OPENAI_API_KEY, DEEPSEEK_API_KEY or YC_OAUTH_TOKEN.")
			return
		}
		r.send(cid, "Current engine: "+cur.Name()+" ("+cur.GetModel()+")\n"+
			"Usage:\n/engine gemini [model]\n/engine gpt [model]\n/engine deepseek [model]\n/engine yandex")
		return
	}

	name := strings.ToLower(fields[0])
	var model string
	if len(fields) > 1 {
		model = fields[1]
	}

	eng := r.Available.byName(name, model)
	if eng == nil {
		r.send(cid, "Unknown or unconfigured engine. Available: gemini | gpt | deepseek | yandex")
		return
	}
	r.Manager.Set(cid, eng)

	note := ""
	switch name {
	case "deepseek":
		note = "\nNote: deepseek is text-only; photos need gemini, gpt or yandex."
	case "yandex":
		note = "\nNote: yandex only reads photos; hard problems will fall back to the local solver."
	}
	r.send(cid, fmt.Sprintf("Engine switched to %s (%s).%s", eng.Name(), eng.GetModel(), note))
}

func (r *Router) handleHistory(cid int64) {
	if r.SolveRepo == nil {
		r.send(cid, "History is off: no database configured.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	recs, err := r.SolveRepo.History(ctx, cid, 5)
	if err != nil {
		r.SendError(cid, fmt.Errorf("history: %w", err))
		return
	}
	if len(recs) == 0 {
		r.send(cid, "No solves yet. Send me a problem!")
		return
	}
	var b strings.Builder
	b.WriteString("Your recent solves:\n")
	for _, rec := range recs {
		fmt.Fprintf(&b, "• %s → %s\n", util.Truncate(rec.Problem, 60), rec.Answer)
	}
	r.send(cid, b.String())
}

func (r *Router) handleHealth(cid int64) {
	if r.SolveRepo == nil {
		r.send(cid, "OK (no database)")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.SolveRepo.DB.PingContext(ctx); err != nil {
		r.send(cid, "Degraded: db not reachable: "+err.Error())
		return
	}
	r.send(cid, "OK")
}

// ---------------- Solving -----------------

// handleText solves typed problems and replies with the full rendered
// report.
func (r *Router) handleText(cid int64, text string) {
	recs := r.solve(cid, text)
	r.sendMarkdown(cid, solver.RenderMarkdown(recs))
}

// solveExtracted solves confirmed photo text. The reply is compact, the
// full report waits behind the steps button.
func (r *Router) solveExtracted(cid int64, text string) {
	recs := r.solve(cid, text)

	var b strings.Builder
	b.WriteString("Solved:\n")
	for _, rec := range recs {
		if rec.Err != "" {
			fmt.Fprintf(&b, "%d. could not solve: %s\n", rec.Number, esc(rec.Err))
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", rec.Number, esc(rec.Answer))
	}

	pendingSteps.Store(cid, solver.RenderMarkdown(recs))
	msg := tgbotapi.NewMessage(cid, b.String())
	msg.ReplyMarkup = makeStepsKeyboard()
	if _, err := r.Bot.Send(msg); err != nil {
		log.Printf("telegram send: %v", err)
	}
}

// solve runs the pipeline with the chat's engine as oracle and persists
// the records off the reply path.
func (r *Router) solve(cid int64, text string) []solver.Solution {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	eng := r.Manager.Get(cid)
	s := solver.New(solver.Options{Oracle: oracleOrNil(eng)})
	recs := s.Solve(ctx, text)

	if r.SolveRepo != nil {
		engineName := ""
		if eng != nil {
			engineName = eng.Name()
		}
		go r.persist(cid, engineName, recs)
	}
	return recs
}

func (r *Router) persist(cid int64, engine string, recs []solver.Solution) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	batch := uuid.New()
	for _, rec := range recs {
		if err := r.SolveRepo.Insert(ctx, store.RecordFromSolution(batch, cid, engine, rec)); err != nil {
			log.Printf("history insert: %v", err)
			return
		}
	}
}

// oracleOrNil keeps a nil engine from becoming a non-nil Oracle interface.
func oracleOrNil(eng llm.Engine) solver.Oracle {
	if eng == nil {
		return nil
	}
	return eng
}

// ---------------- Send helpers -----------------

func (r *Router) send(cid int64, text string) {
	msg := tgbotapi.NewMessage(cid, util.Truncate(text, replyLimit))
	if _, err := r.Bot.Send(msg); err != nil {
		log.Printf("telegram send: %v", err)
	}
}

func (r *Router) sendMarkdown(cid int64, text string) {
	msg := tgbotapi.NewMessage(cid, util.Truncate(text, replyLimit))
	msg.ParseMode = "Markdown"
	if _, err := r.Bot.Send(msg); err != nil {
		// Markdown can fail on unlucky problem text; resend plain
		plain := tgbotapi.NewMessage(cid, util.Truncate(text, replyLimit))
		if _, err2 := r.Bot.Send(plain); err2 != nil {
			log.Printf("telegram send: %v (markdown: %v)", err2, err)
		}
	}
}

func (r *Router) SendError(cid int64, err error) {
	r.send(cid, fmt.Sprintf("Something went wrong: %v", err))
}
