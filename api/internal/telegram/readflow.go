package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mathbot/api/internal/llm"
	"mathbot/api/internal/store"
	"mathbot/api/internal/util"
)

// runReadAndMaybeConfirm turns a merged photo into problem text: cache
// first, then the chat's engine, then the confirmation policy decides
// whether the user vets the transcript before solving.
func (r *Router) runReadAndMaybeConfirm(cid int64, merged []byte, mediaGroupID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	eng := r.Manager.Get(cid)
	if eng == nil {
		r.send(cid, "No engine configured for photo reading. Set an API key and pick one with /engine.")
		return
	}

	hash := util.SHA256Hex(merged)

	if r.ReadRepo != nil {
		if row, err := r.ReadRepo.FindByHash(ctx, hash, eng.Name(), eng.GetModel(), cacheMaxAge); err == nil && row.Accepted {
			r.solveExtracted(cid, row.Read.Text)
			return
		}
	}

	rr, err := eng.Read(ctx, merged, util.SniffMimeHTTP(merged))
	if err != nil {
		r.SendError(cid, fmt.Errorf("read photo: %w", err))
		return
	}

	if r.ReadRepo != nil {
		if err := r.ReadRepo.Upsert(ctx, cid, mediaGroupID, hash, eng.Name(), eng.GetModel(), rr, false, ""); err != nil {
			// cache trouble must not block the chat
			r.logStoreErr("read upsert", err)
		}
	}

	if rr.ConfirmationNeeded {
		readWait.Store(cid, &readPending{Hash: hash, Read: rr, Engine: eng.Name(), Model: eng.GetModel()})
		r.askReadConfirmation(cid, rr)
		return
	}

	if r.ReadRepo != nil {
		if err := r.ReadRepo.MarkAccepted(ctx, hash, eng.Name(), eng.GetModel(), "auto"); err != nil && err != store.ErrNotFound {
			r.logStoreErr("read accept", err)
		}
	}
	r.solveExtracted(cid, rr.Text)
}

func (r *Router) askReadConfirmation(cid int64, rr llm.ReadResult) {
	var b strings.Builder
	b.WriteString("Here is what I read. Did I get it right?\n")
	if s := strings.TrimSpace(rr.Text); s != "" {
		b.WriteString("```\n")
		b.WriteString(s)
		b.WriteString("\n```\n")
	} else {
		b.WriteString("_(could not read any text)_\n")
	}
	if n := strings.TrimSpace(rr.Note); n != "" {
		b.WriteString("\nNote: " + esc(n) + "\n")
	}

	msg := tgbotapi.NewMessage(cid, b.String())
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = makeReadConfirmKeyboard()
	if _, err := r.Bot.Send(msg); err != nil {
		// plain retry without markup formatting
		plain := tgbotapi.NewMessage(cid, "Here is what I read:\n"+rr.Text+"\nReply with the corrected text if it is wrong.")
		plain.ReplyMarkup = makeReadConfirmKeyboard()
		_, _ = r.Bot.Send(plain)
	}
}

// applyCorrection takes the typed replacement after "No, let me fix it",
// stores it as the accepted extraction and solves it.
func (r *Router) applyCorrection(cid int64, corrected string) {
	v, ok := readWait.LoadAndDelete(cid)
	if !ok {
		return
	}
	p := v.(*readPending)

	rr := p.Read
	rr.Text = corrected
	rr.ConfirmationNeeded = false
	rr.ConfirmationReason = "none"

	if r.ReadRepo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.ReadRepo.Upsert(ctx, cid, "", p.Hash, p.Engine, p.Model, rr, true, "user_fix"); err != nil {
			r.logStoreErr("read fix upsert", err)
		}
		cancel()
	}

	r.send(cid, "Thanks, solving the corrected text.")
	r.solveExtracted(cid, corrected)
}

func (r *Router) logStoreErr(stage string, err error) {
	log.Printf("store %s: %v", stage, err)
}
