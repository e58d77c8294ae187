package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mathbot/api/internal/store"
)

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	cid := cb.Message.Chat.ID
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack

	switch cb.Data {
	case "read_yes":
		r.onReadYes(cid, cb.Message.MessageID)
	case "read_no":
		r.onReadNo(cid, cb.Message.MessageID)
	case "steps_show":
		r.onShowSteps(cid, cb.Message.MessageID)
	}
}

func (r *Router) onReadYes(cid int64, msgID int) {
	v, ok := readWait.LoadAndDelete(cid)
	if !ok {
		r.send(cid, "Nothing is waiting for confirmation. Send the photo again.")
		return
	}
	p := v.(*readPending)

	if r.ReadRepo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.ReadRepo.MarkAccepted(ctx, p.Hash, p.Engine, p.Model, "user_yes"); err != nil && err != store.ErrNotFound {
			r.logStoreErr("read accept", err)
		}
		cancel()
	}

	r.clearKeyboard(cid, msgID)
	r.solveExtracted(cid, p.Read.Text)
}

func (r *Router) onReadNo(cid int64, msgID int) {
	r.clearKeyboard(cid, msgID)
	// readWait stays: the next plain message is the corrected text
	r.send(cid, "Type the problem as it should read and I will solve that instead.")
}

func (r *Router) onShowSteps(cid int64, msgID int) {
	v, ok := pendingSteps.LoadAndDelete(cid)
	if !ok {
		r.send(cid, "No steps stored for this chat anymore.")
		return
	}
	r.clearKeyboard(cid, msgID)
	r.sendMarkdown(cid, v.(string))
}

func (r *Router) clearKeyboard(cid int64, msgID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(cid, msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	_, _ = r.Bot.Send(edit)
}
