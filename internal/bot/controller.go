package bot

import (
	"context"
	"fmt"
	"regexp"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"github.com/tgrab/tgrab/internal/download"
	"github.com/tgrab/tgrab/internal/model"
	"github.com/tgrab/tgrab/internal/session"
)

var urlRegex = regexp.MustCompile(`(?i)https?://\S+`)

// Controller translates Telegram updates into session, extraction and
// delivery calls, and renders the outcomes back into the chat. It holds no
// per-conversation state of its own; everything lives in the session store.
type Controller struct {
	store  *session.Store
	engine download.Engine
	svc    *download.Service
}

// NewController wires the dialogue layer to its collaborators.
func NewController(store *session.Store, engine download.Engine, svc *download.Service) *Controller {
	return &Controller{store: store, engine: engine, svc: svc}
}

// Run connects to Telegram and processes updates until ctx is cancelled.
// Each update is handled on its own goroutine by the transport.
func (c *Controller) Run(ctx context.Context, token string) error {
	b, err := tgbot.New(token, tgbot.WithDefaultHandler(c.handleMessage))
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	b.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, c.handleStart)
	b.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, CallbackPrefix, tgbot.MatchTypePrefix, c.handleSelection)

	log.Info().Msg("Bot is running")
	b.Start(ctx)
	return nil
}

func (c *Controller) sendText(ctx context.Context, b *tgbot.Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.Warn().Err(err).Int64("chat", chatID).Msg("Failed to send message")
	}
}

// editOrSend updates a status message, editing the caption for photo
// messages and the text otherwise. Editing fails for messages that are too
// old; the status must not be lost, so it falls back to a fresh message.
func (c *Controller) editOrSend(ctx context.Context, b *tgbot.Bot, msg *models.Message, text string) {
	var err error
	if len(msg.Photo) > 0 {
		_, err = b.EditMessageCaption(ctx, &tgbot.EditMessageCaptionParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Caption:   text,
		})
	} else {
		_, err = b.EditMessageText(ctx, &tgbot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      text,
		})
	}
	if err != nil {
		c.sendText(ctx, b, msg.Chat.ID, text)
	}
}

func buildKeyboard(token string, choices []model.FormatChoice) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(choices))
	for i, choice := range choices {
		label := choice.Label
		if label == "" {
			label = fmt.Sprintf(labelFallback, i)
		}
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         label,
			CallbackData: FormatCallback(token, i),
		}})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
