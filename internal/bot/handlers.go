package bot

import (
	"context"
	"errors"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tgrab/tgrab/internal/download"
	"github.com/tgrab/tgrab/internal/format"
	"github.com/tgrab/tgrab/internal/session"
)

func (c *Controller) handleStart(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	c.sendText(ctx, b, update.Message.Chat.ID, msgStart)
}

// handleMessage is the default handler: anything that is not a command or a
// recognized callback lands here. Messages without a URL are ignored.
func (c *Controller) handleMessage(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	url := urlRegex.FindString(update.Message.Text)
	if url == "" {
		return
	}

	chatID := update.Message.Chat.ID
	logger := log.With().Str("turn", uuid.NewString()).Int64("chat", chatID).Logger()

	if _, err := b.SendChatAction(ctx, &tgbot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	}); err != nil {
		logger.Debug().Err(err).Msg("Failed to send chat action")
	}

	info, err := c.engine.Extract(ctx, url)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("Extraction failed")
		c.sendText(ctx, b, chatID, fmt.Sprintf(msgExtractFailed, err))
		return
	}

	choices := format.Choices(info)
	token, err := c.store.Create(url, choices)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		c.sendText(ctx, b, chatID, fmt.Sprintf(msgExtractFailed, err))
		return
	}

	keyboard := buildKeyboard(token, choices)
	caption := info.DisplayTitle()
	if thumb := format.BestThumbnail(info); thumb != "" {
		_, err = b.SendPhoto(ctx, &tgbot.SendPhotoParams{
			ChatID:      chatID,
			Photo:       &models.InputFileString{Data: thumb},
			Caption:     caption,
			ReplyMarkup: keyboard,
		})
	} else {
		_, err = b.SendMessage(ctx, &tgbot.SendMessageParams{
			ChatID:      chatID,
			Text:        caption,
			ReplyMarkup: keyboard,
		})
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to send format choices")
		return
	}
	logger.Info().Str("token", token).Int("choices", len(choices)).Msg("Session created")
}

func (c *Controller) handleSelection(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	// Stop the client-side spinner before doing any work.
	if _, err := b.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: query.ID,
	}); err != nil {
		log.Debug().Err(err).Msg("Failed to answer callback query")
	}

	token, index, ok := ParseCallback(query.Data)
	if !ok {
		return
	}

	msg := query.Message.Message
	if msg == nil {
		// The originating message is no longer accessible; there is
		// nowhere to report status.
		return
	}
	chatID := msg.Chat.ID
	logger := log.With().Str("turn", uuid.NewString()).Int64("chat", chatID).
		Str("token", token).Int("index", index).Logger()

	sel, err := c.store.Resolve(token, index)
	if err != nil {
		if !errors.Is(err, session.ErrStaleSession) {
			logger.Error().Err(err).Msg("Resolution failed")
		}
		c.editOrSend(ctx, b, msg, msgStaleSession)
		return
	}

	label := sel.Choice.Label
	if label == "" {
		label = labelRequested
	}

	c.editOrSend(ctx, b, msg, fmt.Sprintf(msgDownloading, label))
	if _, err := b.SendChatAction(ctx, &tgbot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionUploadVideo,
	}); err != nil {
		logger.Debug().Err(err).Msg("Failed to send chat action")
	}

	err = c.svc.Deliver(ctx, sel.SourceURL, sel.Choice.Selector, &chatUploader{b: b, chatID: chatID})

	var oversize *download.OversizeError
	switch {
	case err == nil:
		logger.Info().Msg("Delivered")
		c.editOrSend(ctx, b, msg, fmt.Sprintf(msgDone, label))
	case errors.As(err, &oversize):
		logger.Info().Int64("size", oversize.Size).Msg("Artifact over upload ceiling")
		c.editOrSend(ctx, b, msg, fmt.Sprintf(msgOversized, label, oversize.LimitMB()))
	default:
		logger.Warn().Err(err).Msg("Delivery failed")
		c.editOrSend(ctx, b, msg, fmt.Sprintf(msgDownloadFailed, label, err))
	}
}
