package bot

import (
	"context"
	"fmt"
	"os"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/tgrab/tgrab/internal/model"
)

// chatUploader implements download.Uploader against one Telegram chat.
type chatUploader struct {
	b      *tgbot.Bot
	chatID int64
}

func (u *chatUploader) SendVideo(ctx context.Context, res *model.DownloadResult) error {
	f, err := os.Open(res.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	_, err = u.b.SendVideo(ctx, &tgbot.SendVideoParams{
		ChatID:  u.chatID,
		Video:   &models.InputFileUpload{Filename: res.FileName, Data: f},
		Caption: res.FileName,
	})
	return err
}

func (u *chatUploader) SendDocument(ctx context.Context, res *model.DownloadResult) error {
	f, err := os.Open(res.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	_, err = u.b.SendDocument(ctx, &tgbot.SendDocumentParams{
		ChatID:   u.chatID,
		Document: &models.InputFileUpload{Filename: res.FileName, Data: f},
		Caption:  res.FileName,
	})
	return err
}
