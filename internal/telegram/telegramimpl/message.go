package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// SendMessageToUser sends a text message to the configured user
func (tg *TelegramImpl) SendMessageToUser(message string) {
	if !tg.Enabled() {
		return
	}

	msg := tgbotapi.NewMessage(tg.Config.Telegram.User, message)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending message to user",
			"userID", tg.Config.Telegram.User,
			"error", err)
		return
	}

	tg.Logger.Info("Message sent to user",
		"userID", tg.Config.Telegram.User)
}

// SendDocumentToUser uploads body as a file named name
func (tg *TelegramImpl) SendDocumentToUser(name string, body []byte, caption string) {
	if !tg.Enabled() || len(body) == 0 {
		return
	}

	doc := tgbotapi.NewDocument(tg.Config.Telegram.User, tgbotapi.FileBytes{
		Name:  name,
		Bytes: body,
	})
	doc.Caption = caption

	if _, err := tg.TgBot.Send(doc); err != nil {
		tg.Logger.Error("Error sending document to user",
			"userID", tg.Config.Telegram.User,
			"file", name,
			"error", err)
		return
	}

	tg.Logger.Info("Document sent to user",
		"userID", tg.Config.Telegram.User,
		"file", name,
		"size", len(body))
}
