package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-event-calendar/internal/telegram"
	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	Config *config.Config
}

// New connects the bot. Without a token the client is returned disabled.
func New(opts Opts) (*TelegramImpl, error) {
	tg := &TelegramImpl{
		Logger: opts.Logger.WithComponent("Telegram"),
		Config: opts.Config,
	}

	if opts.Config.Telegram.Token == "" {
		tg.Logger.Info("Telegram token not set, run reports are disabled")
		return tg, nil
	}

	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		tg.Logger.Error("Error creating bot", "error", err)
		return nil, err
	}
	tg.TgBot = tgBot
	return tg, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)

func (tg *TelegramImpl) Enabled() bool {
	return tg.TgBot != nil && tg.Config.Telegram.User != 0
}
