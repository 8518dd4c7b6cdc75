package telegramimpl

import (
	"testing"

	"github.com/orgball2608/insta-event-calendar/pkg/config"
	"github.com/orgball2608/insta-event-calendar/pkg/logger"
)

func TestNewWithoutTokenIsDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Telegram.User = 42

	tg, err := New(Opts{Config: cfg, Logger: logger.NewNop()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tg.Enabled() {
		t.Fatal("client without a token must be disabled")
	}

	// both are no-ops and must not touch the nil bot
	tg.SendMessageToUser("run finished")
	tg.SendDocumentToUser("club.ics", []byte("BEGIN:VCALENDAR"), "club")
}
