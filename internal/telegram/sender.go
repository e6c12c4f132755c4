// Package telegram delivers the composed briefing. Preview mode writes to an
// injected writer; send mode posts through the Bot API.
package telegram

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yclin/taipei-brief/internal/config"
)

// Mode selects the delivery path.
type Mode string

const (
	ModePreview Mode = "preview"
	ModeSend    Mode = "send"
)

// Dispatcher sends or prints one message per run. The bot client is built on
// first send so preview mode and credential checks never touch the network.
type Dispatcher struct {
	cfg *config.AppConfig
	out io.Writer
	api *tgbotapi.BotAPI
}

func NewDispatcher(cfg *config.AppConfig, out io.Writer) *Dispatcher {
	return &Dispatcher{cfg: cfg, out: out}
}

// Dispatch delivers the message according to mode. Preview always succeeds.
// Send fails with config.ErrMissingToken / ErrMissingChatID before any
// network call when credentials are absent; transport errors propagate to the
// caller without retry.
func (d *Dispatcher) Dispatch(message string, mode Mode) error {
	switch mode {
	case ModePreview:
		fmt.Fprintln(d.out, message)
		return nil
	case ModeSend:
		return d.send(message)
	default:
		return fmt.Errorf("unknown dispatch mode %q", mode)
	}
}

func (d *Dispatcher) send(message string) error {
	if err := d.cfg.RequireDelivery(); err != nil {
		return err
	}

	chatID, err := strconv.ParseInt(d.cfg.TelegramChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	if d.api == nil {
		api, err := tgbotapi.NewBotAPIWithClient(d.cfg.TelegramToken, tgbotapi.APIEndpoint, &http.Client{
			Timeout: d.cfg.SendTimeout,
		})
		if err != nil {
			return fmt.Errorf("creating telegram client: %w", err)
		}
		d.api = api
	}

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := d.api.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	log.Printf("telegram: message sent to chat %d", chatID)
	return nil
}

// SendErrorNotice delivers a minimal failure notice in loop mode. Its own
// failure is logged and swallowed so the loop can continue.
func (d *Dispatcher) SendErrorNotice(runErr error) {
	notice := fmt.Sprintf("天氣機器人發生錯誤：%v", runErr)
	if err := d.send(notice); err != nil {
		log.Printf("telegram: failed to send error notice: %v", err)
	}
}
