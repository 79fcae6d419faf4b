// Package bot hosts the Telegram transport: long polling, command
// routing and the per-message reply contract.
package bot

import (
	"context"
	"errors"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/kartvela/preseller/internal/sheet"
	"github.com/kartvela/preseller/internal/store"
	"github.com/kartvela/preseller/pkg/order"
	"github.com/kartvela/preseller/pkg/parse"
	"github.com/kartvela/preseller/pkg/pipeline"
)

// Service wires the Telegram update loop to the extraction pipeline.
type Service struct {
	api      *tgbotapi.BotAPI
	pipeline *pipeline.Service
	sheet    sheet.RowAppender
	journal  store.Storer
	log      zerolog.Logger
}

// NewService authenticates the bot. The sheet appender may be nil, in
// which case entries are journaled locally only.
func NewService(token string, p *pipeline.Service, appender sheet.RowAppender, journal store.Storer, log zerolog.Logger) (*Service, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Service{
		api:      api,
		pipeline: p,
		sheet:    appender,
		journal:  journal,
		log:      log,
	}, nil
}

// Run polls for updates until the context is canceled. Each message is
// handled on its own goroutine; the reference store serializes learning
// appends internally.
func (s *Service) Run(ctx context.Context) error {
	s.log.Info().Str("username", s.api.Self.UserName).Msg("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := s.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			s.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go s.handleMessage(ctx, update.Message)
		}
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		if msg.Command() == "start" {
			s.reply(msg, replyGreeting)
		}
		return
	}

	res, err := s.pipeline.Process(ctx, msg.Text)
	if err != nil {
		if !errors.Is(err, parse.ErrMalformedOutput) {
			s.log.Error().Err(err).Int64("chat", msg.Chat.ID).Msg("pipeline failed")
		}
		s.reply(msg, replyParseFailed)
		return
	}
	if len(res.Entries) == 0 {
		s.reply(msg, replyParseFailed)
		return
	}

	written, failed := s.persist(ctx, res.Entries, authorName(msg))
	s.reply(msg, composeReply(res.Entries, written, failed))
}

// persist appends each entry to the sheet and journals it locally.
// Entries are independent: one failed append never blocks its siblings.
func (s *Service) persist(ctx context.Context, entries []order.Entry, author string) (written, failed int) {
	now := time.Now()

	for _, e := range entries {
		status := store.SheetStatusOK
		if s.sheet != nil {
			if err := s.sheet.Append(ctx, e, author, now); err != nil {
				s.log.Error().Err(err).Str("product", e.Product).Msg("sheet append failed")
				status = store.SheetStatusFailed
			}
		}

		if status == store.SheetStatusOK {
			written++
		} else {
			failed++
		}

		if s.journal == nil {
			continue
		}
		rec := &store.OrderRecord{
			CreatedAt:       now.Unix(),
			Customer:        e.Customer,
			Product:         e.Product,
			AmountValue:     e.AmountValue,
			AmountUnit:      e.AmountUnit,
			Comment:         e.Comment,
			Author:          author,
			CustomerMatched: e.CustomerMatched,
			ProductMatched:  e.ProductMatched,
			SheetStatus:     status,
		}
		if err := s.journal.AppendOrder(rec); err != nil {
			s.log.Error().Err(err).Str("product", e.Product).Msg("journal append failed")
		}
	}

	return written, failed
}

func (s *Service) reply(msg *tgbotapi.Message, text string) {
	out := tgbotapi.NewMessage(msg.Chat.ID, text)
	out.ReplyToMessageID = msg.MessageID
	if _, err := s.api.Send(out); err != nil {
		s.log.Error().Err(err).Int64("chat", msg.Chat.ID).Msg("reply failed")
	}
}

func authorName(msg *tgbotapi.Message) string {
	if msg.From == nil {
		return ""
	}
	name := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	if name == "" {
		name = msg.From.UserName
	}
	return name
}
