// Package notifier tells the administrators about new applications over Telegram.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/amco/vacancies/internal/events"
	"github.com/amco/vacancies/internal/logger"
	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type sender interface {
	Send(c botApi.Chattable) (botApi.Message, error)
}

type Notifier struct {
	ctx         context.Context
	api         sender
	chatID      int64
	rateLimiter *rate.Limiter
}

func NewTelegramNotifier(ctx context.Context, token string, chatID int64) (*Notifier, error) {
	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "can't create telegram api")
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	if err = botApi.SetLogger(log.StandardLogger()); err != nil {
		return nil, err
	}
	return New(ctx, api, chatID), nil
}

func New(ctx context.Context, api sender, chatID int64) *Notifier {
	return &Notifier{ctx: ctx, api: api, chatID: chatID, rateLimiter: rate.NewLimiter(rate.Inf, 1)}
}

func (n *Notifier) SetRateLimit(maxMessagesPerSecond float32) {
	n.rateLimiter = rate.NewLimiter(rate.Limit(maxMessagesPerSecond), 1)
}

// Subscribe delivers notifications asynchronously so a slow Telegram API never
// holds up the applicant's request.
func (n *Notifier) Subscribe(bus EventBus.Bus) error {
	return bus.SubscribeAsync(events.ApplicationSubmittedTopic, n.onApplicationSubmitted, false)
}

func (n *Notifier) onApplicationSubmitted(_ context.Context, event events.ApplicationSubmitted) {
	if err := n.rateLimiter.Wait(n.ctx); err != nil {
		log.Warnf("application %d notification dropped: %v", event.Application.ID, err)
		return
	}

	msg := botApi.NewMessage(n.chatID, formatApplication(event))
	if _, err := n.api.Send(msg); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("can't send application %d notification: %v", event.Application.ID, err)
	}
}

func formatApplication(event events.ApplicationSubmitted) string {
	b := strings.Builder{}
	b.WriteString(fmt.Sprintf("New application for \"%s\" (job #%d)\n", event.Job.Title, event.Job.ID))
	b.WriteString(fmt.Sprintf("%s %s, %s\n", event.Application.FirstName, event.Application.FatherName, event.Application.ApplicantEmail))
	b.WriteString(fmt.Sprintf("CV: %s", event.Application.CVPath))
	return b.String()
}
