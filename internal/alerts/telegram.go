// Package alerts pushes new value signals to a Telegram chat.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/tt-value/internal/logger"
	"github.com/yourusername/tt-value/internal/metrics"
	"github.com/yourusername/tt-value/internal/models"
)

// Min interval between two messages to the same chat (Telegram allows ~30/min)
const sendInterval = 2 * time.Second

// A listing key repeats on the next day, so remembered alerts expire
const dedupeWindow = 18 * time.Hour

// Default outcome labels of the two players
const (
	DefaultFirstOutcome  = "H"
	DefaultSecondOutcome = "V"
)

// Sender is the part of the bot API the notifier needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends each qualifying value signal once
type TelegramNotifier struct {
	sender   Sender
	chatID   int64
	minScore int
	labels   [2]string
	limiter  *rate.Limiter
	sent     *cache.Cache
	logger   *logrus.Entry
	audit    *logger.AuditLogger
}

// NewTelegramNotifier connects to the bot API with token
func NewTelegramNotifier(token string, chatID int64, minScore int, log *logrus.Logger) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = false
	return NewNotifier(bot, chatID, minScore, log), nil
}

// NewNotifier creates a notifier over an existing sender
func NewNotifier(sender Sender, chatID int64, minScore int, log *logrus.Logger) *TelegramNotifier {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &TelegramNotifier{
		sender:   sender,
		chatID:   chatID,
		minScore: minScore,
		labels:   [2]string{DefaultFirstOutcome, DefaultSecondOutcome},
		limiter:  rate.NewLimiter(rate.Every(sendInterval), 1),
		sent:     cache.New(dedupeWindow, time.Hour),
		logger:   log.WithField("component", "alerts"),
		audit:    logger.NewAuditLogger(log),
	}
}

// SetOutcomeLabels sets the price labels shown for player A and player B
func (n *TelegramNotifier) SetOutcomeLabels(first, second string) {
	if first != "" && second != "" {
		n.labels = [2]string{first, second}
	}
}

// Notify sends the value signals not alerted before. Delivery failures are
// joined into the returned error; the failed listings are retried next time.
func (n *TelegramNotifier) Notify(ctx context.Context, results []models.AnnotatedListing) error {
	var errs []error
	for _, r := range results {
		if !r.Analysis.IsValue || r.Analysis.Score < n.minScore {
			continue
		}
		key := r.Key()
		if _, seen := n.sent.Get(key); seen {
			continue
		}

		if err := n.limiter.Wait(ctx); err != nil {
			return errors.Join(append(errs, err)...)
		}

		msg := tgbotapi.NewMessage(n.chatID, FormatAlert(r, n.labels[0], n.labels[1]))
		msg.DisableWebPagePreview = true
		_, err := n.sender.Send(msg)

		metrics.RecordAlert(err == nil)
		n.audit.LogAlertDelivery(key, n.chatID, err == nil)
		if err != nil {
			errs = append(errs, fmt.Errorf("alert %s: %w", key, err))
			continue
		}
		n.sent.SetDefault(key, struct{}{})
	}
	return errors.Join(errs...)
}

// FormatAlert renders a value signal as a plain text message, quoting the
// prices listed under the first and second outcome labels
func FormatAlert(r models.AnnotatedListing, first, second string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Value bet %s: %s\n", r.Time, r.Title())
	fmt.Fprintf(&b, "Odds %s %s / %s %s\n", first, formatPrice(r.Odds.Price(first)), second, formatPrice(r.Odds.Price(second)))
	if r.Estimate != nil {
		fmt.Fprintf(&b, "Model %d%% / %d%%\n", r.Estimate.ProbA, r.Estimate.ProbB)
	}
	for _, reason := range r.Analysis.Reasons {
		fmt.Fprintf(&b, "- %s\n", reason)
	}
	fmt.Fprintf(&b, "Score %d", r.Analysis.Score)
	return b.String()
}

func formatPrice(p float64) string {
	if p <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", p)
}
