package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/shafe/handcraft/internal/config"
	"github.com/shafe/handcraft/internal/log"
	"github.com/shafe/handcraft/order/pkg/response"
)

// Mailer sends transactional order mail over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.Mail) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// SendOrderConfirmation mails the buyer after their payment clears.
func (m *Mailer) SendOrderConfirmation(c context.Context, to string, order response.Order) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "sending order confirmation").
		Str(log.KeyOrderID, order.ID.String()).
		Str(log.KeyEmail, to).
		Logger()

	message := gomail.NewMessage()
	message.SetHeader("From", m.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", fmt.Sprintf("Your Shafe's Handcraft order %s is confirmed", order.ID))
	message.SetBody("text/plain", fmt.Sprintf(
		"Thank you for your order!\n\nOrder: %s\nTotal: %s BDT\nShipping to: %s\n\nWe will let you know once it ships.",
		order.ID,
		order.Total.StringFixed(2),
		order.ShippingAddress,
	))

	if err := m.dialer.DialAndSend(message); err != nil {
		err = fmt.Errorf("failed sending order confirmation with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("sent order confirmation")
	return nil
}
