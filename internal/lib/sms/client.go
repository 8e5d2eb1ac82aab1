// Package sms delivers SMS and WhatsApp messages through Twilio.
package sms

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/nyumbahomes/nyumba/internal/config"
)

// Client wraps the Twilio REST client with the configured sender number.
type Client struct {
	client *twilio.RestClient
	logger *zerolog.Logger

	fromNumber string
}

// NewClient creates an SMS Client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.Integration.TwilioAccountSID,
		Password: cfg.Integration.TwilioAuthToken,
	})

	return &Client{
		client:     client,
		logger:     logger,
		fromNumber: cfg.Integration.TwilioFromNumber,
	}
}

// SendSMS sends a plain text message to the given E.164 phone number.
func (c *Client) SendSMS(to, body string) error {
	return c.send(to, c.fromNumber, body)
}

// SendWhatsApp sends a message over the WhatsApp channel. Twilio routes
// WhatsApp traffic through the same message API with a channel prefix on
// both addresses.
func (c *Client) SendWhatsApp(to, body string) error {
	return c.send("whatsapp:"+to, "whatsapp:"+c.fromNumber, body)
}

func (c *Client) send(to, from, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(body)

	if _, err := c.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}
