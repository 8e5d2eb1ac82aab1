package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/nyumbahomes/nyumba/internal/model"
)

// handleInquiryAckTask thanks the visitor for their inquiry over the
// channel they asked to be contacted on.
func (j *JobService) handleInquiryAckTask(ctx context.Context, t *asynq.Task) error {
	var p InquiryAckPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal inquiry ack payload: %w", err)
	}

	j.logger.Info().
		Str("type", "inquiry_ack").
		Str("inquiry_id", p.InquiryID).
		Str("channel", p.Channel).
		Msg("processing inquiry acknowledgement task")

	var err error
	switch model.ContactChannel(p.Channel) {
	case model.ContactChannelEmail:
		err = j.emailClient.SendInquiryAckEmail(p.Email, p.Name, p.PropertyTitle)
	case model.ContactChannelPhone:
		err = j.smsClient.SendSMS(p.Phone, inquiryAckBody(p.Name, p.PropertyTitle))
	case model.ContactChannelWhatsApp:
		err = j.smsClient.SendWhatsApp(p.Phone, inquiryAckBody(p.Name, p.PropertyTitle))
	default:
		err = fmt.Errorf("unknown contact channel %q", p.Channel)
	}
	if err != nil {
		j.logger.Error().
			Str("type", "inquiry_ack").
			Str("inquiry_id", p.InquiryID).
			Err(err).
			Msg("failed to send inquiry acknowledgement")
		return err
	}

	j.logger.Info().
		Str("type", "inquiry_ack").
		Str("inquiry_id", p.InquiryID).
		Msg("sent inquiry acknowledgement")

	return nil
}

// handleInquiryNotifyTask emails the back office about a new inquiry.
func (j *JobService) handleInquiryNotifyTask(ctx context.Context, t *asynq.Task) error {
	var p InquiryNotifyPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal inquiry notify payload: %w", err)
	}

	if j.adminEmail == "" {
		j.logger.Warn().
			Str("type", "inquiry_notify").
			Str("inquiry_id", p.InquiryID).
			Msg("no admin email configured, dropping notification")
		return nil
	}

	j.logger.Info().
		Str("type", "inquiry_notify").
		Str("inquiry_id", p.InquiryID).
		Msg("processing inquiry notification task")

	err := j.emailClient.SendInquiryNotificationEmail(j.adminEmail, p.VisitorName, p.VisitorEmail, p.PropertyTitle, p.Message)
	if err != nil {
		j.logger.Error().
			Str("type", "inquiry_notify").
			Str("inquiry_id", p.InquiryID).
			Err(err).
			Msg("failed to send inquiry notification")
		return err
	}

	j.logger.Info().
		Str("type", "inquiry_notify").
		Str("inquiry_id", p.InquiryID).
		Msg("sent inquiry notification")

	return nil
}

func inquiryAckBody(name, propertyTitle string) string {
	return fmt.Sprintf("Hi %s, thanks for your inquiry about %s. Our team will get back to you shortly.", name, propertyTitle)
}
