package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskInquiryAck acknowledges a visitor's inquiry over their
	// preferred contact channel.
	TaskInquiryAck = "inquiry:ack"

	// TaskInquiryNotify alerts the back office about a new inquiry.
	TaskInquiryNotify = "inquiry:notify"
)

// InquiryAckPayload is the JSON payload for the acknowledgement task.
// Channel holds the visitor's preferred contact channel (email, phone,
// whatsapp).
type InquiryAckPayload struct {
	InquiryID     string `json:"inquiry_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Channel       string `json:"channel"`
	PropertyTitle string `json:"property_title"`
}

// InquiryNotifyPayload is the JSON payload for the back-office
// notification task.
type InquiryNotifyPayload struct {
	InquiryID     string `json:"inquiry_id"`
	VisitorName   string `json:"visitor_name"`
	VisitorEmail  string `json:"visitor_email"`
	PropertyTitle string `json:"property_title"`
	Message       string `json:"message"`
}

// NewInquiryAckTask constructs the acknowledgement task. It goes on the
// critical queue so visitors hear back quickly.
func NewInquiryAckTask(p InquiryAckPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskInquiryAck,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewInquiryNotifyTask constructs the back-office notification task.
func NewInquiryNotifyTask(p InquiryNotifyPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskInquiryNotify,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
