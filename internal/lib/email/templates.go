package email

// Template is a string-based enum naming email templates under
// templates/emails.
type Template string

const (
	// TemplateInquiryAck acknowledges a visitor's inquiry.
	TemplateInquiryAck Template = "inquiry_ack"

	// TemplateInquiryNotification alerts the back office about a new
	// inquiry.
	TemplateInquiryNotification Template = "inquiry_notification"
)
