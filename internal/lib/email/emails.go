package email

// SendInquiryAckEmail confirms to a visitor that their inquiry about a
// listing was received.
func (c *Client) SendInquiryAckEmail(to, name, propertyTitle string) error {
	data := map[string]string{
		"Name":          name,
		"PropertyTitle": propertyTitle,
	}

	return c.SendEmail(
		to,
		"We received your inquiry",
		TemplateInquiryAck,
		data,
	)
}

// SendInquiryNotificationEmail alerts the back office about a new inquiry
// so someone can follow up.
func (c *Client) SendInquiryNotificationEmail(to, visitorName, visitorEmail, propertyTitle, message string) error {
	data := map[string]string{
		"VisitorName":   visitorName,
		"VisitorEmail":  visitorEmail,
		"PropertyTitle": propertyTitle,
		"Message":       message,
	}

	return c.SendEmail(
		to,
		"New inquiry: "+propertyTitle,
		TemplateInquiryNotification,
		data,
	)
}
