package email

// PreviewData contains sample template data for local preview, keyed by
// template name then template variable.
var PreviewData = map[string]map[string]string{
	"inquiry_ack": {
		"Name":          "Wanjiku",
		"PropertyTitle": "2BR apartment in Kilimani",
	},
	"inquiry_notification": {
		"VisitorName":   "Wanjiku",
		"VisitorEmail":  "wanjiku@example.com",
		"PropertyTitle": "2BR apartment in Kilimani",
		"Message":       "Is this unit still available from next month?",
	},
}
