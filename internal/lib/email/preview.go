package email

// PreviewData contains sample template data for local previews and tests.
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"Email": "jane@example.com",
	},
	TemplateContactNotification: {
		"FullName": "Jane Doe",
		"Email":    "jane@example.com",
		"Mobile":   "+1 555 0100",
		"City":     "Lisbon",
	},
}
