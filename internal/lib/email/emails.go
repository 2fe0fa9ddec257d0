package email

import "context"

// SendWelcomeEmail greets a new newsletter subscriber.
func (c *Client) SendWelcomeEmail(ctx context.Context, to string) error {
	data := map[string]string{
		"Email": to,
	}

	return c.SendEmail(ctx, to, "Thanks for subscribing!", TemplateWelcome, data)
}

// ContactDetails are the fields of a contact form submission shown to the admin.
type ContactDetails struct {
	FullName string
	Email    string
	Mobile   string
	City     string
}

// SendContactNotification tells the site admin about a new contact query.
func (c *Client) SendContactNotification(ctx context.Context, to string, d ContactDetails) error {
	data := map[string]string{
		"FullName": d.FullName,
		"Email":    d.Email,
		"Mobile":   d.Mobile,
		"City":     d.City,
	}

	return c.SendEmail(ctx, to, "New contact query from "+d.FullName, TemplateContactNotification, data)
}
