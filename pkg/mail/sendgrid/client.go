// Package sendgrid delivers the welcome email through the SendGrid v3 API.
package sendgrid

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const welcomeSubject = "Bienvenido a Sanble"

//go:embed welcome.html welcome.txt
var templates embed.FS

var (
	htmlWelcome = htmltemplate.Must(htmltemplate.ParseFS(templates, "welcome.html"))
	textWelcome = texttemplate.Must(texttemplate.ParseFS(templates, "welcome.txt"))
)

type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Client sends the welcome email either through a dynamic template (when a
// template id is configured) or with the embedded inline body.
type Client struct {
	client     sender
	from       *mail.Email
	templateID string
}

func New(apiKey, fromAddress, fromName, templateID string) *Client {
	return NewWithSender(sendgrid.NewSendClient(apiKey), fromAddress, fromName, templateID)
}

func NewWithSender(s sender, fromAddress, fromName, templateID string) *Client {
	return &Client{
		client:     s,
		from:       mail.NewEmail(fromName, fromAddress),
		templateID: templateID,
	}
}

type welcomeData struct {
	DisplayName      string
	VerificationLink string
}

func (c *Client) SendWelcomeEmail(ctx context.Context, email, displayName, verificationLink string) error {
	msg, err := c.welcomeMessage(email, displayName, verificationLink)
	if err != nil {
		return err
	}
	resp, err := c.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid http %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (c *Client) welcomeMessage(email, displayName, verificationLink string) (*mail.SGMailV3, error) {
	to := mail.NewEmail(displayName, email)

	if c.templateID != "" {
		p := mail.NewPersonalization()
		p.AddTos(to)
		p.SetDynamicTemplateData("displayName", displayName)
		p.SetDynamicTemplateData("verificationLink", verificationLink)

		msg := mail.NewV3Mail()
		msg.SetFrom(c.from)
		msg.SetTemplateID(c.templateID)
		msg.AddPersonalizations(p)
		return msg, nil
	}

	data := welcomeData{DisplayName: displayName, VerificationLink: verificationLink}
	var html, text bytes.Buffer
	if err := htmlWelcome.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render welcome html: %w", err)
	}
	if err := textWelcome.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("render welcome text: %w", err)
	}
	return mail.NewSingleEmail(c.from, welcomeSubject, to, text.String(), html.String()), nil
}
