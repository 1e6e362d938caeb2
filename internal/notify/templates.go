package notify

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
)

const (
	TemplateContact                 = "contact"
	TemplateAppointmentReceived     = "appointment-received"
	TemplateAppointmentConfirmation = "appointment-confirmation"
	TemplateAppointmentCancellation = "appointment-cancellation"
)

const layoutOpen = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`
const layoutClose = `<p style="margin-top: 24px;">L'équipe {{.Brand}}</p></div>`

type templateDef struct {
	subject string
	body    string
}

var definitions = map[string]templateDef{
	TemplateContact: {
		subject: "Réponse à votre demande de contact - {{.Brand}}",
		body: `<h2 style="color: #2563eb;">Confirmation de réception</h2>
<p>Bonjour {{.Name}},</p>
<p>Nous avons bien reçu votre message concernant le service <strong>{{or .Data.service "non spécifié"}}</strong> :</p>
<div style="background: #f3f4f6; padding: 16px; border-radius: 8px; margin: 16px 0;">
<p style="margin: 0; font-style: italic;">"{{.Data.message}}"</p>
</div>
<p>Nous traitons votre demande et vous répondrons dans les plus brefs délais.</p>`,
	},
	TemplateAppointmentReceived: {
		subject: "Demande de rendez-vous reçue - {{.Brand}}",
		body: `<h2 style="color: #2563eb;">Demande de rendez-vous reçue</h2>
<p>Bonjour {{.Name}},</p>
<p>Nous avons bien reçu votre demande de rendez-vous pour le service <strong>{{or .Data.service "non spécifié"}}</strong>.</p>
<div style="background: #f3f4f6; padding: 16px; border-radius: 8px; margin: 16px 0;">
<p style="margin: 0;"><strong>Date :</strong> {{or .Data.date "non spécifiée"}}</p>
<p style="margin: 8px 0 0 0;"><strong>Heure :</strong> {{or .Data.time "non spécifiée"}}</p>
</div>
<p>Vous recevrez un email dès que votre rendez-vous sera confirmé.</p>`,
	},
	TemplateAppointmentConfirmation: {
		subject: "Confirmation de votre rendez-vous - {{.Brand}}",
		body: `<h2 style="color: #2563eb;">Confirmation de rendez-vous</h2>
<p>Bonjour {{.Name}},</p>
<p>Votre rendez-vous a été confirmé.</p>
<div style="background: #f3f4f6; padding: 16px; border-radius: 8px; margin: 16px 0;">
<p style="margin: 0;"><strong>Date :</strong> {{or .Data.date "non spécifiée"}}</p>
<p style="margin: 8px 0 0 0;"><strong>Heure :</strong> {{or .Data.time "non spécifiée"}}</p>
</div>
<p>Merci de votre confiance.</p>`,
	},
	TemplateAppointmentCancellation: {
		subject: "Annulation de votre rendez-vous - {{.Brand}}",
		body: `<h2 style="color: #dc2626;">Annulation de rendez-vous</h2>
<p>Bonjour {{.Name}},</p>
<p>Nous vous informons que votre rendez-vous prévu le {{or .Data.date "date non spécifiée"}} à {{or .Data.time "heure non spécifiée"}} a été annulé.</p>
<p style="color: #dc2626;">Nous sommes désolés pour ce contretemps.</p>
<p>Vous pouvez prendre un nouveau rendez-vous en cliquant sur le lien suivant :</p>
<a href="{{.SiteURL}}" style="display: inline-block; background: #2563eb; color: white; padding: 8px 16px; border-radius: 4px; text-decoration: none; margin: 8px 0;">Prendre un nouveau rendez-vous</a>`,
	},
}

type compiled struct {
	subject *template.Template
	body    *template.Template
}

// Templates renders the transactional emails.
type Templates struct {
	brand   string
	siteURL string
	set     map[string]compiled
}

type view struct {
	Brand   string
	SiteURL string
	Name    string
	Data    map[string]string
}

func NewTemplates(brand, siteURL string) (*Templates, error) {
	t := &Templates{brand: brand, siteURL: siteURL, set: map[string]compiled{}}
	for key, def := range definitions {
		subject, err := template.New(key + ".subject").Option("missingkey=zero").Parse(def.subject)
		if err != nil {
			return nil, fmt.Errorf("parse %s subject: %w", key, err)
		}
		body, err := template.New(key).Option("missingkey=zero").Parse(layoutOpen + def.body + layoutClose)
		if err != nil {
			return nil, fmt.Errorf("parse %s body: %w", key, err)
		}
		t.set[key] = compiled{subject: subject, body: body}
	}
	return t, nil
}

func (t *Templates) Has(key string) bool {
	_, ok := t.set[key]
	return ok
}

func (t *Templates) Render(msg Message) (Email, error) {
	c, ok := t.set[msg.Template]
	if !ok {
		return Email{}, fmt.Errorf("unknown email template %q", msg.Template)
	}

	data := msg.Data
	if data == nil {
		data = map[string]string{}
	}
	v := view{Brand: t.brand, SiteURL: t.siteURL, Name: msg.Name, Data: data}

	var subject, body bytes.Buffer
	if err := c.subject.Execute(&subject, v); err != nil {
		return Email{}, fmt.Errorf("render %s subject: %w", msg.Template, err)
	}
	if err := c.body.Execute(&body, v); err != nil {
		return Email{}, fmt.Errorf("render %s body: %w", msg.Template, err)
	}

	return Email{
		To:       msg.To,
		ToName:   msg.Name,
		Template: msg.Template,
		// html/template escapes the subject as HTML text; mail headers want it raw.
		Subject: html.UnescapeString(subject.String()),
		HTML:    body.String(),
		Text:    plainText(body.String()),
	}, nil
}

var (
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	spaceRe = regexp.MustCompile(`[ \t]*\n[\s]*|[ \t]{2,}`)
)

func plainText(h string) string {
	s := tagRe.ReplaceAllString(h, "\n")
	s = html.UnescapeString(s)
	s = spaceRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
