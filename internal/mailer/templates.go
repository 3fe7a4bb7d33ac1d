package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

const (
	TemplateVerification       = "verification"
	TemplateApplicationDecided = "application_decided"
	TemplateRecruiterDecision  = "recruiter_decision"
	TemplateOfferModerated     = "offer_moderated"
)

type emailTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[string]emailTemplate{
	TemplateVerification: {
		subject: "Votre code de vérification",
		body: template.Must(template.New(TemplateVerification).Parse(
			"Bonjour {{.Name}},\n\nVotre code de vérification est : {{.Code}}\nIl expire dans {{.Minutes}} minutes.\n")),
	},
	TemplateApplicationDecided: {
		subject: "Mise à jour de votre candidature",
		body: template.Must(template.New(TemplateApplicationDecided).Parse(
			"Bonjour {{.Name}},\n\n{{.Message}}\n")),
	},
	TemplateRecruiterDecision: {
		subject: "Validation de votre compte recruteur",
		body: template.Must(template.New(TemplateRecruiterDecision).Parse(
			"Bonjour {{.Name}},\n\n{{.Message}}\n")),
	},
	TemplateOfferModerated: {
		subject: "Modération de votre offre",
		body: template.Must(template.New(TemplateOfferModerated).Parse(
			"Bonjour {{.Name}},\n\n{{.Message}}\n")),
	},
}

func render(name string, data map[string]any) (subject, body string, err error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	var buf bytes.Buffer
	if err := t.body.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return t.subject, buf.String(), nil
}
