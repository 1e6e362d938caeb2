package validators

import "strings"

type SendEmailPayload struct {
	To   string            `json:"to"`
	Name string            `json:"name"`
	Type string            `json:"type"`
	Data map[string]string `json:"data"`
}

type SendEmailInput struct {
	To   string            `json:"to" validate:"required,email"`
	Name string            `json:"name" validate:"required,max=100"`
	Type string            `json:"type" validate:"required,oneof=contact appointment-received appointment-confirmation appointment-cancellation"`
	Data map[string]string `json:"data"`
}

func SendEmail(p SendEmailPayload) (SendEmailInput, error) {
	in := SendEmailInput{
		To:   NormalizeEmail(p.To),
		Name: strings.TrimSpace(p.Name),
		Type: strings.TrimSpace(p.Type),
		Data: p.Data,
	}
	if in.Data == nil {
		in.Data = map[string]string{}
	}
	if err := check(in).Err(); err != nil {
		return SendEmailInput{}, err
	}
	return in, nil
}
