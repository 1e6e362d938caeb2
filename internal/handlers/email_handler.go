package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/httperr"
	"github.com/BruksfildServices01/site-backend/internal/httpresp"
	"github.com/BruksfildServices01/site-backend/internal/notify"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

// MailSender is satisfied by notify.Dispatcher.
type MailSender interface {
	SendNow(ctx context.Context, msg notify.Message) error
}

type EmailHandler struct {
	mail  MailSender
	audit audit.Recorder
}

func NewEmailHandler(mail MailSender, audit audit.Recorder) *EmailHandler {
	return &EmailHandler{mail: mail, audit: audit}
}

// Send renders one of the notification templates and delivers it before
// answering.
func (h *EmailHandler) Send(c *gin.Context) {
	var p validators.SendEmailPayload
	if !bindJSON(c, &p) {
		return
	}
	in, err := validators.SendEmail(p)
	if err != nil {
		httperr.Respond(c, err, "")
		return
	}

	msg := notify.Message{To: in.To, Name: in.Name, Template: in.Type, Data: in.Data}
	if err := h.mail.SendNow(c.Request.Context(), msg); err != nil {
		httperr.Internal(c, "email_send_failed", "The email could not be sent", err)
		return
	}

	me := actor(c)
	h.audit.Record(c.Request.Context(), audit.Event{
		UserID:   &me.ID,
		Action:   audit.ActionEmailSent,
		Entity:   "email",
		Metadata: map[string]string{"to": in.To, "type": in.Type},
	})

	httpresp.Message(c, "Email sent")
}
