package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const urgentSupplyEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Urgent Supply Request</title>
</head>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <h2 style="color: #b91c1c;">%s</h2>
  <table cellpadding="6">
    <tr><td><strong>Item</strong></td><td>%s</td></tr>
    <tr><td><strong>Quantity</strong></td><td>%s</td></tr>
    <tr><td><strong>Requested by</strong></td><td>%s</td></tr>
    <tr><td><strong>Requested at</strong></td><td>%s</td></tr>
  </table>
  <p style="color: #6b7280; font-size: 12px;">Sent by %s housekeeping.</p>
</body>
</html>`

// SupplyNotifier alerts the manager about urgent supply requests.
type SupplyNotifier interface {
	NotifyUrgentSupply(ctx context.Context, req models.SupplyRequest, requesterName string)
}

type NotificationConfig struct {
	OrganizationName string
	FromPhone        string
	FromEmail        string
	ManagerPhone     string
	ManagerEmail     string
	SendgridSandbox  bool
	Location         *time.Location
}

type NotificationService struct {
	cfg            NotificationConfig
	twilioClient   *twilio.RestClient
	sendgridClient *sendgrid.Client
}

// NewNotificationService accepts nil clients; the matching channel is then
// skipped.
func NewNotificationService(
	cfg NotificationConfig,
	twilioClient *twilio.RestClient,
	sendgridClient *sendgrid.Client,
) *NotificationService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &NotificationService{cfg: cfg, twilioClient: twilioClient, sendgridClient: sendgridClient}
}

// NotifyUrgentSupply sends an SMS and an email to the manager. Failures are
// logged only.
func (s *NotificationService) NotifyUrgentSupply(
	_ context.Context,
	req models.SupplyRequest,
	requesterName string,
) {
	subject := fmt.Sprintf("Urgent supply request: %s", req.Item)
	requestedAt := req.At().In(s.cfg.Location).Format("02 Jan 2006, 03:04 PM")
	plainTextBody := fmt.Sprintf(
		"%s\n\nItem: %s\nQuantity: %s\nRequested by: %s\nRequested at: %s",
		subject, req.Item, req.Quantity, requesterName, requestedAt,
	)

	// ---------- Twilio SMS ----------
	if s.twilioClient != nil && s.cfg.ManagerPhone != "" {
		params := &twilioApi.CreateMessageParams{}
		params.SetTo(s.cfg.ManagerPhone)
		params.SetFrom(s.cfg.FromPhone)
		params.SetBody(plainTextBody)
		if _, smsErr := s.twilioClient.Api.CreateMessage(params); smsErr != nil {
			utils.Logger.WithError(smsErr).Warnf("Failed to send urgent supply SMS for request %s", req.ID)
		}
	} else {
		utils.Logger.Debug("Twilio not configured, skipping urgent supply SMS")
	}

	// ---------- SendGrid Email ----------
	if s.sendgridClient != nil && s.cfg.ManagerEmail != "" {
		htmlBody := fmt.Sprintf(
			urgentSupplyEmailHTML,
			html.EscapeString(subject),
			html.EscapeString(req.Item),
			html.EscapeString(req.Quantity),
			html.EscapeString(requesterName),
			requestedAt,
			html.EscapeString(s.cfg.OrganizationName),
		)
		from := mail.NewEmail(s.cfg.OrganizationName, s.cfg.FromEmail)
		to := mail.NewEmail("Society Manager", s.cfg.ManagerEmail)
		msg := mail.NewSingleEmail(from, subject, to, plainTextBody, htmlBody)
		if s.cfg.SendgridSandbox {
			ms := mail.NewMailSettings()
			ms.SetSandboxMode(mail.NewSetting(true))
			msg.MailSettings = ms
		}
		if _, sgErr := s.sendgridClient.Send(msg); sgErr != nil {
			utils.Logger.WithError(sgErr).Warnf("Failed to send urgent supply email for request %s", req.ID)
		}
	} else {
		utils.Logger.Debug("SendGrid not configured, skipping urgent supply email")
	}
}
