package mailer

import (
	"context"
	stdErrors "errors"

	"github.com/resend/resend-go/v2"

	"github.com/cleanmart/backend/pkg/config"
	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

// emailSender is the slice of the Resend client the service needs.
// resend.Client.Emails satisfies it.
type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Service sends the transactional order emails.
type Service interface {
	Send(ctx context.Context, order *models.Order, kind enums.EmailKind) error
}

type service struct {
	sender emailSender
	cfg    config.ResendConfig
	logg   *logger.Logger
}

// NewService wires the mail service against the Resend API.
func NewService(cfg config.ResendConfig, logg *logger.Logger) (Service, error) {
	if cfg.APIKey == "" {
		return nil, stdErrors.New("mailer: resend api key is required")
	}
	if logg == nil {
		return nil, stdErrors.New("mailer: logger is required")
	}
	client := resend.NewClient(cfg.APIKey)
	return &service{sender: client.Emails, cfg: cfg, logg: logg}, nil
}

// NewDisabled returns a Service that rejects every send. Used when no
// provider key is configured so the rest of the API still boots.
func NewDisabled(logg *logger.Logger) Service {
	return disabledService{logg: logg}
}

type disabledService struct {
	logg *logger.Logger
}

func (d disabledService) Send(ctx context.Context, _ *models.Order, _ enums.EmailKind) error {
	if d.logg != nil {
		d.logg.Warn(ctx, "mailer.disabled")
	}
	return pkgerrors.New(pkgerrors.CodeUpstream, "email provider is not configured")
}

// newServiceWithSender lets tests inject a fake provider.
func newServiceWithSender(sender emailSender, cfg config.ResendConfig, logg *logger.Logger) (Service, error) {
	if sender == nil {
		return nil, stdErrors.New("mailer: sender is required")
	}
	if logg == nil {
		return nil, stdErrors.New("mailer: logger is required")
	}
	return &service{sender: sender, cfg: cfg, logg: logg}, nil
}

// Send renders the template for the requested kind and submits it through
// the provider. A provider failure surfaces as an upstream error with the
// provider's message attached.
func (s *service) Send(ctx context.Context, order *models.Order, kind enums.EmailKind) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}

	var subject, body, to string
	switch kind {
	case enums.EmailKindCustomer:
		subject, body = renderCustomerEmail(order)
		to = order.CustomerInfo.Email
	case enums.EmailKindAdmin:
		subject, body = renderAdminEmail(order)
		to = s.cfg.AdminEmail
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown email type")
	}
	if to == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "recipient address is missing")
	}

	params := &resend.SendEmailRequest{
		From:    s.cfg.FromEmail,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if s.cfg.ReplyTo != "" {
		params.ReplyTo = s.cfg.ReplyTo
	}

	sent, err := s.sender.SendWithContext(ctx, params)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "email provider rejected the message").
			WithDetails(err.Error())
	}

	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"email_kind": kind.String(),
		"message_id": sent.Id,
	}), "mailer.sent")
	return nil
}
