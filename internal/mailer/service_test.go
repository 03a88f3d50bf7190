package mailer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanmart/backend/pkg/config"
	"github.com/cleanmart/backend/pkg/db/models"
	"github.com/cleanmart/backend/pkg/enums"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/logger"
)

type stubSender struct {
	sent    []*resend.SendEmailRequest
	sendErr error
}

func (s *stubSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	s.sent = append(s.sent, params)
	return &resend.SendEmailResponse{Id: "msg_123"}, nil
}

func testOrder() *models.Order {
	return &models.Order{
		ID:    uuid.New(),
		Total: 87,
		CustomerInfo: models.CustomerInfo{
			FullName: "דנה לוי",
			Email:    "dana@example.com",
			Phone:    "0501234567",
			Address:  "הרצל 10",
			City:     "חיפה",
		},
		PaymentMethod: enums.PaymentMethodCash,
		Items: []models.OrderItem{
			{Name: "נוזל רצפות", NameAr: "سائل أرضيات", UnitPrice: 29, Quantity: 3},
		},
	}
}

func testConfig() config.ResendConfig {
	return config.ResendConfig{
		APIKey:     "re_test",
		FromEmail:  "orders@cleanmart.example",
		ReplyTo:    "support@cleanmart.example",
		AdminEmail: "admin@cleanmart.example",
	}
}

func newTestService(t *testing.T, sender *stubSender) Service {
	t.Helper()
	svc, err := newServiceWithSender(sender, testConfig(), logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func TestSendCustomerEmail(t *testing.T) {
	sender := &stubSender{}
	svc := newTestService(t, sender)

	require.NoError(t, svc.Send(context.Background(), testOrder(), enums.EmailKindCustomer))

	require.Len(t, sender.sent, 1)
	sent := sender.sent[0]
	assert.Equal(t, []string{"dana@example.com"}, sent.To)
	assert.Equal(t, "orders@cleanmart.example", sent.From)
	assert.Equal(t, "support@cleanmart.example", sent.ReplyTo)
	assert.Contains(t, sent.Subject, "אישור הזמנה")
	assert.Contains(t, sent.Html, "سائل أرضيات")
	assert.Contains(t, sent.Html, "₪87")
}

func TestSendAdminEmailGoesToAdminAddress(t *testing.T) {
	sender := &stubSender{}
	svc := newTestService(t, sender)

	require.NoError(t, svc.Send(context.Background(), testOrder(), enums.EmailKindAdmin))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"admin@cleanmart.example"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Subject, "הזמנה חדשה")
	assert.Contains(t, sender.sent[0].Html, "dana@example.com")
}

func TestSendProviderFailureIsUpstreamError(t *testing.T) {
	sender := &stubSender{sendErr: assert.AnError}
	svc := newTestService(t, sender)

	err := svc.Send(context.Background(), testOrder(), enums.EmailKindCustomer)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUpstream, typed.Code())
	assert.Equal(t, assert.AnError.Error(), typed.Details())
}

func TestSendUnknownKind(t *testing.T) {
	svc := newTestService(t, &stubSender{})

	err := svc.Send(context.Background(), testOrder(), enums.EmailKind("bulk"))

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
