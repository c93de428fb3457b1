package mocks

import (
	"context"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/service"
	"github.com/stretchr/testify/mock"
)

type MessageService struct {
	mock.Mock
}

func (m *MessageService) Send(ctx context.Context, cmd service.SendMessageCommand) (service.SendMessageResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.SendMessageResult), args.Error(1)
}

func (m *MessageService) SendTemplate(ctx context.Context, cmd service.SendTemplateCommand) (service.SendMessageResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.SendMessageResult), args.Error(1)
}

func (m *MessageService) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MessageService) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type StatusReporter struct {
	mock.Mock
}

func (m *StatusReporter) Report() dispatcher.Status {
	args := m.Called()
	return args.Get(0).(dispatcher.Status)
}

func (m *StatusReporter) QR() (dispatcher.QR, bool) {
	args := m.Called()
	return args.Get(0).(dispatcher.QR), args.Bool(1)
}
