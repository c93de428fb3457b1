package mocks

import (
	"context"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"
	"github.com/stretchr/testify/mock"
)

type Dispatcher struct {
	mock.Mock
}

func (m *Dispatcher) Initialize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Dispatcher) Disconnect(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Dispatcher) SendText(ctx context.Context, cmd dispatcher.SendCommand) (dispatcher.Result, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(dispatcher.Result), args.Error(1)
}

func (m *Dispatcher) SendMedia(ctx context.Context, cmd dispatcher.SendCommand) (dispatcher.Result, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(dispatcher.Result), args.Error(1)
}

func (m *Dispatcher) SendTemplate(ctx context.Context, cmd dispatcher.TemplateCommand) (dispatcher.Result, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(dispatcher.Result), args.Error(1)
}

func (m *Dispatcher) Status() dispatcher.Status {
	args := m.Called()
	return args.Get(0).(dispatcher.Status)
}

func (m *Dispatcher) QRCode() (dispatcher.QR, bool) {
	args := m.Called()
	return args.Get(0).(dispatcher.QR), args.Bool(1)
}
