package mocks

import (
	"context"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/cloudapi"
	"github.com/stretchr/testify/mock"
)

type CloudClient struct {
	mock.Mock
}

func (m *CloudClient) SendText(ctx context.Context, input cloudapi.SendTextInput) (cloudapi.Response, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(cloudapi.Response), args.Error(1)
}

func (m *CloudClient) SendTemplate(ctx context.Context, input cloudapi.SendTemplateInput) (cloudapi.Response, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(cloudapi.Response), args.Error(1)
}

func (m *CloudClient) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *CloudClient) PhoneNumberID() string {
	args := m.Called()
	return args.String(0)
}
