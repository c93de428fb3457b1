package dispatcher

import (
	"context"
	"errors"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/constants"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/cloudapi"
	"go.uber.org/zap"
)

// Cloud dispatches through the WhatsApp Business Cloud API. It is stateless
// per request; concurrent sends are independent.
type Cloud struct {
	client cloudapi.Client
	logger *zap.Logger
}

func NewCloud(client cloudapi.Client, logger *zap.Logger) *Cloud {
	return &Cloud{client: client, logger: logger}
}

func (c *Cloud) Initialize(ctx context.Context) error {
	if !c.client.Configured() {
		return NewError(constants.ErrCodeNotConfigured, nil)
	}
	return nil
}

func (c *Cloud) Disconnect(ctx context.Context) error {
	return nil
}

func (c *Cloud) SendText(ctx context.Context, cmd SendCommand) (Result, error) {
	if !c.client.Configured() {
		return Result{}, NewError(constants.ErrCodeNotConfigured, nil)
	}

	response, err := c.client.SendText(ctx, cloudapi.SendTextInput{
		To:         cmd.RecipientPhone,
		Body:       cmd.Body,
		PreviewURL: cmd.LinkPreview,
	})
	if err != nil {
		return Result{}, c.mapError(err, cmd.RecipientPhone)
	}

	return Result{MessageID: response.MessageID()}, nil
}

func (c *Cloud) SendMedia(ctx context.Context, cmd SendCommand) (Result, error) {
	return Result{}, NewError(constants.ErrCodeUnsupported, nil)
}

func (c *Cloud) SendTemplate(ctx context.Context, cmd TemplateCommand) (Result, error) {
	if !c.client.Configured() {
		return Result{}, NewError(constants.ErrCodeNotConfigured, nil)
	}

	response, err := c.client.SendTemplate(ctx, cloudapi.SendTemplateInput{
		To:           cmd.RecipientPhone,
		TemplateName: cmd.TemplateName,
		LanguageCode: cmd.LanguageCode,
		Parameters:   cmd.Parameters,
	})
	if err != nil {
		return Result{}, c.mapError(err, cmd.RecipientPhone)
	}

	return Result{MessageID: response.MessageID()}, nil
}

// Status reports the configured flag and the redacted phone number id. The
// Cloud API transport holds no long-lived connection, so Connected mirrors
// Configured rather than reachability of the Graph endpoint.
func (c *Cloud) Status() Status {
	return Status{
		Configured:    c.client.Configured(),
		Connected:     c.client.Configured(),
		PhoneNumberID: c.client.PhoneNumberID(),
	}
}

func (c *Cloud) QRCode() (QR, bool) {
	return QR{}, false
}

func (c *Cloud) mapError(err error, recipient string) error {
	c.logger.Error("Cloud API send failed",
		zap.Error(err),
		zap.String("to", recipient))

	if errors.Is(err, cloudapi.ErrNotConfigured) {
		return NewError(constants.ErrCodeNotConfigured, nil)
	}
	return NewError(constants.ErrCodeProviderError, err)
}
