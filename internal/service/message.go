package service

import (
	"context"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/metrics"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/phone"
	"go.uber.org/zap"
)

const (
	operationText     = "text"
	operationMedia    = "media"
	operationTemplate = "template"

	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// linkMarker separates the message body from an embedded link.
const linkMarker = "\n\n🔗 "

type MessageService interface {
	Send(ctx context.Context, cmd SendMessageCommand) (SendMessageResult, error)
	SendTemplate(ctx context.Context, cmd SendTemplateCommand) (SendMessageResult, error)
	Initialize(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

type message struct {
	dispatcher dispatcher.Dispatcher
	normalizer *phone.Normalizer
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func NewMessageService(d dispatcher.Dispatcher, normalizer *phone.Normalizer, logger *zap.Logger, m *metrics.Metrics) MessageService {
	return &message{dispatcher: d, normalizer: normalizer, logger: logger, metrics: m}
}

func (s *message) Send(ctx context.Context, cmd SendMessageCommand) (SendMessageResult, error) {
	canonical := s.normalizer.Normalize(cmd.RecipientPhone)

	dispatchCmd := dispatcher.SendCommand{
		RecipientPhone: canonical,
		RecipientName:  cmd.RecipientName,
		Body:           composeBody(cmd.Message, cmd.LinkURL),
		LinkPreview:    cmd.LinkPreview,
		MediaURL:       cmd.MediaURL,
	}

	operation := operationText
	send := s.dispatcher.SendText
	if cmd.MediaURL != "" {
		operation = operationMedia
		send = s.dispatcher.SendMedia
	}

	result, err := send(ctx, dispatchCmd)
	if err != nil {
		s.logger.Error("Message dispatch failed",
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("to", canonical))
		s.recordSend(operation, outcomeFailure)
		return SendMessageResult{}, err
	}

	s.logger.Info("Message dispatched",
		zap.String("operation", operation),
		zap.String("to", canonical),
		zap.String("messageID", result.MessageID))
	s.recordSend(operation, outcomeSuccess)

	return SendMessageResult{MessageID: result.MessageID}, nil
}

func (s *message) SendTemplate(ctx context.Context, cmd SendTemplateCommand) (SendMessageResult, error) {
	canonical := s.normalizer.Normalize(cmd.RecipientPhone)

	result, err := s.dispatcher.SendTemplate(ctx, dispatcher.TemplateCommand{
		RecipientPhone: canonical,
		TemplateName:   cmd.TemplateName,
		LanguageCode:   cmd.LanguageCode,
		Parameters:     cmd.Parameters,
	})
	if err != nil {
		s.logger.Error("Template dispatch failed",
			zap.Error(err),
			zap.String("template", cmd.TemplateName),
			zap.String("to", canonical))
		s.recordSend(operationTemplate, outcomeFailure)
		return SendMessageResult{}, err
	}

	s.logger.Info("Template dispatched",
		zap.String("template", cmd.TemplateName),
		zap.String("to", canonical),
		zap.String("messageID", result.MessageID))
	s.recordSend(operationTemplate, outcomeSuccess)

	return SendMessageResult{MessageID: result.MessageID}, nil
}

func (s *message) Initialize(ctx context.Context) error {
	if err := s.dispatcher.Initialize(ctx); err != nil {
		s.logger.Error("Dispatcher initialization failed", zap.Error(err))
		return err
	}

	s.logger.Info("Dispatcher initialization started")
	return nil
}

func (s *message) Disconnect(ctx context.Context) error {
	if err := s.dispatcher.Disconnect(ctx); err != nil {
		s.logger.Error("Dispatcher disconnect failed", zap.Error(err))
		return err
	}

	s.logger.Info("Dispatcher disconnected")
	return nil
}

func (s *message) recordSend(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordMessageSend(operation, outcome)
	}
}

func composeBody(text, linkURL string) string {
	if linkURL == "" {
		return text
	}
	return text + linkMarker + linkURL
}
