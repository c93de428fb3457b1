package v1

import (
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/validator"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/constants"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const serviceName = "purple-vet-whatsapp"

type Handler struct {
	logger     *zap.Logger
	service    service.MessageService
	status     service.StatusReporter
	XValidator validator.IXValidator
}

func NewHandler(logger *zap.Logger, svc service.MessageService, status service.StatusReporter, XValidator validator.IXValidator) *Handler {
	return &Handler{
		logger:     logger,
		service:    svc,
		status:     status,
		XValidator: XValidator,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "ok", Service: serviceName})
}

func (h *Handler) Initialize(c *fiber.Ctx) error {
	if err := h.service.Initialize(c.UserContext()); err != nil {
		return err
	}

	return c.JSON(MessageResponse{Success: true, Message: "initialization started"})
}

func (h *Handler) Status(c *fiber.Ctx) error {
	status := h.status.Report()

	return c.JSON(StatusResponse{
		IsConnected:   status.Connected,
		IsConfigured:  status.Configured,
		PhoneNumber:   status.PhoneNumber,
		PhoneNumberID: status.PhoneNumberID,
		QRCode:        status.QRCode,
	})
}

func (h *Handler) QR(c *fiber.Ctx) error {
	qr, ok := h.status.QR()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: constants.GetErrorMessage(constants.ErrCodeQRNotAvailable),
		})
	}

	return c.JSON(QRResponse{Success: true, QRCode: qr.Image, QRData: qr.Data})
}

func (h *Handler) Send(c *fiber.Ctx) error {
	var request SendMessageRequest
	if !h.parseAndValidate(c, &request) {
		return nil
	}

	result, err := h.service.Send(c.UserContext(), service.SendMessageCommand{
		RecipientPhone: request.RecipientPhone,
		RecipientName:  request.RecipientName,
		Message:        request.Message,
		LinkURL:        request.LinkURL,
		LinkPreview:    request.LinkPreview,
		MediaURL:       request.MediaURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(SendResponse{Success: true, MessageID: result.MessageID})
}

func (h *Handler) SendMedia(c *fiber.Ctx) error {
	var request SendMediaRequest
	if !h.parseAndValidate(c, &request) {
		return nil
	}

	result, err := h.service.Send(c.UserContext(), service.SendMessageCommand{
		RecipientPhone: request.RecipientPhone,
		RecipientName:  request.RecipientName,
		Message:        request.Message,
		MediaURL:       request.MediaURL,
	})
	if err != nil {
		return err
	}

	return c.JSON(SendResponse{Success: true, MessageID: result.MessageID})
}

func (h *Handler) SendTemplate(c *fiber.Ctx) error {
	var request SendTemplateRequest
	if !h.parseAndValidate(c, &request) {
		return nil
	}

	result, err := h.service.SendTemplate(c.UserContext(), service.SendTemplateCommand{
		RecipientPhone: request.RecipientPhone,
		TemplateName:   request.TemplateName,
		LanguageCode:   request.LanguageCode,
		Parameters:     request.Parameters,
	})
	if err != nil {
		return err
	}

	return c.JSON(SendResponse{Success: true, MessageID: result.MessageID})
}

func (h *Handler) SendLink(c *fiber.Ctx) error {
	var request SendLinkRequest
	if !h.parseAndValidate(c, &request) {
		return nil
	}

	result, err := h.service.Send(c.UserContext(), service.SendMessageCommand{
		RecipientPhone: request.RecipientPhone,
		Message:        request.Message,
		LinkURL:        request.LinkURL,
		LinkPreview:    true,
	})
	if err != nil {
		return err
	}

	return c.JSON(SendResponse{Success: true, MessageID: result.MessageID})
}

func (h *Handler) Disconnect(c *fiber.Ctx) error {
	if err := h.service.Disconnect(c.UserContext()); err != nil {
		return err
	}

	return c.JSON(MessageResponse{Success: true, Message: "disconnected"})
}

// parseAndValidate writes the 400 response itself on failure; handlers
// return nil in that case since the response is already committed.
func (h *Handler) parseAndValidate(c *fiber.Ctx, request interface{}) bool {
	if err := c.BodyParser(request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("path", c.Path()))
		_ = c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
		return false
	}

	if errs := h.XValidator.Validate(request); len(errs) > 0 {
		message := h.XValidator.Message(errs, constants.MessageErrorFormat)
		h.logger.Warn("Request validation failed",
			zap.String("path", c.Path()),
			zap.String("errors", message))
		_ = c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: message})
		return false
	}

	return true
}
