package v1_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/v1"
	apivalidator "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/validator"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/constants"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"
	errmw "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/error"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/mocks"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T, svc *mocks.MessageService, status *mocks.StatusReporter) *fiber.App {
	t.Helper()

	logger := zap.NewNop()
	handler := v1.NewHandler(logger, svc, status, apivalidator.NewXValidator(validator.New(), nil))

	app := fiber.New(fiber.Config{ErrorHandler: errmw.ErrorHandler(logger)})
	app.Get("/health", handler.Health)
	app.Post("/api/whatsapp/initialize", handler.Initialize)
	app.Get("/api/whatsapp/status", handler.Status)
	app.Get("/api/whatsapp/qr", handler.QR)
	app.Post("/api/whatsapp/send", handler.Send)
	app.Post("/api/whatsapp/send-media", handler.SendMedia)
	app.Post("/api/whatsapp/send-template", handler.SendTemplate)
	app.Post("/api/whatsapp/send-link", handler.SendLink)
	app.Post("/api/whatsapp/disconnect", handler.Disconnect)

	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	return res.StatusCode, decodeBody(t, res.Body)
}

func decodeBody(t *testing.T, r io.ReadCloser) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(r)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestHandler_Health(t *testing.T) {
	app := newTestApp(t, &mocks.MessageService{}, &mocks.StatusReporter{})

	res, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, 200, res.StatusCode)
	body := decodeBody(t, res.Body)
	assert.Equal(t, "ok", body["status"])
}

func TestHandler_Send(t *testing.T) {
	t.Run("sends message successfully", func(t *testing.T) {
		svc := &mocks.MessageService{}
		app := newTestApp(t, svc, &mocks.StatusReporter{})

		svc.On("Send", mock.Anything, mock.MatchedBy(func(cmd service.SendMessageCommand) bool {
			return cmd.RecipientPhone == "11999999999" &&
				cmd.Message == "Olá" &&
				cmd.LinkURL == "https://example.com/consulta"
		})).Return(service.SendMessageResult{MessageID: "wamid.TEST"}, nil)

		status, body := postJSON(t, app, "/api/whatsapp/send",
			`{"recipientPhone":"11999999999","message":"Olá","linkUrl":"https://example.com/consulta"}`)

		assert.Equal(t, 200, status)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "wamid.TEST", body["messageId"])
		svc.AssertExpectations(t)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		svc := &mocks.MessageService{}
		app := newTestApp(t, svc, &mocks.StatusReporter{})

		status, body := postJSON(t, app, "/api/whatsapp/send", `{"recipientPhone":`)

		assert.Equal(t, 400, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody), body["error"])
		svc.AssertNotCalled(t, "Send")
	})

	t.Run("rejects missing recipient phone", func(t *testing.T) {
		svc := &mocks.MessageService{}
		app := newTestApp(t, svc, &mocks.StatusReporter{})

		status, body := postJSON(t, app, "/api/whatsapp/send", `{"message":"Olá"}`)

		assert.Equal(t, 400, status)
		assert.Contains(t, body["error"], "RecipientPhone")
		svc.AssertNotCalled(t, "Send")
	})

	t.Run("rejects invalid link url", func(t *testing.T) {
		svc := &mocks.MessageService{}
		app := newTestApp(t, svc, &mocks.StatusReporter{})

		status, body := postJSON(t, app, "/api/whatsapp/send",
			`{"recipientPhone":"11999999999","message":"Olá","linkUrl":"not a url"}`)

		assert.Equal(t, 400, status)
		assert.Contains(t, body["error"], "LinkURL")
		svc.AssertNotCalled(t, "Send")
	})

	t.Run("maps dispatch errors through the error handler", func(t *testing.T) {
		svc := &mocks.MessageService{}
		app := newTestApp(t, svc, &mocks.StatusReporter{})

		svc.On("Send", mock.Anything, mock.Anything).
			Return(service.SendMessageResult{}, dispatcher.NewError(constants.ErrCodeNotConnected, nil))

		status, body := postJSON(t, app, "/api/whatsapp/send",
			`{"recipientPhone":"11999999999","message":"Olá"}`)

		assert.Equal(t, 400, status)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, constants.GetErrorMessage(constants.ErrCodeNotConnected), body["error"])
	})
}

func TestHandler_SendMedia(t *testing.T) {
	t.Run("requires media url", func(t *testing.T) {
		svc := &mocks.MessageService{}
		app := newTestApp(t, svc, &mocks.StatusReporter{})

		status, body := postJSON(t, app, "/api/whatsapp/send-media",
			`{"recipientPhone":"11999999999","message":"laudo"}`)

		assert.Equal(t, 400, status)
		assert.Contains(t, body["error"], "MediaURL")
	})

	t.Run("sends media message", func(t *testing.T) {
		svc := &mocks.MessageService{}
		app := newTestApp(t, svc, &mocks.StatusReporter{})

		svc.On("Send", mock.Anything, mock.MatchedBy(func(cmd service.SendMessageCommand) bool {
			return cmd.MediaURL == "https://cdn.example.com/laudo.pdf"
		})).Return(service.SendMessageResult{MessageID: "3EB0MEDIA"}, nil)

		status, body := postJSON(t, app, "/api/whatsapp/send-media",
			`{"recipientPhone":"11999999999","mediaUrl":"https://cdn.example.com/laudo.pdf"}`)

		assert.Equal(t, 200, status)
		assert.Equal(t, "3EB0MEDIA", body["messageId"])
		svc.AssertExpectations(t)
	})
}

func TestHandler_SendTemplate(t *testing.T) {
	svc := &mocks.MessageService{}
	app := newTestApp(t, svc, &mocks.StatusReporter{})

	svc.On("SendTemplate", mock.Anything, mock.MatchedBy(func(cmd service.SendTemplateCommand) bool {
		return cmd.TemplateName == "lembrete_consulta" &&
			cmd.LanguageCode == "pt_BR" &&
			len(cmd.Parameters) == 2
	})).Return(service.SendMessageResult{MessageID: "wamid.TPL"}, nil)

	status, body := postJSON(t, app, "/api/whatsapp/send-template",
		`{"recipientPhone":"11999999999","templateName":"lembrete_consulta","languageCode":"pt_BR","parameters":["João","14:30"]}`)

	assert.Equal(t, 200, status)
	assert.Equal(t, "wamid.TPL", body["messageId"])
	svc.AssertExpectations(t)
}

func TestHandler_SendLink(t *testing.T) {
	svc := &mocks.MessageService{}
	app := newTestApp(t, svc, &mocks.StatusReporter{})

	svc.On("Send", mock.Anything, mock.MatchedBy(func(cmd service.SendMessageCommand) bool {
		return cmd.LinkURL == "https://agenda.example.com/confirmar" && cmd.LinkPreview
	})).Return(service.SendMessageResult{MessageID: "wamid.LINK"}, nil)

	status, body := postJSON(t, app, "/api/whatsapp/send-link",
		`{"recipientPhone":"11999999999","linkUrl":"https://agenda.example.com/confirmar","message":"Confirme aqui"}`)

	assert.Equal(t, 200, status)
	assert.Equal(t, "wamid.LINK", body["messageId"])
	svc.AssertExpectations(t)
}

func TestHandler_Status(t *testing.T) {
	svc := &mocks.MessageService{}
	status := &mocks.StatusReporter{}
	app := newTestApp(t, svc, status)

	status.On("Report").Return(dispatcher.Status{
		Connected:   true,
		Configured:  true,
		PhoneNumber: "5511888888888",
	})

	res, err := app.Test(httptest.NewRequest("GET", "/api/whatsapp/status", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, 200, res.StatusCode)
	body := decodeBody(t, res.Body)
	assert.Equal(t, true, body["isConnected"])
	assert.Equal(t, true, body["isConfigured"])
	assert.Equal(t, "5511888888888", body["phoneNumber"])
}

func TestHandler_QR(t *testing.T) {
	t.Run("returns 404 when no code is pending", func(t *testing.T) {
		status := &mocks.StatusReporter{}
		app := newTestApp(t, &mocks.MessageService{}, status)

		status.On("QR").Return(dispatcher.QR{}, false)

		res, err := app.Test(httptest.NewRequest("GET", "/api/whatsapp/qr", nil), -1)
		require.NoError(t, err)

		assert.Equal(t, 404, res.StatusCode)
		body := decodeBody(t, res.Body)
		assert.Equal(t, constants.GetErrorMessage(constants.ErrCodeQRNotAvailable), body["error"])
	})

	t.Run("returns pending code", func(t *testing.T) {
		status := &mocks.StatusReporter{}
		app := newTestApp(t, &mocks.MessageService{}, status)

		status.On("QR").Return(dispatcher.QR{
			Data:  "2@abcdef",
			Image: "data:image/png;base64,iVBOR",
		}, true)

		res, err := app.Test(httptest.NewRequest("GET", "/api/whatsapp/qr", nil), -1)
		require.NoError(t, err)

		assert.Equal(t, 200, res.StatusCode)
		body := decodeBody(t, res.Body)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "2@abcdef", body["qrData"])
		assert.Equal(t, "data:image/png;base64,iVBOR", body["qrCode"])
	})
}

func TestHandler_Initialize(t *testing.T) {
	svc := &mocks.MessageService{}
	app := newTestApp(t, svc, &mocks.StatusReporter{})

	svc.On("Initialize", mock.Anything).Return(nil)

	status, body := postJSON(t, app, "/api/whatsapp/initialize", `{}`)

	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	svc.AssertExpectations(t)
}

func TestHandler_Disconnect(t *testing.T) {
	svc := &mocks.MessageService{}
	app := newTestApp(t, svc, &mocks.StatusReporter{})

	svc.On("Disconnect", mock.Anything).Return(nil)

	status, body := postJSON(t, app, "/api/whatsapp/disconnect", `{}`)

	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["success"])
	svc.AssertExpectations(t)
}
