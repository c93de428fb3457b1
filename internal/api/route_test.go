package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api"
	v1 "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/v1"
	apivalidator "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/api/validator"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/dispatcher"
	errmw "github.com/RodrigoRavpro/purple-vet-whatsapp/internal/error"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/metrics"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/phone"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/service"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/cloudapi"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/httpclient"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "test-secret"

type capturedRequest struct {
	path          string
	authorization string
	body          string
}

// newGatewayApp wires the full HTTP surface against a fake Graph API server.
func newGatewayApp(t *testing.T, m *metrics.Metrics) (*fiber.App, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		captured.path = r.URL.Path
		captured.authorization = r.Header.Get("Authorization")
		captured.body = string(raw)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"messaging_product":"whatsapp","messages":[{"id":"wamid.E2E"}]}`))
	}))
	t.Cleanup(provider.Close)

	logger := zap.NewNop()
	client := cloudapi.NewClient(cloudapi.Config{
		AccessToken:   "token-abc",
		PhoneNumberID: "105555",
		BaseURL:       provider.URL,
	}, httpclient.NewHTTPClient(5*time.Second))

	d := dispatcher.NewCloud(client, logger)
	svc := service.NewMessageService(d, phone.NewNormalizer("55"), logger, m)
	handler := v1.NewHandler(logger, svc, service.NewStatusReporter(d),
		apivalidator.NewXValidator(validator.New(), m))

	app := fiber.New(fiber.Config{ErrorHandler: errmw.ErrorHandler(logger)})
	api.SetupRoutes(app, handler, testAPIKey, m, logger)

	return app, captured
}

func TestSetupRoutes(t *testing.T) {
	m := metrics.NewMetrics()
	app, captured := newGatewayApp(t, m)

	t.Run("health is reachable without a key", func(t *testing.T) {
		res, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)
	})

	t.Run("metrics endpoint is exposed", func(t *testing.T) {
		res, err := app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)
	})

	t.Run("rejects requests without a key", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/whatsapp/send", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		res, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 401, res.StatusCode)
	})

	t.Run("rejects requests with a wrong key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/whatsapp/status", nil)
		req.Header.Set("X-API-Key", "wrong")

		res, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 401, res.StatusCode)
	})

	t.Run("accepts the key from the query string", func(t *testing.T) {
		res, err := app.Test(httptest.NewRequest("GET", "/api/whatsapp/status?api_key="+testAPIKey, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)
	})

	t.Run("relays a message end to end", func(t *testing.T) {
		payload := `{"recipientPhone":"(11) 99999-9999","message":"Sua consulta foi confirmada","linkUrl":"https://agenda.example.com/c/42"}`
		req := httptest.NewRequest("POST", "/api/whatsapp/send", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", testAPIKey)

		res, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 200, res.StatusCode)

		raw, err := io.ReadAll(res.Body)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "wamid.E2E", body["messageId"])

		assert.Equal(t, "/105555/messages", captured.path)
		assert.Equal(t, "Bearer token-abc", captured.authorization)
		assert.Contains(t, captured.body, `"to":"5511999999999"`)
		assert.Contains(t, captured.body, "https://agenda.example.com/c/42")
	})

	t.Run("rejects API access when the key is unset", func(t *testing.T) {
		bare := fiber.New()
		handler := v1.NewHandler(zap.NewNop(), nil, nil, apivalidator.NewXValidator(validator.New(), nil))
		api.SetupRoutes(bare, handler, "", m, zap.NewNop())

		res, err := bare.Test(httptest.NewRequest("GET", "/api/whatsapp/status", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, 500, res.StatusCode)
	})
}
