package cloudapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/httpclient"
)

const DefaultBaseURL = "https://graph.facebook.com/v18.0"

// Client talks to the WhatsApp Business Cloud API messages endpoint.
type Client interface {
	SendText(ctx context.Context, input SendTextInput) (Response, error)
	SendTemplate(ctx context.Context, input SendTemplateInput) (Response, error)
	Configured() bool
	PhoneNumberID() string
}

type Config struct {
	AccessToken   string        `mapstructure:"access_token"`
	PhoneNumberID string        `mapstructure:"phone_number_id"`
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

type CloudAPI struct {
	cfg    Config
	client httpclient.HTTPClient
}

func NewClient(cfg Config, client httpclient.HTTPClient) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &CloudAPI{cfg: cfg, client: client}
}

func (c *CloudAPI) Configured() bool {
	return c.cfg.AccessToken != "" && c.cfg.PhoneNumberID != ""
}

func (c *CloudAPI) PhoneNumberID() string {
	return c.cfg.PhoneNumberID
}

func (c *CloudAPI) SendText(ctx context.Context, input SendTextInput) (Response, error) {
	payload := textPayload{
		MessagingProduct: messagingProduct,
		RecipientType:    recipientTypeIndividual,
		To:               input.To,
		Type:             "text",
		Text: textBody{
			Body:       input.Body,
			PreviewURL: input.PreviewURL,
		},
	}

	return c.post(ctx, payload)
}

func (c *CloudAPI) SendTemplate(ctx context.Context, input SendTemplateInput) (Response, error) {
	language := input.LanguageCode
	if language == "" {
		language = defaultLanguageCode
	}

	payload := templatePayload{
		MessagingProduct: messagingProduct,
		RecipientType:    recipientTypeIndividual,
		To:               input.To,
		Type:             "template",
		Template: templateBody{
			Name:     input.TemplateName,
			Language: templateLanguage{Code: language},
		},
	}

	if len(input.Parameters) > 0 {
		parameters := make([]templateParameter, 0, len(input.Parameters))
		for _, p := range input.Parameters {
			parameters = append(parameters, templateParameter{Type: "text", Text: p})
		}
		payload.Template.Components = []templateComponent{{Type: "body", Parameters: parameters}}
	}

	return c.post(ctx, payload)
}

func (c *CloudAPI) post(ctx context.Context, payload any) (Response, error) {
	if !c.Configured() {
		return Response{}, ErrNotConfigured
	}

	url := fmt.Sprintf("%s/%s/messages", c.cfg.BaseURL, c.cfg.PhoneNumberID)
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.AccessToken}

	resp, err := c.client.PostJSON(ctx, url, payload, headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return Response{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return Response{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	var res Response
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return Response{}, &APIError{Message: fmt.Sprintf("provider returned status %d", resp.StatusCode)}
		}
		return Response{}, ErrBadResponse
	}

	if res.Error != nil {
		return Response{}, res.Error
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Response{}, &APIError{Message: fmt.Sprintf("provider returned status %d", resp.StatusCode)}
	}

	return res, nil
}
