package dispatcher

import "context"

// Dispatcher is the transport-neutral contract both provider variants
// implement. Exactly one implementation is wired per process, selected by
// provider.mode at startup.
type Dispatcher interface {
	Initialize(ctx context.Context) error
	Disconnect(ctx context.Context) error
	SendText(ctx context.Context, cmd SendCommand) (Result, error)
	SendMedia(ctx context.Context, cmd SendCommand) (Result, error)
	SendTemplate(ctx context.Context, cmd TemplateCommand) (Result, error)
	Status() Status
	QRCode() (QR, bool)
}

// SendCommand carries an already-composed message body and a canonical
// digit-only recipient phone.
type SendCommand struct {
	RecipientPhone string
	RecipientName  string
	Body           string
	LinkPreview    bool
	MediaURL       string
}

type TemplateCommand struct {
	RecipientPhone string
	TemplateName   string
	LanguageCode   string
	Parameters     []string
}

type Result struct {
	MessageID string
}

type Status struct {
	Connected     bool
	Configured    bool
	PhoneNumber   string
	PhoneNumberID string
	QRCode        string
}

// QR holds the raw pairing payload and its rendered PNG data URI.
type QR struct {
	Data  string
	Image string
}
