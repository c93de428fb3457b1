package service

type SendMessageCommand struct {
	RecipientPhone string
	RecipientName  string
	Message        string
	LinkURL        string
	LinkPreview    bool
	MediaURL       string
}

type SendTemplateCommand struct {
	RecipientPhone string
	TemplateName   string
	LanguageCode   string
	Parameters     []string
}

type SendMessageResult struct {
	MessageID string
}
