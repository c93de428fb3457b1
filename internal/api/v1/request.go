package v1

type SendMessageRequest struct {
	RecipientPhone string `json:"recipientPhone" validate:"required,phone"`
	RecipientName  string `json:"recipientName" validate:"omitempty,max=100"`
	Message        string `json:"message" validate:"required,max=4096"`
	LinkURL        string `json:"linkUrl" validate:"omitempty,url"`
	LinkPreview    bool   `json:"linkPreview"`
	MediaURL       string `json:"mediaUrl" validate:"omitempty,url"`
}

type SendMediaRequest struct {
	RecipientPhone string `json:"recipientPhone" validate:"required,phone"`
	RecipientName  string `json:"recipientName" validate:"omitempty,max=100"`
	Message        string `json:"message" validate:"omitempty,max=4096"`
	MediaURL       string `json:"mediaUrl" validate:"required,url"`
}

type SendTemplateRequest struct {
	RecipientPhone string   `json:"recipientPhone" validate:"required,phone"`
	TemplateName   string   `json:"templateName" validate:"required,max=512"`
	LanguageCode   string   `json:"languageCode" validate:"omitempty,max=16"`
	Parameters     []string `json:"parameters" validate:"omitempty,dive,max=1024"`
}

type SendLinkRequest struct {
	RecipientPhone string `json:"recipientPhone" validate:"required,phone"`
	LinkURL        string `json:"linkUrl" validate:"required,url"`
	Message        string `json:"message" validate:"omitempty,max=4096"`
}
