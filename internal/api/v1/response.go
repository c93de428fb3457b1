package v1

type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type StatusResponse struct {
	IsConnected   bool   `json:"isConnected"`
	IsConfigured  bool   `json:"isConfigured"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	PhoneNumberID string `json:"phoneNumberId,omitempty"`
	QRCode        string `json:"qrCode,omitempty"`
}

type QRResponse struct {
	Success bool   `json:"success"`
	QRCode  string `json:"qrCode"`
	QRData  string `json:"qrData"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
