package cloudapi

type Response struct {
	Messages []Message `json:"messages"`
	Contacts []Contact `json:"contacts"`
	Error    *APIError `json:"error"`
}

type Message struct {
	ID string `json:"id"`
}

type Contact struct {
	Input string `json:"input"`
	WaID  string `json:"wa_id"`
}

// MessageID returns the provider id of the first accepted message.
func (r Response) MessageID() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[0].ID
}
