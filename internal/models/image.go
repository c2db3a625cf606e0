package models

// ImagePayload is an uploaded image ready to be sent to a model provider.
// It lives only for the duration of one request.
type ImagePayload struct {
	Data     []byte
	MIMEType string
}
