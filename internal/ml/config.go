package ml

import (
	"encoding/base64"

	"github.com/franckalain/healthanalyzer/internal/models"
)

// defaultMaxTokens caps completions of chat-style providers
const defaultMaxTokens = 1000

func resolveMaxTokens(n int) int {
	if n <= 0 {
		return defaultMaxTokens
	}
	return n
}

// dataURL encodes an image for providers that take an image_url reference
func dataURL(img models.ImagePayload) string {
	return "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
