package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// NormalizePhone parses a phone number against a default region and returns
// it in E.164 form. An empty input yields an empty result.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	p, err := libphonenumber.Parse(raw, region)
	if err != nil {
		return "", err
	}
	if !libphonenumber.IsValidNumber(p) {
		return "", fmt.Errorf("phone number is not valid")
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}

// WhatsAppLink builds a wa.me click-to-chat link with a prefilled message.
func WhatsAppLink(e164, message string) string {
	digits := strings.TrimPrefix(e164, "+")
	link := "https://wa.me/" + digits
	if message != "" {
		link += "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	}
	return link
}
