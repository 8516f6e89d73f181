package request

import "strings"

const (
	ClientWeb    = "web"
	ClientMobile = "mobile"
)

// ResolveClientType menentukan jenis client dari header eksplisit,
// fallback ke sniffing User-Agent.
func ResolveClientType(clientHeader, userAgent string) string {
	switch strings.ToLower(strings.TrimSpace(clientHeader)) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "dart") {
		return ClientMobile
	}
	return ClientWeb
}

func IsWebClient(clientType string) bool {
	return clientType == ClientWeb
}
