package validation

import (
	"errors"
	"net/url"
	"strings"
)

// URLValidator checks media URLs before they reach the fetchers.
type URLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewURLValidator creates a URL validator accepting http and https URLs
// from any host.
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   []string{}, // empty means all hosts allowed
	}
}

// NewURLValidatorWithOptions creates a URL validator with custom scheme
// and host allowlists.
func NewURLValidatorWithOptions(schemes, hosts []string) *URLValidator {
	return &URLValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// ValidateMediaURL validates a URL for media fetching.
func (v *URLValidator) ValidateMediaURL(mediaURL string) error {
	if strings.TrimSpace(mediaURL) == "" {
		return errors.New("URL cannot be empty")
	}

	parsedURL, err := url.Parse(mediaURL)
	if err != nil {
		return errors.New("invalid URL format")
	}

	if !v.isSchemeAllowed(parsedURL.Scheme) {
		return errors.New("URL scheme not allowed")
	}

	if parsedURL.Host == "" {
		return errors.New("URL must have a valid host")
	}

	if len(v.allowedHosts) > 0 && !v.isHostAllowed(parsedURL.Host) {
		return errors.New("URL host not allowed")
	}

	return nil
}

func (v *URLValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

func (v *URLValidator) isHostAllowed(host string) bool {
	for _, allowed := range v.allowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}
