package netutil

import (
	"net/url"

	"github.com/pkg/errors"
)

// ValidateHttpUrl validates a URL for an HTTP scheme
func ValidateHttpUrl(value string, requireSecureConnection bool) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}

	if requireSecureConnection && parsed.Scheme != "https" {
		return errors.New("url scheme must be https")
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("url scheme must be http or https")
	}

	if len(parsed.Host) == 0 {
		return errors.New("host component missing")
	} else if err := ValidateDomainName(parsed.Hostname()); err != nil {
		return errors.Wrap(err, "host is not a valid domain name")
	}

	return nil
}

// ValidateAllowedOrigin accepts "*" or an http(s) origin without a path.
func ValidateAllowedOrigin(value string) error {
	if value == "*" {
		return nil
	}

	if err := ValidateHttpUrl(value, false); err != nil {
		return err
	}

	parsed, _ := url.Parse(value)
	if len(parsed.Path) > 0 && parsed.Path != "/" {
		return errors.New("origin must not contain a path")
	}
	return nil
}
