package domain

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

var (
	// ErrMissingURL is returned when no URL was supplied.
	ErrMissingURL = errors.New("url is required")
	// ErrUnsupportedScheme is returned for URLs whose scheme is not http or https.
	ErrUnsupportedScheme = errors.New("only http and https URLs are supported")
	// ErrMissingHost is returned for URLs without a host component.
	ErrMissingHost = errors.New("url must contain a host")
)

// ParseAuditURL validates that raw is an absolute http or https URL and
// returns its parsed form. The scheme check is case-insensitive.
func ParseAuditURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrMissingURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse URL: %w", err)
	}
	if !u.IsAbs() {
		return nil, ErrUnsupportedScheme
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, ErrUnsupportedScheme
	}

	if u.Hostname() == "" {
		return nil, ErrMissingHost
	}

	return u, nil
}

// DomainFromURL derives the grouping domain of an audit URL: the lower-cased
// host with any port removed. An empty string is returned when the URL cannot
// be parsed so that callers can skip the field instead of failing.
func DomainFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	// bracketed IPv6 without a port
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")

	return strings.TrimSuffix(host, ".")
}
