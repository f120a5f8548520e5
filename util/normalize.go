package util

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
)

// Normalizes an instance base URL, eg "Chaos.Social/" becomes
// "https://chaos.social". A missing scheme defaults to https. The result never
// has a trailing slash, query or fragment. Blank input normalizes fallback
// instead.
func NormalizeInstanceURL(raw, fallback string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = strings.TrimSpace(fallback)
	}
	if raw == "" {
		return "", fmt.Errorf("instance URL cannot be empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	clean, err := purell.NormalizeURLString(raw, purell.FlagsSafe|purell.FlagRemoveTrailingSlash|purell.FlagRemoveDuplicateSlashes|purell.FlagRemoveFragment)
	if err != nil {
		return "", fmt.Errorf("invalid instance URL %q: %w", raw, err)
	}

	u, err := url.Parse(clean)
	if err != nil {
		return "", fmt.Errorf("invalid instance URL %q: %w", raw, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("unsupported instance URL scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("empty hostname in instance URL")
	}
	u.RawQuery = ""
	return strings.TrimSuffix(u.String(), "/"), nil
}
