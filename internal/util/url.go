package util

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// trackingParams are stripped from deal URLs before they are fetched or stored.
var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"fbclid", "gclid", "igshid", "mc_cid", "mc_eid", "ref", "ref_",
}

// NormalizeURL forces a lower-case host, drops the fragment, a trailing
// slash and known tracking parameters.
func NormalizeURL(rawURL string) (string, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL, err
	}
	if parsedURL.Host == "" {
		return rawURL, nil
	}

	parsedURL.Host = strings.ToLower(parsedURL.Host)
	parsedURL.Fragment = ""
	if len(parsedURL.Path) > 1 && strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path = parsedURL.Path[:len(parsedURL.Path)-1]
		// Clear RawPath to ensure String() regenerates the URL path without the trailing slash
		parsedURL.RawPath = ""
	}
	queryParams := parsedURL.Query()
	for _, param := range trackingParams {
		queryParams.Del(param)
	}
	parsedURL.RawQuery = queryParams.Encode()
	return parsedURL.String(), nil
}

// GetDomain returns the registrable domain of a URL ("sub.example.co.uk" ->
// "example.co.uk"), or "" when the URL has no usable host.
func GetDomain(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	hostname := strings.ToLower(parsedURL.Hostname())
	if hostname == "" {
		return ""
	}
	if net.ParseIP(hostname) != nil {
		return hostname
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		return hostname
	}
	return domain
}
