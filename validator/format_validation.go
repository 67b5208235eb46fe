// This file implements format checks for content types, URLs, and emails.
// Every finding here is a warning.

package validator

import (
	"mime"
	"net/url"
	"regexp"
	"strings"

	"github.com/erraggy/asynctools/spec"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// isValidMediaType checks if a media type string is valid using RFC-compliant parsing.
// Custom and vendor-specific media types (e.g., application/vnd.custom+json) are allowed.
func isValidMediaType(mediaType string) bool {
	// mime.ParseMediaType also accepts bare dispositions such as "attachment".
	if !strings.Contains(mediaType, "/") {
		return false
	}

	// mime.ParseMediaType doesn't handle wildcards.
	// Valid: */* or type/*. Invalid: */subtype.
	if strings.Contains(mediaType, "*") {
		parts := strings.Split(strings.Split(mediaType, ";")[0], "/")
		if len(parts) != 2 {
			return false
		}
		if parts[0] == "*" {
			return parts[1] == "*"
		}
		if parts[1] == "*" {
			return parts[0] != ""
		}
	}

	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}

// isValidURL accepts absolute http/https URLs and relative URLs starting with /.
func isValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme == "http" || u.Scheme == "https" {
		return true
	}
	return u.Scheme == "" && strings.HasPrefix(s, "/")
}

// isValidEmail validates contact.email. Empty is valid because the field is optional.
func isValidEmail(s string) bool {
	if s == "" {
		return true
	}
	return emailRegex.MatchString(s)
}

// validateFormats checks the free-form string fields that carry a format:
// content types, contact details, and documentation URLs.
func (p *pass) validateFormats() {
	info := p.doc.Info
	if ct := p.doc.DefaultContentType; ct != "" && !isValidMediaType(ct) {
		p.addWarning(documentOwner, "defaultContentType",
			"defaultContentType is not a valid media type", withField("defaultContentType"), withValue(ct))
	}
	if c := info.Contact; c != nil {
		if c.URL != "" && !isValidURL(c.URL) {
			p.addWarning(documentOwner, "info.contact.url", "contact url is not a valid URL",
				withField("url"), withValue(c.URL))
		}
		if !isValidEmail(c.Email) {
			p.addWarning(documentOwner, "info.contact.email", "contact email is not a valid email address",
				withField("email"), withValue(c.Email))
		}
	}
	if l := info.License; l != nil && l.URL != "" && !isValidURL(l.URL) {
		p.addWarning(documentOwner, "info.license.url", "license url is not a valid URL",
			withField("url"), withValue(l.URL))
	}
	p.checkExternalDocs(documentOwner, "info.externalDocs", info.ExternalDocs)

	p.eachMessage(func(o owner, path string, msg *spec.Message) {
		if msg.ContentType != "" && !isValidMediaType(msg.ContentType) {
			p.addWarning(o, path+".contentType", "contentType is not a valid media type",
				withField("contentType"), withValue(msg.ContentType))
		}
		p.checkExternalDocs(o, path+".externalDocs", msg.ExternalDocs)
	})
}

func (p *pass) checkExternalDocs(o owner, path string, docs *spec.ExternalDocs) {
	if docs != nil && !isValidURL(docs.URL) {
		p.addWarning(o, path+".url", "externalDocs url is not a valid URL",
			withField("url"), withValue(docs.URL))
	}
}
