package spec

import (
	"fmt"
	"maps"
	"slices"

	"github.com/erraggy/asynctools/asyncerrors"
	"github.com/goccy/go-json"
)

// SecuritySchemeType is the "type" discriminator of a security scheme.
type SecuritySchemeType string

// Security scheme types.
const (
	SecurityUserPassword         SecuritySchemeType = "userPassword"
	SecurityAPIKey               SecuritySchemeType = "apiKey"
	SecurityX509                 SecuritySchemeType = "X509"
	SecuritySymmetricEncryption  SecuritySchemeType = "symmetricEncryption"
	SecurityAsymmetricEncryption SecuritySchemeType = "asymmetricEncryption"
	SecurityHTTPAPIKey           SecuritySchemeType = "httpApiKey"
	SecurityHTTP                 SecuritySchemeType = "http"
	SecurityOAuth2               SecuritySchemeType = "oauth2"
	SecurityOpenIDConnect        SecuritySchemeType = "openIdConnect"
	SecurityMutualTLS            SecuritySchemeType = "mutualTLS"
)

// SecurityScheme is one of the security scheme variants defined in this
// package. The interface is sealed: each variant carries only the fields
// meaningful to it.
type SecurityScheme interface {
	// Type returns the variant's discriminator.
	Type() SecuritySchemeType
	// SchemeDescription returns the scheme's description.
	SchemeDescription() string

	sealed()
}

// UserPassword is user/password authentication.
type UserPassword struct {
	Description string `json:"description,omitempty"`
}

// APIKeyLocation is where a broker-level API key is sent.
type APIKeyLocation string

// API key locations for the apiKey scheme.
const (
	APIKeyInUser     APIKeyLocation = "user"
	APIKeyInPassword APIKeyLocation = "password"
)

// APIKey is a broker-level API key sent in the user or password field.
type APIKey struct {
	In          APIKeyLocation `json:"in"`
	Description string         `json:"description,omitempty"`
}

// HTTPAuth is HTTP authentication, e.g. basic or bearer.
type HTTPAuth struct {
	Scheme       string `json:"scheme"`
	BearerFormat string `json:"bearerFormat,omitempty"`
	Description  string `json:"description,omitempty"`
}

// HTTPAPIKeyLocation is where an HTTP API key is sent.
type HTTPAPIKeyLocation string

// API key locations for the httpApiKey scheme.
const (
	HTTPAPIKeyInQuery  HTTPAPIKeyLocation = "query"
	HTTPAPIKeyInHeader HTTPAPIKeyLocation = "header"
	HTTPAPIKeyInCookie HTTPAPIKeyLocation = "cookie"
)

// HTTPAPIKey is an API key sent as an HTTP header, query or cookie parameter.
type HTTPAPIKey struct {
	Name        string             `json:"name"`
	In          HTTPAPIKeyLocation `json:"in"`
	Description string             `json:"description,omitempty"`
}

// OAuth2 is OAuth 2.0 authentication.
type OAuth2 struct {
	Flows       OAuthFlows `json:"flows"`
	Scopes      []string   `json:"scopes,omitempty"`
	Description string     `json:"description,omitempty"`
}

// OAuthFlows configures the supported OAuth flows.
type OAuthFlows struct {
	Implicit          *OAuthFlow `json:"implicit,omitempty"`
	Password          *OAuthFlow `json:"password,omitempty"`
	ClientCredentials *OAuthFlow `json:"clientCredentials,omitempty"`
	AuthorizationCode *OAuthFlow `json:"authorizationCode,omitempty"`
}

// OAuthFlow configures one OAuth flow.
type OAuthFlow struct {
	AuthorizationURL string            `json:"authorizationUrl,omitempty"`
	TokenURL         string            `json:"tokenUrl,omitempty"`
	RefreshURL       string            `json:"refreshUrl,omitempty"`
	AvailableScopes  map[string]string `json:"availableScopes"`
}

// OpenIDConnect is OpenID Connect discovery based authentication.
type OpenIDConnect struct {
	OpenIDConnectURL string   `json:"openIdConnectUrl"`
	Scopes           []string `json:"scopes,omitempty"`
	Description      string   `json:"description,omitempty"`
}

// X509 is X.509 certificate authentication.
type X509 struct {
	Description string `json:"description,omitempty"`
}

// SymmetricEncryption is symmetric message encryption.
type SymmetricEncryption struct {
	Description string `json:"description,omitempty"`
}

// AsymmetricEncryption is asymmetric message encryption.
type AsymmetricEncryption struct {
	Description string `json:"description,omitempty"`
}

// MutualTLS is mutual TLS authentication.
type MutualTLS struct {
	Description string `json:"description,omitempty"`
}

func (UserPassword) Type() SecuritySchemeType         { return SecurityUserPassword }
func (APIKey) Type() SecuritySchemeType               { return SecurityAPIKey }
func (HTTPAuth) Type() SecuritySchemeType             { return SecurityHTTP }
func (HTTPAPIKey) Type() SecuritySchemeType           { return SecurityHTTPAPIKey }
func (OAuth2) Type() SecuritySchemeType               { return SecurityOAuth2 }
func (OpenIDConnect) Type() SecuritySchemeType        { return SecurityOpenIDConnect }
func (X509) Type() SecuritySchemeType                 { return SecurityX509 }
func (SymmetricEncryption) Type() SecuritySchemeType  { return SecuritySymmetricEncryption }
func (AsymmetricEncryption) Type() SecuritySchemeType { return SecurityAsymmetricEncryption }
func (MutualTLS) Type() SecuritySchemeType            { return SecurityMutualTLS }

func (s UserPassword) SchemeDescription() string         { return s.Description }
func (s APIKey) SchemeDescription() string               { return s.Description }
func (s HTTPAuth) SchemeDescription() string             { return s.Description }
func (s HTTPAPIKey) SchemeDescription() string           { return s.Description }
func (s OAuth2) SchemeDescription() string               { return s.Description }
func (s OpenIDConnect) SchemeDescription() string        { return s.Description }
func (s X509) SchemeDescription() string                 { return s.Description }
func (s SymmetricEncryption) SchemeDescription() string  { return s.Description }
func (s AsymmetricEncryption) SchemeDescription() string { return s.Description }
func (s MutualTLS) SchemeDescription() string            { return s.Description }

func (UserPassword) sealed()         {}
func (APIKey) sealed()               {}
func (HTTPAuth) sealed()             {}
func (HTTPAPIKey) sealed()           {}
func (OAuth2) sealed()               {}
func (OpenIDConnect) sealed()        {}
func (X509) sealed()                 {}
func (SymmetricEncryption) sealed()  {}
func (AsymmetricEncryption) sealed() {}
func (MutualTLS) sealed()            {}

// MarshalSecurityScheme encodes s with its "type" discriminator.
func MarshalSecurityScheme(s SecurityScheme) ([]byte, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	typ, err := json.Marshal(s.Type())
	if err != nil {
		return nil, err
	}
	fields["type"] = typ
	return json.Marshal(fields)
}

// UnmarshalSecurityScheme decodes a security scheme object, choosing the
// variant from its "type" field.
func UnmarshalSecurityScheme(data []byte) (SecurityScheme, error) {
	var head struct {
		Type SecuritySchemeType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var (
		scheme SecurityScheme
		err    error
	)
	switch head.Type {
	case SecurityUserPassword:
		scheme, err = decodeVariant[UserPassword](data)
	case SecurityAPIKey:
		scheme, err = decodeVariant[APIKey](data)
	case SecurityHTTP:
		scheme, err = decodeVariant[HTTPAuth](data)
	case SecurityHTTPAPIKey:
		scheme, err = decodeVariant[HTTPAPIKey](data)
	case SecurityOAuth2:
		scheme, err = decodeVariant[OAuth2](data)
	case SecurityOpenIDConnect:
		scheme, err = decodeVariant[OpenIDConnect](data)
	case SecurityX509:
		scheme, err = decodeVariant[X509](data)
	case SecuritySymmetricEncryption:
		scheme, err = decodeVariant[SymmetricEncryption](data)
	case SecurityAsymmetricEncryption:
		scheme, err = decodeVariant[AsymmetricEncryption](data)
	case SecurityMutualTLS:
		scheme, err = decodeVariant[MutualTLS](data)
	default:
		return nil, &asyncerrors.ParseError{Message: fmt.Sprintf("unknown security scheme type %q", head.Type)}
	}
	return scheme, err
}

type securityVariant interface {
	UserPassword | APIKey | HTTPAuth | HTTPAPIKey | OAuth2 | OpenIDConnect |
		X509 | SymmetricEncryption | AsymmetricEncryption | MutualTLS
	SecurityScheme
}

func decodeVariant[T securityVariant](data []byte) (SecurityScheme, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// SecuritySchemes maps a scheme name to its definition.
type SecuritySchemes map[string]SecurityScheme

// Names returns the scheme names in ascending order.
func (s SecuritySchemes) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// MarshalJSON encodes each scheme with its "type" discriminator.
func (s SecuritySchemes) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s))
	for name, scheme := range s {
		data, err := MarshalSecurityScheme(scheme)
		if err != nil {
			return nil, fmt.Errorf("security scheme %q: %w", name, err)
		}
		out[name] = data
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes each scheme by its "type" discriminator.
func (s *SecuritySchemes) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(SecuritySchemes, len(raw))
	for name, body := range raw {
		scheme, err := UnmarshalSecurityScheme(body)
		if err != nil {
			return fmt.Errorf("security scheme %q: %w", name, err)
		}
		out[name] = scheme
	}
	*s = out
	return nil
}
