package http

import "net/http"

const (
	SchemeBearer = "Bearer"
	SchemeKey    = "Key"
)

type authTransport struct {
	scheme    string
	token     string
	transport http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token == "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set("Authorization", t.scheme+" "+t.token)

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sends "Authorization: Bearer <token>" on every request
func WithAuthToken(token string) HttpOpts {
	return WithAuthScheme(SchemeBearer, token)
}

// WithAuthScheme sends "Authorization: <scheme> <token>" on every request.
// An empty token disables the header.
func WithAuthScheme(scheme, token string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &authTransport{
			scheme:    scheme,
			token:     token,
			transport: rt,
		}
	})
}
