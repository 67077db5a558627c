package api

import "net/http"

// Credentials attaches an authorization header to outgoing requests.
// Two strategies exist: fixed basic-auth credentials and a bearer token
// obtained from the authenticate call. The strategy is selected by
// configuration so neither is hardwired into the client.
type Credentials interface {
	Apply(req *http.Request)
}

// BasicAuth sends a fixed username/password pair with every request.
type BasicAuth struct {
	User string
	Pass string
}

func (b BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(b.User, b.Pass)
}

// BearerToken sends a session token obtained at login. An empty token
// sends no Authorization header, which the API rejects with 401.
type BearerToken struct {
	Token string
}

func (b BearerToken) Apply(req *http.Request) {
	if b.Token != "" {
		req.Header.Set("Authorization", "Bearer "+b.Token)
	}
}
