package api

// TokenSource resolves the anti-forgery token the csrf capability stamps
// onto outgoing submissions. The engine only delegates; lookup strategy
// (document meta tags, cookies, a fixed value) belongs to the host.
type TokenSource interface {
	// Token returns the current token value and whether one exists.
	Token() (string, bool)
	// Param returns the form parameter name the token travels under.
	Param() (string, bool)
}

// StaticTokenSource is a TokenSource with fixed values, mostly useful in
// tests and embedded hosts.
type StaticTokenSource struct {
	TokenValue string
	ParamName  string
}

func (s StaticTokenSource) Token() (string, bool) { return s.TokenValue, s.TokenValue != "" }
func (s StaticTokenSource) Param() (string, bool) { return s.ParamName, s.ParamName != "" }
