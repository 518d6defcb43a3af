package model

// Credentials is a registry username and access token pair. It is injected
// by the caller per run and consumed only by the publish stage.
type Credentials struct {
	Username string
	Token    string
}

func (c Credentials) Empty() bool {
	return c.Username == "" || c.Token == ""
}

// String keeps the token out of logs and %v formatting.
func (c Credentials) String() string {
	if c.Username == "" {
		return "<unset>"
	}
	return c.Username + ":<redacted>"
}
