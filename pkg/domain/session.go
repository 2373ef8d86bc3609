package domain

// Credential is the opaque bearer token issued by the login action.
// The zero value means no credential.
type Credential string

// Present reports whether c holds a token.
func (c Credential) Present() bool {
	return c != ""
}
