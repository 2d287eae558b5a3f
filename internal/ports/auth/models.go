package auth

// Claims representa a quién autenticó el verifier.
type Claims struct {
	Subject string
	Admin   bool
}
