package authcore

// HashPassword derives a [Credential] for the password. Called at
// registration and password-reset time. Input errors are tier-1
// programming errors ([ErrPasswordInvalidInput]); library failures are
// tier-3 ([ErrHashingUnavailable]). Neither is a user-visible
// authentication outcome.
func (e *Engine) HashPassword(pw string) (Credential, error) {
	if e == nil || e.hasher == nil {
		return Credential{}, ErrEngineNotReady
	}
	return e.hasher.Hash(pw)
}

// VerifyPassword reports whether pw reproduces the stored credential pair.
// Every failure (wrong password, malformed input, internal error) resolves
// to false; verification never crashes a caller.
func (e *Engine) VerifyPassword(pw, hash, salt string) bool {
	if e == nil || e.hasher == nil {
		return false
	}
	return e.hasher.Verify(pw, hash, salt)
}
