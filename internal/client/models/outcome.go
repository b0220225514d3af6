package models

// VerificationOutcome is the result of exchanging an email verification
// token. Exactly one of Verified, AlreadyVerified or PlainSuccess is
// produced by the API client; failures come back as errors instead.
type VerificationOutcome interface {
	OutcomeMessage() string
	isVerificationOutcome()
}

// Verified is a first-time verification that issued a session.
type Verified struct {
	Message     string
	Credentials Credentials
}

// AlreadyVerified reports an account that had been verified before.
type AlreadyVerified struct {
	Message string
}

// PlainSuccess is a successful exchange that carries neither the
// already-verified flag nor a session.
type PlainSuccess struct {
	Message string
}

func (v Verified) OutcomeMessage() string        { return v.Message }
func (v AlreadyVerified) OutcomeMessage() string { return v.Message }
func (v PlainSuccess) OutcomeMessage() string    { return v.Message }

func (Verified) isVerificationOutcome()        {}
func (AlreadyVerified) isVerificationOutcome() {}
func (PlainSuccess) isVerificationOutcome()    {}
