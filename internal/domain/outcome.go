package domain

// Outcome is the settled result of one job's encoder invocation.
// It is either Success or Failure; no other implementations exist.
type Outcome interface {
	outcome()
}

// Success means the encoder exited with status zero
type Success struct{}

// Failure carries the diagnostic text explaining why a job did not convert
type Failure struct {
	Diagnostic string
}

func (Success) outcome() {}
func (Failure) outcome() {}

// Failed wraps a diagnostic into a Failure outcome
func Failed(diagnostic string) Outcome {
	return Failure{Diagnostic: diagnostic}
}

// IsSuccess reports whether o is a Success
func IsSuccess(o Outcome) bool {
	_, ok := o.(Success)
	return ok
}
