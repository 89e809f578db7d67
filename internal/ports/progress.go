package ports

// ProgressReporter owns the visual progress state of a batch
type ProgressReporter interface {
	// Begin resets position to zero and sets the total
	Begin(total int)

	// SetMessage sets the status text shown next to the bar
	SetMessage(text string)

	// StartTicking keeps the bar animated until StopTicking is called
	StartTicking()

	// StopTicking stops the ticker and waits for it to exit
	StopTicking()

	// Advance moves the position forward by one, never past total
	Advance()

	// Finish renders the final state with text as the message
	Finish(text string)

	// Println prints a line without corrupting the bar
	Println(text string)
}
