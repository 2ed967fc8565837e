package ports

// Progress displays run progress as discrete steps or a 0..1 fraction.
type Progress interface {
	// Begin starts a new phase with the given number of steps.
	// A total of zero means the phase reports fractions.
	Begin(description string, total int)

	// Step advances the current phase by one step.
	Step()

	// Set reports the fraction of the current phase that is complete.
	// Values may arrive out of order.
	Set(fraction float64)

	// Done finishes the current phase.
	Done()
}
