package reviews

var (
	// ErrNotFound is returned when a review does not exist.
	ErrNotFound = errNotFound{}
	// ErrFindingNotFound is returned when a finding does not exist.
	ErrFindingNotFound = errFindingNotFound{}
)

type errNotFound struct{}

func (errNotFound) Error() string { return "review not found" }

type errFindingNotFound struct{}

func (errFindingNotFound) Error() string { return "finding not found" }
