package repository

// QueryMode selects how a repository builds its statements. Parameterized
// uses positional placeholders; Concatenated splices the raw values into
// the SQL text. The concatenated path exists deliberately, as the
// injection-contrast surface, and must stay behaviorally identical to the
// parameterized one on well-formed input.
type QueryMode int

const (
	ModeParameterized QueryMode = iota
	ModeConcatenated
)

func (m QueryMode) String() string {
	if m == ModeConcatenated {
		return "concatenated"
	}
	return "parameterized"
}
