package mesh

import "fmt"

// Severity indicates whether a finding makes the mesh invalid or is merely
// informational.
type Severity int

const (
	SeverityError   Severity = iota // face is not well-formed
	SeverityWarning                 // face is well-formed but renders as nothing
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Problem describes a single validation finding on one face.
type Problem struct {
	Face     int
	Message  string
	Severity Severity
}

func (p Problem) Error() string {
	return fmt.Sprintf("[%s] face %d: %s", p.Severity, p.Face, p.Message)
}

// Validate reports every malformed face as an error and every degenerate
// face as a warning. The mesh is valid iff no error is returned.
// Read-only.
func Validate(m *Mesh) []Problem {
	if m == nil {
		return nil
	}
	var problems []Problem
	n := len(m.Vertices)
	for i, f := range m.Faces {
		if len(f) < 3 {
			problems = append(problems, Problem{
				Face:     i,
				Message:  fmt.Sprintf("face has %d indices, need at least 3", len(f)),
				Severity: SeverityError,
			})
			continue
		}
		bad := false
		for _, idx := range f {
			if idx < 0 || idx >= n {
				problems = append(problems, Problem{
					Face:     i,
					Message:  fmt.Sprintf("index %d out of range [0, %d)", idx, n),
					Severity: SeverityError,
				})
				bad = true
			}
		}
		if bad {
			continue
		}
		if _, ok := m.FaceNormal(i); !ok {
			problems = append(problems, Problem{
				Face:     i,
				Message:  "face is degenerate (zero area)",
				Severity: SeverityWarning,
			})
		}
	}
	return problems
}

// Errors filters problems down to those with SeverityError.
func Errors(problems []Problem) []Problem {
	var errs []Problem
	for _, p := range problems {
		if p.Severity == SeverityError {
			errs = append(errs, p)
		}
	}
	return errs
}
