package ncxml

import "fmt"

// ValidationError is returned when an element fails the tag or attribute
// constraints supplied to ValidatedElement. It carries the offending
// element's tag for diagnostics.
type ValidationError struct {
	Tag    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("element [%s] %s", e.Tag, e.Reason)
}

// ValidatedElement resolves v via ToElement and checks the result against
// the supplied constraints, delivering the same element on success so the
// call can be used inline as a guarded accessor.
//
// A non-empty tags slice requires the element's tag to be among the given
// names. Each attrs entry lists alternative attribute names of which at
// least one must be present; entries are checked in order. nil slices leave
// the corresponding constraint unchecked.
func ValidatedElement(v Source, tags []string, attrs [][]string) (*Element, error) {
	ele, err := ToElement(v)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		ok := false
		for _, tag := range tags {
			if ele.Tag == tag {
				ok = true
				break
			}
		}
		if !ok {
			return nil, &ValidationError{Tag: ele.Tag, Reason: "does not meet tag requirement"}
		}
	}
	for _, alternatives := range attrs {
		found := false
		for _, alt := range alternatives {
			if _, ok := ele.Attribute(alt); ok {
				found = true
				break
			}
		}
		if !found {
			return nil, &ValidationError{Tag: ele.Tag, Reason: "does not have required attributes"}
		}
	}
	return ele, nil
}
