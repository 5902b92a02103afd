package condition

import "fmt"

// UnknownFlagError indicates that a condition referenced a flag which is not
// part of the build configuration.
type UnknownFlagError struct {
	Flag string
}

var _ error = (*UnknownFlagError)(nil)

func (e UnknownFlagError) Error() string {
	return fmt.Sprintf("The flag %q is not part of the build configuration.", e.Flag)
}
