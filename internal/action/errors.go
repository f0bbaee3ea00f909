package action

import "fmt"

func notCallableError(name string) error {
	return fmt.Errorf("action: %q is not callable", name)
}
