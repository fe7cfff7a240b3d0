package provider

import "fmt"

// ServiceNotFoundError reports that no implementation is registered for a
// capability, or that the preferred one is missing.
type ServiceNotFoundError struct {
	Capability Capability
	Name       string
}

func (e *ServiceNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s provider %q was not registered; expected a Register call adding it under capability %q", e.Capability, e.Name, e.Capability)
	}
	return fmt.Sprintf("%s was not defined; expected a Register call adding an implementation under capability %q", e.Capability, e.Capability)
}
