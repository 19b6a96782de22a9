package calendar

import "fmt"

// InvalidComponentError reports an out-of-range date/time component, per
// spec §7's invalidComponentValue.
type InvalidComponentError struct {
	Component string
	Reason    string
}

func (e *InvalidComponentError) Error() string {
	return fmt.Sprintf("invalid component %s: %s", e.Component, e.Reason)
}

func invalidComponent(component, reason string) error {
	return &InvalidComponentError{Component: component, Reason: reason}
}
