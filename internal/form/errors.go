package form

import (
	"fmt"
	"sort"
	"strings"
)

type Step int

const (
	StepPersonalInfo Step = iota + 1
	StepFamilyDetails
	StepSportSpecific
	StepDocuments
)

var stepNames = map[Step]string{
	StepPersonalInfo:  "Personal Information",
	StepFamilyDetails: "Family Details",
	StepSportSpecific: "Sport Specific",
	StepDocuments:     "Documents",
}

func (s Step) Valid() bool {
	return s >= StepPersonalInfo && s <= StepDocuments
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// FieldError is a single human-readable message tied to the field key that
// produced it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors maps a step to its ordered list of field errors. Steps
// without errors are absent.
type ValidationErrors map[Step][]FieldError

func (e ValidationErrors) Error() string {
	var msgs []string
	for _, step := range e.Steps() {
		for _, fe := range e[step] {
			msgs = append(msgs, fmt.Sprintf("step %d: %s", step, fe.Message))
		}
	}
	return strings.Join(msgs, "; ")
}

// Steps returns the failing steps in ascending order.
func (e ValidationErrors) Steps() []Step {
	steps := make([]Step, 0, len(e))
	for step, errs := range e {
		if len(errs) > 0 {
			steps = append(steps, step)
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i] < steps[j] })

	return steps
}

func (e ValidationErrors) Empty() bool {
	return len(e.Steps()) == 0
}

// FirstStep is the lowest failing step, or zero when there are no errors.
func (e ValidationErrors) FirstStep() Step {
	steps := e.Steps()
	if len(steps) == 0 {
		return 0
	}
	return steps[0]
}

// Messages returns the messages recorded for step, in order.
func (e ValidationErrors) Messages(step Step) []string {
	msgs := make([]string, 0, len(e[step]))
	for _, fe := range e[step] {
		msgs = append(msgs, fe.Message)
	}
	return msgs
}

// Clear drops every error attached to one of fields and removes steps left
// without errors.
func (e ValidationErrors) Clear(fields ...string) {
	if len(fields) == 0 {
		return
	}

	drop := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		drop[f] = struct{}{}
	}

	for step, errs := range e {
		kept := errs[:0]
		for _, fe := range errs {
			if _, ok := drop[fe.Field]; !ok {
				kept = append(kept, fe)
			}
		}
		if len(kept) == 0 {
			delete(e, step)
			continue
		}
		e[step] = kept
	}
}
