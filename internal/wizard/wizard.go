// Package wizard holds the onboarding wizard's step state machine, kept
// free of any UI or network concerns so the transition rules stay
// testable on their own.
package wizard

// Step indexes the five wizard steps in their fixed order.
type Step int

const (
	StepCompanyInfo Step = iota
	StepOrgStructure
	StepJobPositions
	StepInvitations
	StepReview

	stepCount
)

// Title returns the display name for a step.
func (s Step) Title() string {
	switch s {
	case StepCompanyInfo:
		return "Company Information"
	case StepOrgStructure:
		return "Organization Structure"
	case StepJobPositions:
		return "Job Positions"
	case StepInvitations:
		return "Invite Team Members"
	case StepReview:
		return "Complete"
	default:
		return "Unknown"
	}
}

// Steps returns all steps in order, for rendering progress indicators.
func Steps() []Step {
	return []Step{StepCompanyInfo, StepOrgStructure, StepJobPositions, StepInvitations, StepReview}
}

// Machine tracks the cursor, the completed set and the company id that
// threads through every provisioning call after step one.
type Machine struct {
	current   Step
	completed map[Step]bool
	companyID int
}

// NewMachine starts at the first step with nothing completed.
func NewMachine() *Machine {
	return &Machine{completed: make(map[Step]bool)}
}

// Current returns the cursor position. Always within [0, last].
func (m *Machine) Current() Step { return m.current }

// Completed reports whether a step's work has succeeded.
func (m *Machine) Completed(s Step) bool { return m.completed[s] }

// AllCompleted reports whether every step has succeeded.
func (m *Machine) AllCompleted() bool {
	for s := StepCompanyInfo; s < stepCount; s++ {
		if !m.completed[s] {
			return false
		}
	}
	return true
}

// CompanyID returns the id captured at the company-info step, 0 before it.
func (m *Machine) CompanyID() int { return m.companyID }

// SetCompanyID records the id returned by company creation.
func (m *Machine) SetCompanyID(id int) { m.companyID = id }

// Complete marks the current step done and moves the cursor. From the last
// step with earlier steps still open, the cursor jumps back to the lowest
// incomplete step rather than past the end; otherwise it moves forward one.
func (m *Machine) Complete() Step {
	m.completed[m.current] = true
	m.current = m.next()
	return m.current
}

func (m *Machine) next() Step {
	if m.current == StepReview && !m.AllCompleted() {
		for s := StepCompanyInfo; s < stepCount; s++ {
			if !m.completed[s] {
				return s
			}
		}
	}
	if m.current+1 < stepCount {
		return m.current + 1
	}
	return m.current
}

// Back moves the cursor one step earlier. At the first step it does
// nothing; the cursor never goes negative.
func (m *Machine) Back() Step {
	if m.current > StepCompanyInfo {
		m.current--
	}
	return m.current
}

// Goto jumps to a completed (or current) step for review. Jumping forward
// past incomplete work is refused.
func (m *Machine) Goto(s Step) bool {
	if s < StepCompanyInfo || s >= stepCount {
		return false
	}
	if s > m.current && !m.completed[s] {
		return false
	}
	m.current = s
	return true
}
