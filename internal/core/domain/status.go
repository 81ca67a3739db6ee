package domain

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	StatusPending        ApplicationStatus = "pending"
	StatusUnderReview    ApplicationStatus = "under_review"
	StatusApproved       ApplicationStatus = "approved"
	StatusRejected       ApplicationStatus = "rejected"
	StatusPaid           ApplicationStatus = "paid"
	StatusAdditionalInfo ApplicationStatus = "additional_info_required"
)

// transitions is the explicit state machine. Anything not listed here is an
// illegal transition. paid is only reachable through batch settlement;
// additional_info_required returns to under_review once the citizen
// supplements the dossier.
var transitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:        {StatusUnderReview, StatusApproved, StatusRejected, StatusAdditionalInfo},
	StatusUnderReview:    {StatusApproved, StatusRejected, StatusAdditionalInfo},
	StatusAdditionalInfo: {StatusUnderReview},
	StatusApproved:       {StatusPaid},
	StatusRejected:       {},
	StatusPaid:           {},
}

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are possible.
func (s ApplicationStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether the state machine allows s -> target.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
