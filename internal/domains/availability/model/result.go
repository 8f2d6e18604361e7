package model

import "time"

type Outcome string

const (
	OutcomeResolved        Outcome = "resolved"
	OutcomeAmbiguous       Outcome = "ambiguous"
	OutcomeNoServicesFound Outcome = "no_services_found"
	OutcomeNoStaffFound    Outcome = "no_staff_found"
	OutcomeNoEligibleStaff Outcome = "no_eligible_staff"
)

// Result is the outcome of one availability lookup. Exactly one of the types below implements it.
type Result interface {
	Outcome() Outcome
	isResult()
}

type NoServicesFound struct {
	Term    string
	Message string
}

type Ambiguous struct {
	Term       string
	Candidates []Service
	Message    string
}

type NoStaffFound struct {
	Service Service
	Message string
}

type NoEligibleStaff struct {
	Service Service
	Message string
}

// RequestedStaff describes what happened to an explicitly requested staff member.
type RequestedStaff string

const (
	RequestedStaffNone       RequestedStaff = ""
	RequestedStaffEligible   RequestedStaff = "eligible"
	RequestedStaffIneligible RequestedStaff = "ineligible"
	RequestedStaffNotFound   RequestedStaff = "not_found"
)

// RequestedCheck is the verdict on the caller's desired start.
type RequestedCheck struct {
	Start     time.Time
	End       time.Time
	Available bool
	// StaffID is the staff checked when one was requested, otherwise the first free eligible staff (0 if none).
	StaffID  int64
	Explicit bool
}

type Meta struct {
	DurationMinutes  int
	SearchDays       int
	StepMinutes      int
	OpenTime         string
	CloseTime        string
	ExcludedWeekdays []time.Weekday
}

type Resolved struct {
	Service        Service
	EligibleStaff  []Staff
	RequestedStaff RequestedStaff
	Requested      *RequestedCheck
	Suggestions    []Slot
	Meta           Meta
	Message        string
}

func (NoServicesFound) Outcome() Outcome { return OutcomeNoServicesFound }
func (Ambiguous) Outcome() Outcome       { return OutcomeAmbiguous }
func (NoStaffFound) Outcome() Outcome    { return OutcomeNoStaffFound }
func (NoEligibleStaff) Outcome() Outcome { return OutcomeNoEligibleStaff }
func (Resolved) Outcome() Outcome        { return OutcomeResolved }

func (NoServicesFound) isResult() {}
func (Ambiguous) isResult()       {}
func (NoStaffFound) isResult()    {}
func (NoEligibleStaff) isResult() {}
func (Resolved) isResult()        {}
