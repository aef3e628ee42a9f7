package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN" // Full access, including schedule mutations
	RoleStaff RoleType = "STAFF" // Read access to records and timetables
)

// Term represents an academic term a program runs in
type Term string

// Term constants
const (
	TermFall   Term = "FALL"
	TermSpring Term = "SPRING"
	TermSummer Term = "SUMMER"
)
