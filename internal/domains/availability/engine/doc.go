// Package engine holds the pure availability rules: service resolution from free text,
// staff eligibility, interval checks and slot suggestion. Apart from EligibilityFilter,
// which reads each staff member's services through a lister, nothing here performs I/O
// or reads the wall clock.
package engine
