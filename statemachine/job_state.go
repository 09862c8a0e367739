// Package statemachine governs the delivery job lifecycle.
package statemachine

import (
	"errors"

	"landscape-supply-api/models"
)

// Transition defines a valid state change and which role can perform it
type Transition struct {
	From models.JobStatus
	To   models.JobStatus
	Role models.Role
}

// validTransitions is the authoritative state machine definition.
// Completing a delivery is allowed for office, admin, or the assigned
// driver (the handler verifies the driver actually owns the job).
var validTransitions = []Transition{
	// Office assigns a delivery date, clearing the "to be scheduled" sentinel
	{From: models.StatusToBeScheduled, To: models.StatusScheduled, Role: models.RoleOffice},
	{From: models.StatusToBeScheduled, To: models.StatusScheduled, Role: models.RoleAdmin},
	// Legacy path: a scheduled delivery marked out on the road
	{From: models.StatusScheduled, To: models.StatusInProgress, Role: models.RoleOffice},
	{From: models.StatusScheduled, To: models.StatusInProgress, Role: models.RoleAdmin},
	// Mark complete
	{From: models.StatusScheduled, To: models.StatusCompleted, Role: models.RoleOffice},
	{From: models.StatusScheduled, To: models.StatusCompleted, Role: models.RoleAdmin},
	{From: models.StatusScheduled, To: models.StatusCompleted, Role: models.RoleDriver},
	{From: models.StatusInProgress, To: models.StatusCompleted, Role: models.RoleOffice},
	{From: models.StatusInProgress, To: models.StatusCompleted, Role: models.RoleAdmin},
	{From: models.StatusInProgress, To: models.StatusCompleted, Role: models.RoleDriver},
	// Office can cancel anything not yet terminal
	{From: models.StatusToBeScheduled, To: models.StatusCancelled, Role: models.RoleOffice},
	{From: models.StatusToBeScheduled, To: models.StatusCancelled, Role: models.RoleAdmin},
	{From: models.StatusScheduled, To: models.StatusCancelled, Role: models.RoleOffice},
	{From: models.StatusScheduled, To: models.StatusCancelled, Role: models.RoleAdmin},
	{From: models.StatusInProgress, To: models.StatusCancelled, Role: models.RoleOffice},
	{From: models.StatusInProgress, To: models.StatusCancelled, Role: models.RoleAdmin},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From models.JobStatus
	To   models.JobStatus
	Role models.Role
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Role}] = true
	}
	return m
}()

// IsTerminal reports whether a status has no outgoing transitions
func IsTerminal(status models.JobStatus) bool {
	return status == models.StatusCompleted || status == models.StatusCancelled
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.JobStatus) []models.JobStatus {
	var nexts []models.JobStatus
	seen := map[models.JobStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given role can move a job from one state to another
func CanTransition(from, to models.JobStatus, role models.Role) error {
	key := transitionKey{From: from, To: to, Role: role}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed for role '" + string(role) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.JobStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
