package turkgate

import "context"

// AssignmentStatus is the platform-side lifecycle state of an assignment.
//
// Only [AssignmentSubmitted] and [AssignmentApproved] count toward a
// worker's tally; a rejected submission does not bring a worker closer to
// the cap.
type AssignmentStatus string

const (
	// AssignmentSubmitted indicates the worker has submitted work that is
	// awaiting review.
	AssignmentSubmitted AssignmentStatus = "Submitted"

	// AssignmentApproved indicates the submission has been accepted.
	AssignmentApproved AssignmentStatus = "Approved"

	// AssignmentRejected indicates the submission has been rejected.
	AssignmentRejected AssignmentStatus = "Rejected"
)

// Assignment is one worker's submission against one HIT in the monitored
// batch, as observed from the platform. Assignments are read-only inputs;
// the monitor never mutates them.
type Assignment struct {
	// WorkerID identifies the worker who produced the submission.
	WorkerID string

	// HITID identifies the HIT instance the submission was made against.
	HITID string

	// Status is the submission's lifecycle state.
	Status AssignmentStatus
}

// Platform is the slice of the crowdsourcing platform the monitor depends
// on. The mturk subpackage implements it against the real Mechanical Turk
// requester API; tests substitute fakes.
//
// All three operations are single atomic remote calls from the monitor's
// perspective. Errors are returned as-is for the caller to propagate; the
// monitor performs no retries.
type Platform interface {
	// ListBatchAssignments returns every assignment in the batch whose
	// status indicates completion (Submitted or Approved).
	ListBatchAssignments(ctx context.Context, batchID string) ([]Assignment, error)

	// ListDisqualified returns the IDs of workers currently holding the
	// disqualifying qualification.
	ListDisqualified(ctx context.Context, qualificationTypeID string) ([]string, error)

	// Disqualify grants the disqualifying qualification to a worker.
	// Granting to a worker who already holds it is a platform-side no-op.
	Disqualify(ctx context.Context, workerID, qualificationTypeID string) error
}
