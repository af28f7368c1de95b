package turkgate

import "sort"

// TallyCompleted counts completed assignments per worker.
//
// Only assignments with status [AssignmentSubmitted] or [AssignmentApproved]
// are counted; all other statuses are excluded. TallyCompleted is a pure
// function: the same input always produces the same tally, and order of the
// input slice is irrelevant.
func TallyCompleted(assignments []Assignment) map[string]int {
	tally := make(map[string]int)
	for _, a := range assignments {
		if a.Status != AssignmentSubmitted && a.Status != AssignmentApproved {
			continue
		}
		tally[a.WorkerID]++
	}
	return tally
}

// OverLimit returns the workers whose tally strictly exceeds max.
//
// Workers present in exclude (typically those already holding the
// disqualifying qualification) are omitted even when over the limit.
// A worker with a tally exactly equal to max is not over the limit.
// The result is sorted for deterministic iteration and logging.
func OverLimit(tally map[string]int, max int, exclude map[string]bool) []string {
	var workers []string
	for workerID, count := range tally {
		if count <= max {
			continue
		}
		if exclude[workerID] {
			continue
		}
		workers = append(workers, workerID)
	}
	sort.Strings(workers)
	return workers
}
