package mturk

import "regexp"

// batchAnnotationPattern matches the batch marker the MTurk web UI stamps
// into a HIT's requester annotation, e.g.
// "BatchId:3954555;OriginalHitTemplateId:928390002;".
var batchAnnotationPattern = regexp.MustCompile(`BatchId:(\d+)`)

// batchIDFromAnnotation extracts the batch ID from a requester annotation.
// The second return value is false when the annotation carries no batch
// marker (HITs published outside the web UI batch flow).
func batchIDFromAnnotation(annotation string) (string, bool) {
	m := batchAnnotationPattern.FindStringSubmatch(annotation)
	if m == nil {
		return "", false
	}
	return m[1], true
}
