// Package mturk implements the turkgate platform interface against the
// Amazon Mechanical Turk requester API.
//
// The client wraps the AWS SDK for Go v2 MTurk service. Batch membership
// is determined the way the MTurk web UI records it: HITs published
// through a batch carry a "BatchId:<n>" marker in their requester
// annotation. Listing a batch therefore pages through all of the
// account's HITs, keeps the annotated ones, then pages through each HIT's
// Submitted and Approved assignments.
//
// The endpoint URL selects the environment:
//
//	https://mturk-requester.us-east-1.amazonaws.com          (production)
//	https://mturk-requester-sandbox.us-east-1.amazonaws.com  (sandbox)
package mturk
