package mturk

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/mturk"
	"github.com/aws/aws-sdk-go-v2/service/mturk/types"

	"github.com/turkgate/turkgate"
)

// pageSize is the MaxResults used for all paginated listing calls.
const pageSize = 100

const defaultDisqualifyValue = 1

// api is the slice of the MTurk SDK surface the client depends on.
// Tests substitute a fake; the generated paginators accept the same
// per-operation interfaces.
type api interface {
	mturk.ListHITsAPIClient
	mturk.ListAssignmentsForHITAPIClient
	mturk.ListWorkersWithQualificationTypeAPIClient
	AssociateQualificationWithWorker(ctx context.Context, params *mturk.AssociateQualificationWithWorkerInput, optFns ...func(*mturk.Options)) (*mturk.AssociateQualificationWithWorkerOutput, error)
}

// ClientConfig holds the settings needed to reach the MTurk requester API.
type ClientConfig struct {
	// AccessKeyID and SecretAccessKey are the requester account's AWS
	// credentials.
	AccessKeyID     string
	SecretAccessKey string

	// Region is the AWS region of the requester account, e.g. "us-east-1".
	Region string

	// EndpointURL selects the environment (production vs sandbox).
	EndpointURL string

	// DisqualifyValue is the integer value attached to the disqualifying
	// qualification when granted. Defaults to 1.
	DisqualifyValue int
}

// Client implements [turkgate.Platform] against the MTurk requester API.
type Client struct {
	api             api
	disqualifyValue int32
}

var _ turkgate.Platform = (*Client)(nil)

// New creates a [Client] from static credentials.
//
// The endpoint URL overrides the SDK's resolved endpoint, which is how
// the sandbox environment is selected. Credential or region problems
// surface on the first call, not here.
func New(ctx context.Context, cfg ClientConfig) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	svc := mturk.NewFromConfig(awsCfg, func(o *mturk.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})

	value := cfg.DisqualifyValue
	if value == 0 {
		value = defaultDisqualifyValue
	}

	return &Client{
		api:             svc,
		disqualifyValue: int32(value),
	}, nil
}

// ListBatchAssignments returns every Submitted or Approved assignment
// across the batch's HITs.
//
// The batch is resolved by paging through the account's HITs and keeping
// those whose requester annotation carries the matching "BatchId" marker.
func (c *Client) ListBatchAssignments(ctx context.Context, batchID string) ([]turkgate.Assignment, error) {
	hitIDs, err := c.listBatchHITs(ctx, batchID)
	if err != nil {
		return nil, err
	}

	var assignments []turkgate.Assignment
	for _, hitID := range hitIDs {
		p := mturk.NewListAssignmentsForHITPaginator(c.api, &mturk.ListAssignmentsForHITInput{
			HITId: aws.String(hitID),
			AssignmentStatuses: []types.AssignmentStatus{
				types.AssignmentStatusSubmitted,
				types.AssignmentStatusApproved,
			},
			MaxResults: aws.Int32(pageSize),
		})
		for p.HasMorePages() {
			out, err := p.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to list assignments for HIT %q: %w", hitID, err)
			}
			for _, a := range out.Assignments {
				assignments = append(assignments, turkgate.Assignment{
					WorkerID: aws.ToString(a.WorkerId),
					HITID:    aws.ToString(a.HITId),
					Status:   turkgate.AssignmentStatus(a.AssignmentStatus),
				})
			}
		}
	}
	return assignments, nil
}

// listBatchHITs returns the IDs of the account's HITs that belong to the
// batch.
func (c *Client) listBatchHITs(ctx context.Context, batchID string) ([]string, error) {
	var hitIDs []string

	p := mturk.NewListHITsPaginator(c.api, &mturk.ListHITsInput{
		MaxResults: aws.Int32(pageSize),
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list HITs: %w", err)
		}
		for _, hit := range out.HITs {
			id, ok := batchIDFromAnnotation(aws.ToString(hit.RequesterAnnotation))
			if !ok || id != batchID {
				continue
			}
			hitIDs = append(hitIDs, aws.ToString(hit.HITId))
		}
	}
	return hitIDs, nil
}

// ListDisqualified returns the IDs of workers currently granted the
// disqualifying qualification.
func (c *Client) ListDisqualified(ctx context.Context, qualificationTypeID string) ([]string, error) {
	var workerIDs []string

	p := mturk.NewListWorkersWithQualificationTypePaginator(c.api, &mturk.ListWorkersWithQualificationTypeInput{
		QualificationTypeId: aws.String(qualificationTypeID),
		Status:              types.QualificationStatusGranted,
		MaxResults:          aws.Int32(pageSize),
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list workers with qualification: %w", err)
		}
		for _, q := range out.Qualifications {
			workerIDs = append(workerIDs, aws.ToString(q.WorkerId))
		}
	}
	return workerIDs, nil
}

// Disqualify grants the disqualifying qualification to a worker.
//
// The platform's notification email is suppressed explicitly: it defaults
// to on, and telling the worker would reveal the cap. Granting to a worker
// who already holds the qualification is a platform-side no-op.
func (c *Client) Disqualify(ctx context.Context, workerID, qualificationTypeID string) error {
	_, err := c.api.AssociateQualificationWithWorker(ctx, &mturk.AssociateQualificationWithWorkerInput{
		WorkerId:            aws.String(workerID),
		QualificationTypeId: aws.String(qualificationTypeID),
		IntegerValue:        aws.Int32(c.disqualifyValue),
		SendNotification:    aws.Bool(false),
	})
	if err != nil {
		return fmt.Errorf("failed to associate qualification with worker %q: %w", workerID, err)
	}
	return nil
}
