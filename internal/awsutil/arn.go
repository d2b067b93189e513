// Package awsutil provides shared AWS utility functions.
package awsutil

import (
	"errors"
	"strings"
)

const (
	// arnSegments is the number of colon-separated segments in a valid ARN.
	// The resource segment may itself contain colons.
	arnSegments = 6
	// arnRegionIndex is the zero-based index of the region segment in an ARN.
	arnRegionIndex = 3
)

// ErrInvalidARN is returned for strings that are not ARNs.
var ErrInvalidARN = errors.New("invalid ARN")

// ErrNotS3Object is returned for ARNs that do not name an S3 object.
var ErrNotS3Object = errors.New("ARN does not name an S3 object")

// ARN is a parsed Amazon Resource Name.
type ARN struct {
	Partition string
	Service   string
	Region    string
	AccountID string
	Resource  string
}

// ParseARN splits arn:partition:service:region:account:resource.
func ParseARN(arn string) (ARN, error) {
	parts := strings.SplitN(arn, ":", arnSegments)
	if len(parts) < arnSegments || parts[0] != "arn" || parts[2] == "" {
		return ARN{}, ErrInvalidARN
	}
	return ARN{
		Partition: parts[1],
		Service:   parts[2],
		Region:    parts[3],
		AccountID: parts[4],
		Resource:  parts[5],
	}, nil
}

// RegionFromARN extracts the AWS region from an ARN string.
// Returns empty string if the ARN is malformed or the region segment is empty.
func RegionFromARN(arn string) string {
	parts := strings.Split(arn, ":")
	if len(parts) < arnSegments {
		return ""
	}
	return parts[arnRegionIndex]
}

// S3Object returns the bucket and key of an S3 object ARN such as
// arn:aws:s3:::team-bucket/adminui/members.json.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (a ARN) S3Object() (bucket, key string, err error) {
	if a.Service != "s3" {
		return "", "", ErrNotS3Object
	}
	bucket, key, found := strings.Cut(a.Resource, "/")
	if !found || bucket == "" || key == "" {
		return "", "", ErrNotS3Object
	}
	return bucket, key, nil
}
