package awsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionFromARN(t *testing.T) {
	tests := []struct {
		name       string
		arn        string
		wantRegion string
	}{
		{name: "regional bucket", arn: "arn:aws:s3:eu-west-1:123456789012:bucket/my-bucket", wantRegion: "eu-west-1"},
		{name: "global s3 object", arn: "arn:aws:s3:::team-bucket/members.json", wantRegion: ""},
		{name: "too few segments", arn: "arn:aws:s3", wantRegion: ""},
		{name: "empty string", arn: "", wantRegion: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantRegion, RegionFromARN(tt.arn))
		})
	}
}

func TestParseARN(t *testing.T) {
	a, err := ParseARN("arn:aws-cn:s3:::team-bucket/exports/members:2024.json")
	require.NoError(t, err)
	assert.Equal(t, ARN{
		Partition: "aws-cn",
		Service:   "s3",
		Resource:  "team-bucket/exports/members:2024.json",
	}, a)

	for _, bad := range []string{"", "not-an-arn", "arn:aws", "urn:aws:s3:::b/k", "arn:aws::::b/k"} {
		_, err = ParseARN(bad)
		assert.ErrorIs(t, err, ErrInvalidARN, bad)
	}
}

func TestARN_S3Object(t *testing.T) {
	tests := []struct {
		arn        string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{arn: "arn:aws:s3:::team-bucket/members.json", wantBucket: "team-bucket", wantKey: "members.json"},
		{arn: "arn:aws:s3:::team-bucket/a/b/members.json", wantBucket: "team-bucket", wantKey: "a/b/members.json"},
		{arn: "arn:aws:s3:::team-bucket", wantErr: true},
		{arn: "arn:aws:s3:::team-bucket/", wantErr: true},
		{arn: "arn:aws:iam::123456789012:user/admin", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arn, func(t *testing.T) {
			a, err := ParseARN(tt.arn)
			require.NoError(t, err)
			bucket, key, err := a.S3Object()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotS3Object)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
