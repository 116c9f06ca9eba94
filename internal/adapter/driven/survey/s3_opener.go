package survey

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// S3Opener reads survey extracts stored as S3 objects. The AWS config is
// loaded once per opener and shared by every scan.
type S3Opener struct {
	profile string
	region  string

	mu     sync.Mutex
	cfg    aws.Config
	loaded bool
	client *s3.Client
}

// NewS3Opener uses the shared config profile (empty for the default chain)
// and region (empty to keep the profile's).
func NewS3Opener(profile, region string) *S3Opener {
	return &S3Opener{profile: profile, region: region}
}

// Configure implements repository.RemoteSource. The AWS config is reloaded on
// the next call when either value changes.
func (o *S3Opener) Configure(profile, region string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if profile == o.profile && region == o.region {
		return
	}
	o.profile, o.region = profile, region
	o.loaded = false
	o.client = nil
}

func (o *S3Opener) awsConfig(ctx context.Context) (aws.Config, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.loaded {
		return o.cfg, nil
	}

	var opts []func(*config.LoadOptions) error
	if o.profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		opts = append(opts, config.WithRegion(o.region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for profile %q: %w", o.profile, err)
	}

	o.cfg = cfg
	o.client = s3.NewFromConfig(cfg)
	o.loaded = true
	return cfg, nil
}

// ParseS3Location splits s3://bucket/key.
func ParseS3Location(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not an s3 location", types.ErrSourceUnavailable, location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q must be s3://bucket/key", types.ErrSourceUnavailable, location)
	}
	return bucket, key, nil
}

// Open streams the object body. The caller closes it.
func (o *S3Opener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, err
	}
	if _, err := o.awsConfig(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}

	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", types.ErrSourceUnavailable, location, err)
	}
	return out.Body, nil
}

// AccountID returns the AWS account the opener reads as.
func (o *S3Opener) AccountID(ctx context.Context) (string, error) {
	cfg, err := o.awsConfig(ctx)
	if err != nil {
		return "", err
	}
	out, err := sts.NewFromConfig(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	return aws.ToString(out.Account), nil
}
