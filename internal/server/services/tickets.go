package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/firflight/firflight/internal/server/config"
)

// ticketURLValidity is how long a presigned ticket link stays usable.
const ticketURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// TicketStore hands out presigned download links for ticket documents
// kept in an S3-compatible bucket.
type TicketStore struct {
	config *sc.Config
}

func NewTicketStore(cfg *sc.Config) *TicketStore {
	return &TicketStore{config: cfg}
}

// TicketKey is the object key of a booking's ticket document.
func TicketKey(bookingID string, created time.Time) string {
	return fmt.Sprintf("tickets/%d/%02d/%s.pdf", created.Year(), created.Month(), bookingID)
}

func (s *TicketStore) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignGet returns a GET URL for key and the time it stops working.
func (s *TicketStore) PresignGet(ctx context.Context, key string) (string, time.Time, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", time.Time{}, err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ticketURLValidity))
	if err != nil {
		return "", time.Time{}, err
	}

	return req.URL, time.Now().Add(ticketURLValidity), nil
}
