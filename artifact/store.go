// Package artifact persists finished SBOM documents into an object
// store as retrievable, time-limited artifacts. Retention is enforced
// with a bucket lifecycle rule, and retrieval happens through
// presigned links bounded by that same retention.
package artifact

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"github.com/torqsecure/sbomgen/common"
	"github.com/torqsecure/sbomgen/settings"
)

type Receipt struct {
	Bucket  string    `json:"bucket"`
	Key     string    `json:"key"`
	Size    int64     `json:"size"`
	Expires time.Time `json:"expires"`
}

type Store interface {
	Publish(ctx context.Context, name string, payload []byte, contentType string) (*Receipt, error)
	Link(ctx context.Context, name string) (string, error)
}

// ObjectName is the content-addressed-by-name key for one SBOM.
func ObjectName(id string) string {
	return fmt.Sprintf("sbom-%s.json", id)
}

type minioStore struct {
	client    *minio.Client
	bucket    string
	region    string
	retention int
	level     int
}

// NewStore builds the object store client from current settings.
// Credentials come from the environment only, never from the settings
// file.
func NewStore() (Store, error) {
	client, err := minio.New(settings.Global.ArtifactEndpoint(), &minio.Options{
		Creds:     credentials.NewStaticV4(settings.Global.ArtifactAccessKey(), settings.Global.ArtifactSecretKey(), ""),
		Secure:    settings.Global.ArtifactUseSSL(),
		Region:    settings.Global.ArtifactRegion(),
		Transport: settings.Global.ConfiguredHttpTransport(),
	})
	if err != nil {
		return nil, err
	}
	return &minioStore{
		client:    client,
		bucket:    settings.Global.ArtifactBucket(),
		region:    settings.Global.ArtifactRegion(),
		retention: settings.Global.RetentionDays(),
		level:     settings.Global.CompressionLevel(),
	}, nil
}

func (it *minioStore) ensureBucket(ctx context.Context) error {
	exists, err := it.client.BucketExists(ctx, it.bucket)
	if err != nil {
		return err
	}
	if !exists {
		err = it.client.MakeBucket(ctx, it.bucket, minio.MakeBucketOptions{Region: it.region})
		if err != nil {
			return err
		}
	}
	config := lifecycle.NewConfiguration()
	config.Rules = []lifecycle.Rule{
		{
			ID:     "sbom-retention",
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(it.retention),
			},
		},
	}
	return it.client.SetBucketLifecycle(ctx, it.bucket, config)
}

// Publish uploads the payload gzip-compressed at the configured effort
// level. The artifact expires through the bucket lifecycle rule after
// the retention period.
func (it *minioStore) Publish(ctx context.Context, name string, payload []byte, contentType string) (*Receipt, error) {
	err := it.ensureBucket(ctx)
	if err != nil {
		return nil, fmt.Errorf("artifact bucket %q: %w", it.bucket, err)
	}

	compressed, err := Compress(payload, it.level)
	if err != nil {
		return nil, err
	}

	common.Timeline("publishing %s (%d -> %d bytes)", name, len(payload), len(compressed))
	_, err = it.client.PutObject(ctx, it.bucket, name,
		bytes.NewReader(compressed), int64(len(compressed)),
		minio.PutObjectOptions{
			ContentType:     contentType,
			ContentEncoding: "gzip",
		})
	if err != nil {
		return nil, fmt.Errorf("artifact upload %q: %w", name, err)
	}
	return &Receipt{
		Bucket:  it.bucket,
		Key:     name,
		Size:    int64(len(compressed)),
		Expires: time.Now().UTC().AddDate(0, 0, it.retention),
	}, nil
}

// Link gives a presigned retrieval URL, valid at most as long as the
// artifact itself is retained (and never past the presigning limit).
func (it *minioStore) Link(ctx context.Context, name string) (string, error) {
	validity := time.Duration(it.retention) * 24 * time.Hour
	if limit := 7 * 24 * time.Hour; validity > limit {
		validity = limit
	}
	link, err := it.client.PresignedGetObject(ctx, it.bucket, name, validity, nil)
	if err != nil {
		return "", err
	}
	return link.String(), nil
}

// Compress squeezes a payload with gzip at given effort level.
func Compress(payload []byte, level int) ([]byte, error) {
	buffer := bytes.Buffer{}
	writer, err := gzip.NewWriterLevel(&buffer, level)
	if err != nil {
		return nil, err
	}
	_, err = writer.Write(payload)
	if err != nil {
		return nil, err
	}
	err = writer.Close()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
