package gallery

// =====================================================================
// Gallery storage
// Stores processed images in an S3-compatible bucket (Supabase Storage
// exposes one) and serves them through the bucket's public URL.
// =====================================================================

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	objectPrefix = "gallery/"
	thumbPrefix  = "gallery/thumbs/"
)

type StorageOptions struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type Image struct {
	Key        string `json:"key"`
	URL        string `json:"url"`
	ThumbURL   string `json:"thumbUrl"`
	UploadedAt string `json:"uploadedAt"`
}

type Storage struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

func NewStorage(opts StorageOptions) *Storage {
	cfg := aws.Config{
		Region:      opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// Supabase Storage only routes path-style requests.
			o.UsePathStyle = true
		}
	})

	return &Storage{
		client:     client,
		bucket:     opts.Bucket,
		publicBase: strings.TrimSuffix(opts.PublicBaseURL, "/"),
	}
}

// Upload writes the full rendition and its thumbnail under a fresh key
// pair and returns the stored image.
func (s *Storage) Upload(ctx context.Context, full, thumb []byte) (*Image, error) {
	now := time.Now().UTC()
	key := fmt.Sprintf("%s%s-%s.webp", objectPrefix, now.Format("20060102T150405"), uuid.NewString()[:8])

	if err := s.put(ctx, key, full); err != nil {
		return nil, err
	}
	if err := s.put(ctx, thumbKeyFor(key), thumb); err != nil {
		return nil, err
	}

	return &Image{
		Key:        key,
		URL:        s.urlFor(key),
		ThumbURL:   s.urlFor(thumbKeyFor(key)),
		UploadedAt: now.Format(time.RFC3339),
	}, nil
}

func (s *Storage) put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String("image/webp"),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// thumbKeyFor maps a full-rendition key to its thumbnail key, sharing the
// basename so the pair stays associated without a manifest.
func thumbKeyFor(key string) string {
	return thumbPrefix + strings.TrimPrefix(key, objectPrefix)
}

// List returns the stored gallery images, newest first. Keys embed the
// upload timestamp, so a reverse lexicographic sort is enough.
func (s *Storage) List(ctx context.Context) ([]Image, error) {
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(objectPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	images := make([]Image, 0, len(out.Contents))
	for _, obj := range out.Contents {
		if obj.Key == nil || strings.HasPrefix(*obj.Key, thumbPrefix) {
			continue
		}
		img := Image{
			Key:      *obj.Key,
			URL:      s.urlFor(*obj.Key),
			ThumbURL: s.urlFor(thumbKeyFor(*obj.Key)),
		}
		if obj.LastModified != nil {
			img.UploadedAt = obj.LastModified.UTC().Format(time.RFC3339)
		}
		images = append(images, img)
	}

	sort.Slice(images, func(i, j int) bool { return images[i].Key > images[j].Key })
	return images, nil
}

func (s *Storage) urlFor(key string) string {
	return s.publicBase + "/" + key
}
