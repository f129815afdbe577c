// Copyright (c) 2026 VideoTube. All rights reserved.

/*
Package storage provides object storage for uploaded media.

Videos, thumbnails, avatars and cover images are persisted to an
S3-compatible bucket. Image uploads are re-encoded and bounded in
size before storage; videos are streamed through the multipart
uploader without buffering the whole file in memory.

Core Responsibilities:

  - Upload: Streaming multipart uploads via the AWS upload manager.
  - Normalization: Avatar and cover images resized with imaging.
  - Cleanup: Deleting replaced media objects.

Domain services depend on a narrow MediaStore interface defined at the
consumer side, never on the AWS SDK directly.
*/
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/videotube/videotube/pkg/slug"
)

// Image size bounds. Larger inputs are downscaled, never upscaled.
const (
	maxAvatarEdge = 400
	maxCoverWidth = 1280
)

// S3Store implements media persistence on an S3-compatible bucket.
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	region    string
	publicURL string
}

// NewS3Store creates an S3Store. An optional custom endpoint supports
// MinIO and other S3-compatible providers; publicURL overrides the
// generated AWS URL when the bucket sits behind a CDN.
func NewS3Store(ctx context.Context, region, bucket, endpoint, publicURL string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket must not be empty")
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(options *s3.Options) {
		if endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
			options.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		region:    region,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

// Upload streams an object into the bucket and returns its public URL.
// The key is prefixed with a random UUID so concurrent uploads of files
// with the same name never collide.
func (store *S3Store) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := buildKey(folder, filename)

	_, err := store.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(store.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload of %s failed: %w", key, err)
	}

	return store.objectURL(key), nil
}

// UploadAvatar decodes, square-bounds and re-encodes a profile image
// before storing it. Re-encoding strips metadata and rejects files that
// merely claim to be images.
func (store *S3Store) UploadAvatar(ctx context.Context, filename string, body io.Reader) (string, error) {
	return store.uploadResized(ctx, "avatars", filename, body, maxAvatarEdge, maxAvatarEdge)
}

// UploadCoverImage decodes and width-bounds a channel banner image.
func (store *S3Store) UploadCoverImage(ctx context.Context, filename string, body io.Reader) (string, error) {
	return store.uploadResized(ctx, "covers", filename, body, maxCoverWidth, 0)
}

// UploadThumbnail stores a video thumbnail with width bounding.
func (store *S3Store) UploadThumbnail(ctx context.Context, filename string, body io.Reader) (string, error) {
	return store.uploadResized(ctx, "thumbnails", filename, body, maxCoverWidth, 0)
}

// UploadVideo streams a raw video file without transformation.
func (store *S3Store) UploadVideo(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	return store.Upload(ctx, "videos", filename, contentType, body)
}

// Delete removes an object by its public URL. Unknown URLs are ignored
// so callers can pass through URLs from external providers untouched.
func (store *S3Store) Delete(ctx context.Context, objectURL string) error {
	key := store.keyFromURL(objectURL)
	if key == "" {
		return nil
	}

	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete of %s failed: %w", key, err)
	}

	return nil
}

// uploadResized decodes an image, bounds it to the given box and stores
// the JPEG re-encoding. A zero maxHeight bounds the width only.
func (store *S3Store) uploadResized(ctx context.Context, folder, filename string, body io.Reader, maxWidth, maxHeight int) (string, error) {
	decoded, _, err := image.Decode(body)
	if err != nil {
		return "", fmt.Errorf("storage: invalid image file: %w", err)
	}

	bounds := decoded.Bounds()
	resized := decoded
	switch {
	case maxHeight > 0 && (bounds.Dx() > maxWidth || bounds.Dy() > maxHeight):
		resized = imaging.Fit(decoded, maxWidth, maxHeight, imaging.Lanczos)
	case maxHeight == 0 && bounds.Dx() > maxWidth:
		resized = imaging.Resize(decoded, maxWidth, 0, imaging.Lanczos)
	}

	var buffer bytes.Buffer
	if err := imaging.Encode(&buffer, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("storage: image encoding failed: %w", err)
	}

	jpegName := strings.TrimSuffix(filename, path.Ext(filename)) + ".jpg"
	return store.Upload(ctx, folder, jpegName, "image/jpeg", &buffer)
}

// buildKey namespaces an object under its folder with a UUID prefix.
func buildKey(folder, filename string) string {
	return folder + "/" + uuid.NewString() + "_" + sanitizeFilename(filename)
}

// sanitizeFilename reduces a user-supplied name to a slugged ASCII base
// plus its lowercased extension.
func sanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	extension := path.Ext(base)
	name := slug.From(strings.TrimSuffix(base, extension))
	if name == "" {
		name = "file"
	}
	return name + strings.ToLower(extension)
}

// objectURL builds the public URL for a stored object.
func (store *S3Store) objectURL(key string) string {
	escaped := url.PathEscape(key)
	if store.publicURL != "" {
		return store.publicURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", store.bucket, store.region, escaped)
}

// keyFromURL recovers the object key from a public URL, returning ""
// for URLs that do not belong to this bucket.
func (store *S3Store) keyFromURL(objectURL string) string {
	if objectURL == "" {
		return ""
	}

	var prefix string
	if store.publicURL != "" {
		prefix = store.publicURL + "/"
	} else {
		prefix = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", store.bucket, store.region)
	}

	if !strings.HasPrefix(objectURL, prefix) {
		return ""
	}

	key, err := url.PathUnescape(strings.TrimPrefix(objectURL, prefix))
	if err != nil {
		return ""
	}
	return key
}
