package archive

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3ArchiverArchive(t *testing.T) {
	fake := &fakeS3{}
	a := &S3Archiver{client: fake, bucket: "imports-bucket", newID: func() string { return "abc" }}

	key, err := a.Archive(context.Background(), "user-1", []byte("name\nJohn\n"))
	require.NoError(t, err)
	assert.Equal(t, "imports/user-1/abc.csv", key)
	assert.Equal(t, "imports-bucket", aws.ToString(fake.in.Bucket))
	assert.Equal(t, key, aws.ToString(fake.in.Key))
	assert.Equal(t, "text/csv", aws.ToString(fake.in.ContentType))
	assert.Equal(t, "name\nJohn\n", string(fake.body))
}

func TestS3ArchiverError(t *testing.T) {
	a := &S3Archiver{client: &fakeS3{err: errors.New("denied")}, bucket: "b", newID: func() string { return "x" }}
	_, err := a.Archive(context.Background(), "u", nil)
	assert.ErrorContains(t, err, "denied")
}

func TestNewS3ArchiverRequiresConfig(t *testing.T) {
	_, err := NewS3Archiver(context.Background(), Config{Bucket: "b"})
	assert.Error(t, err)
}

func TestNopArchiver(t *testing.T) {
	key, err := NopArchiver{}.Archive(context.Background(), "u", []byte("x"))
	assert.NoError(t, err)
	assert.Empty(t, key)
}
