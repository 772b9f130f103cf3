package s3fetch_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplei18n/pkg/i18n"
	"github.com/dmitrymomot/simplei18n/pkg/s3fetch"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *in.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := s3fetch.New(s3fetch.Config{Bucket: "b"})
	require.ErrorIs(t, err, s3fetch.ErrInvalidConfig)

	f, err := s3fetch.New(s3fetch.Config{
		Bucket:    "b",
		AccessKey: "key",
		SecretKey: "secret",
		Endpoint:  "http://localhost:9000",
		PathStyle: true,
	})
	require.NoError(t, err)
	require.NotNil(t, f)

	_, err = s3fetch.NewWithClient(nil, "b", "")
	require.ErrorIs(t, err, s3fetch.ErrInvalidConfig)
}

func TestFetch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("loads documents under the prefix", func(t *testing.T) {
		t.Parallel()
		client := &fakeS3{objects: map[string]string{
			"i18n/en_US.json":  `{"language": "en_US", "translations": {"form": {"placeholder": "Name"}}}`,
			"i18n/zh_Hans.yml": "language: zh_Hans\n",
		}}
		f, err := s3fetch.NewWithClient(client, "assets", "/i18n/")
		require.NoError(t, err)

		doc, err := f.Fetch(ctx, "en_US.json")
		require.NoError(t, err)
		require.Equal(t, "Name", i18n.Translate(doc, "form.placeholder", false, nil))

		doc, err = f.Fetch(ctx, "zh_Hans.yml")
		require.NoError(t, err)
		require.Equal(t, "zh_Hans", doc.Language())

		require.Equal(t, []string{"i18n/en_US.json", "i18n/zh_Hans.yml"}, client.keys)
	})

	t.Run("maps missing objects", func(t *testing.T) {
		t.Parallel()
		f, err := s3fetch.NewWithClient(&fakeS3{}, "assets", "")
		require.NoError(t, err)

		_, err = f.Fetch(ctx, "fr_FR.json")
		require.ErrorIs(t, err, s3fetch.ErrNotFound)
		require.ErrorIs(t, err, i18n.ErrFetchFailed)
	})

	t.Run("maps access denied", func(t *testing.T) {
		t.Parallel()
		client := &fakeS3{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}}
		f, err := s3fetch.NewWithClient(client, "assets", "")
		require.NoError(t, err)

		_, err = f.Fetch(ctx, "en_US.json")
		require.ErrorIs(t, err, s3fetch.ErrAccessDenied)
	})

	t.Run("wraps other failures", func(t *testing.T) {
		t.Parallel()
		client := &fakeS3{err: errors.New("timeout")}
		f, err := s3fetch.NewWithClient(client, "assets", "")
		require.NoError(t, err)

		_, err = f.Fetch(ctx, "en_US.json")
		require.ErrorIs(t, err, i18n.ErrFetchFailed)
		require.NotErrorIs(t, err, s3fetch.ErrNotFound)
	})

	t.Run("reports malformed documents", func(t *testing.T) {
		t.Parallel()
		client := &fakeS3{objects: map[string]string{"bad.json": `[1, 2]`}}
		f, err := s3fetch.NewWithClient(client, "assets", "")
		require.NoError(t, err)

		_, err = f.Fetch(ctx, "bad.json")
		require.ErrorIs(t, err, i18n.ErrNotAnObject)
	})
}
