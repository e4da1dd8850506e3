package s3

import (
	"context"
	"errors"
	"hotel/infras/otel/mocks"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectAPI struct {
	putKey    string
	putBody   []byte
	putType   string
	deleteKey string
	err       error
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.putKey = aws.ToString(in.Key)
	f.putType = aws.ToString(in.ContentType)

	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.putBody = body

	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.deleteKey = aws.ToString(in.Key)

	return &s3.DeleteObjectOutput{}, nil
}

func newTestStorage(api *fakeObjectAPI) *storageImpl {
	return &storageImpl{
		client:       api,
		bucket:       "hotel",
		publicDomain: "https://cdn.example.com/",
		otel:         mocks.NewOtel(),
	}
}

func TestStorage_Upload(t *testing.T) {
	api := &fakeObjectAPI{}
	svc := newTestStorage(api)

	url, err := svc.Upload(context.Background(), "rooms", "1.png", "image/png", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/rooms/1.png", url)
	assert.Equal(t, "rooms/1.png", api.putKey)
	assert.Equal(t, "image/png", api.putType)
	assert.Equal(t, []byte("png"), api.putBody)
}

func TestStorage_UploadError(t *testing.T) {
	svc := newTestStorage(&fakeObjectAPI{err: errors.New("denied")})

	url, err := svc.Upload(context.Background(), "rooms", "1.png", "image/png", []byte("png"))
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestStorage_DeleteByURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantKey string
	}{
		{name: "own object", url: "https://cdn.example.com/rooms/1.png", wantKey: "rooms/1.png"},
		{name: "foreign url is ignored", url: "https://elsewhere.example.com/rooms/1.png"},
		{name: "empty url", url: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeObjectAPI{}
			svc := newTestStorage(api)

			assert.NoError(t, svc.DeleteByURL(context.Background(), tt.url))
			assert.Equal(t, tt.wantKey, api.deleteKey)
		})
	}
}
