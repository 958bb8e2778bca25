package httpclient

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/reelforge/reelforge/pkg/httpclient/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	type args struct {
		opts []ClientOption
	}
	tests := []struct {
		name string
		args args
		want *RateLimitedClient
	}{
		{
			name: "default",
			args: args{
				opts: []ClientOption{},
			},
			want: &RateLimitedClient{
				client:      http.DefaultClient,
				maxRetries:  DefaultMaxRetries,
				baseBackoff: DefaultBaseBackoff,
				timeout:     DefaultTimeout,
			},
		},
		{
			name: "custom",
			args: args{
				opts: []ClientOption{
					WithMaxRetries(5),
					WithBaseBackoff(time.Millisecond * 100),
					WithTimeout(time.Second * 30),
					WithHTTPClient(&http.Client{
						Transport: &http.Transport{
							MaxIdleConns: 10,
						},
					}),
				},
			},
			want: &RateLimitedClient{
				client: &http.Client{
					Transport: &http.Transport{
						MaxIdleConns: 10,
					},
				},
				maxRetries:  5,
				baseBackoff: time.Millisecond * 100,
				timeout:     time.Second * 30,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.args.opts...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("New() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRateLimitedClient_Do(t *testing.T) {
	t.Run("error during request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		if err != nil {
			t.Fatalf("failed to create request: %v", err)
			return
		}

		mhttp.EXPECT().Do(gomock.Any()).Return(nil, errors.New("http error"))
		client := New(WithHTTPClient(mhttp))
		resp, err := client.Do(req)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("non 429 response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		if err != nil {
			t.Errorf("failed to create request: %v", err)
			return
		}

		mhttp.EXPECT().Do(gomock.Any()).Return(&http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBuffer([]byte("non 429 response"))),
		}, nil)

		client := New(WithHTTPClient(mhttp))
		resp, err := client.Do(req)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Errorf("failed to read response body: %v", err)
			return
		}
		assert.Equal(t, "non 429 response", string(b))
	})

	t.Run("429 response - max retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		if err != nil {
			t.Errorf("failed to create request: %v", err)
			return
		}

		mhttp.EXPECT().Do(gomock.Any()).Return(&http.Response{
			StatusCode: http.StatusTooManyRequests,
			Header:     http.Header{},
			Body:       io.NopCloser(bytes.NewBuffer([]byte("429 response"))),
		}, nil).AnyTimes()
		client := New(WithHTTPClient(mhttp), WithMaxRetries(1), WithBaseBackoff(time.Millisecond))
		resp, err := client.Do(req)
		assert.Error(t, err)
		assert.NotNil(t, resp)
	})

	t.Run("429 response - with retry header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		if err != nil {
			t.Errorf("failed to create request: %v", err)
			return
		}

		mhttp.EXPECT().Do(gomock.Any()).Return(&http.Response{
			StatusCode: http.StatusTooManyRequests,
			Header: http.Header{
				"Retry-After": []string{"0"},
			},
			Body: io.NopCloser(bytes.NewBuffer([]byte("429 response"))),
		}, nil).AnyTimes()
		client := New(WithHTTPClient(mhttp), WithMaxRetries(1))
		resp, err := client.Do(req)
		assert.ErrorContains(t, err, "rate limit exceeded after 1 retries")
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("request context timeout is bounded by client timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		if err != nil {
			t.Errorf("failed to create request: %v", err)
			return
		}

		mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(r *http.Request) (*http.Response, error) {
			deadline, ok := r.Context().Deadline()
			assert.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(5*time.Millisecond), deadline, 50*time.Millisecond)
			return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewBuffer(nil))}, nil
		})

		client := New(WithHTTPClient(mhttp), WithTimeout(5*time.Millisecond))
		_, err = client.Do(req)
		assert.NoError(t, err)
	})
}
