package blobstore

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
)

// HTTPStore talks to a blob service over its REST API. The service exposes a
// flat key space: GET ?prefix= to list, PUT /key to upload, DELETE /key to
// remove; each listed object carries a direct download URL.
type HTTPStore struct {
	endpoint string
	token    string
	timeout  time.Duration
}

type listResponse struct {
	Blobs []listedBlob `json:"blobs"`
}

type listedBlob struct {
	Pathname   string `json:"pathname"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploadedAt"`
}

func NewHTTPStore(endpoint, token string, timeout time.Duration) *HTTPStore {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPStore{
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    token,
		timeout:  timeout,
	}
}

func (s *HTTPStore) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var resp listResponse
	var code int
	err := gout.GET(s.endpoint).
		WithContext(ctx).
		SetTimeout(s.timeout).
		SetHeader(gout.H{"authorization": "Bearer " + s.token}).
		SetQuery(gout.H{"prefix": prefix}).
		Code(&code).
		BindJSON(&resp).
		Do()
	if err != nil {
		return nil, errors.Wrap(ErrStoreUnavailable, err.Error())
	}
	if code != http.StatusOK {
		return nil, errors.Wrapf(ErrStoreUnavailable, "list %s: status %d", prefix, code)
	}

	out := make([]ObjectInfo, 0, len(resp.Blobs))
	for _, b := range resp.Blobs {
		uploadedAt, err := dateparse.ParseAny(b.UploadedAt)
		if err != nil {
			uploadedAt = time.Time{}
		}
		out = append(out, ObjectInfo{
			Key:        b.Pathname,
			URL:        b.URL,
			Size:       b.Size,
			UploadedAt: uploadedAt,
		})
	}
	return out, nil
}

func (s *HTTPStore) Read(ctx context.Context, obj ObjectInfo) ([]byte, error) {
	var payload []byte
	var code int
	err := gout.GET(obj.URL).
		WithContext(ctx).
		SetTimeout(s.timeout).
		SetHeader(gout.H{"cache-control": "no-cache", "pragma": "no-cache"}).
		Code(&code).
		BindBody(&payload).
		Do()
	if err != nil {
		return nil, errors.Wrap(ErrStoreUnavailable, err.Error())
	}
	switch {
	case code == http.StatusNotFound:
		return nil, errors.Wrapf(ErrNotFound, "read %s", obj.Key)
	case code != http.StatusOK:
		return nil, errors.Wrapf(ErrStoreUnavailable, "read %s: status %d", obj.Key, code)
	}
	return payload, nil
}

func (s *HTTPStore) Write(ctx context.Context, key string, payload []byte) (ObjectInfo, error) {
	var resp listedBlob
	var code int
	err := gout.PUT(s.endpoint+"/"+key).
		WithContext(ctx).
		SetTimeout(s.timeout).
		SetHeader(gout.H{
			"authorization": "Bearer " + s.token,
			"content-type":  "application/json",
		}).
		SetBody(payload).
		Code(&code).
		BindJSON(&resp).
		Do()
	if err != nil {
		return ObjectInfo{}, errors.Wrap(ErrStoreUnavailable, err.Error())
	}
	if code != http.StatusOK && code != http.StatusCreated {
		return ObjectInfo{}, errors.Wrapf(ErrStoreUnavailable, "write %s: status %d", key, code)
	}

	info := ObjectInfo{Key: key, URL: resp.URL, Size: int64(len(payload)), UploadedAt: time.Now()}
	if resp.Pathname != "" {
		info.Key = resp.Pathname
	}
	return info, nil
}

func (s *HTTPStore) Delete(ctx context.Context, key string) error {
	var code int
	err := gout.DELETE(s.endpoint+"/"+key).
		WithContext(ctx).
		SetTimeout(s.timeout).
		SetHeader(gout.H{"authorization": "Bearer " + s.token}).
		Code(&code).
		Do()
	if err != nil {
		return errors.Wrap(ErrStoreUnavailable, err.Error())
	}
	// deleting a missing key is not an error
	if code != http.StatusOK && code != http.StatusNoContent && code != http.StatusNotFound {
		return errors.Wrapf(ErrStoreUnavailable, "delete %s: status %d", key, code)
	}
	return nil
}
