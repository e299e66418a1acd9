package utils

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// maxDownloadSize limits the size of a remote source image.
const maxDownloadSize = 64 << 20

var httpClient = &http.Client{Timeout: 30 * time.Second}

// DownloadImage fetches a remote image and returns its content.
// The response is rejected if its content does not look like an image.
func DownloadImage(uri string) (io.Reader, error) {
	res, err := httpClient.Get(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to download image file from URI: %s", uri)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unable to download image file from URI: %s, status %v", uri, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadSize))
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}

	if ctype := DetectContentType(data); !strings.Contains(ctype, "image") {
		return nil, errors.Errorf("the downloaded file is not a valid image type: %s", ctype)
	}
	return bytes.NewReader(data), nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// DetectContentType detects the MIME type of the data.
// Only the first 512 bytes are used to sniff the content type.
func DetectContentType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	return http.DetectContentType(data)
}
