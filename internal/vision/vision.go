// Package vision estimates the calories in a meal photo.
package vision

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrEstimationUnavailable matches every EstimationError.
var ErrEstimationUnavailable = errors.New("estimation unavailable")

// Image is a meal photo.
type Image struct {
	Data     []byte
	MIMEType string
}

// DataURL encodes the image as a data: URL. MIME type defaults to image/jpeg.
func (img Image) DataURL() string {
	mime := img.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}

// Estimate is the model's reading of a photo.
type Estimate struct {
	Calories int    `json:"calories"`
	Portion  string `json:"portion"`
}

// Estimator turns a photo plus a food label into an Estimate. Any failure is
// returned as *EstimationError.
type Estimator interface {
	Estimate(ctx context.Context, img Image, label string) (Estimate, error)
}

// EstimationError wraps whatever went wrong talking to or parsing the
// estimation service.
type EstimationError struct {
	Reason string
	Err    error
}

func (e *EstimationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("estimation unavailable: %s: %v", e.Reason, e.Err)
	}
	return "estimation unavailable: " + e.Reason
}

func (e *EstimationError) Unwrap() error { return e.Err }

func (e *EstimationError) Is(target error) bool {
	return target == ErrEstimationUnavailable
}

func failed(reason string, err error) *EstimationError {
	return &EstimationError{Reason: reason, Err: err}
}

// stripFences removes ```json / ``` markdown fences models sometimes wrap
// their JSON in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseDataURL is the inverse of DataURL for base64 data URLs.
func ParseDataURL(s string) (Image, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return Image{}, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Image{}, errors.New("data URL has no payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return Image{}, errors.New("data URL is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, fmt.Errorf("decode data URL: %w", err)
	}
	return Image{Data: data, MIMEType: mime}, nil
}
