// Package ports declares the platform capabilities the core consumes but does
// not implement: image capture, geolocation and notification scheduling.
// Concrete implementations live with the UI layer; the core only ever sees
// their results (a URI string, an optional location).
package ports

import (
	"context"
	"time"

	"github.com/petpalapp/petpal/internal/model"
)

// ImageOptions configures a capture-or-pick request.
type ImageOptions struct {
	AllowEditing bool
	Quality      float64 // 0..1, encoder hint
}

// ImageResult is the outcome of a capture-or-pick request.
type ImageResult struct {
	URI      string
	Canceled bool
}

// ImagePicker captures a new photo or picks one from the device library.
type ImagePicker interface {
	CaptureOrPick(ctx context.Context, opts ImageOptions) (ImageResult, error)
}

// Geolocator resolves the device's current place. Failure yields a nil
// location and must not block photo capture.
type Geolocator interface {
	CurrentPlace(ctx context.Context) (*model.GeoPoint, error)
}

// NotificationScheduler schedules and cancels local reminders keyed by a
// locally-generated id. Delivery is not guaranteed and the core never
// depends on it.
type NotificationScheduler interface {
	Schedule(ctx context.Context, id string, at time.Time, title, body string) error
	Cancel(ctx context.Context, id string) error
}

// NoopScheduler discards every scheduling request.
type NoopScheduler struct{}

var _ NotificationScheduler = NoopScheduler{}

func (NoopScheduler) Schedule(context.Context, string, time.Time, string, string) error { return nil }
func (NoopScheduler) Cancel(context.Context, string) error                              { return nil }
