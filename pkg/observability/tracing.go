package observability

import (
	"context"
	"fmt"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// Tracer names X-Ray segments for this service. X-Ray itself carries the
// trace context; the tracer adds the service prefix and the error plumbing
// so call sites stay one line.
type Tracer struct {
	service string
}

// NewTracer creates a tracer whose root segments are prefixed with the
// service name.
func NewTracer(service string) *Tracer {
	return &Tracer{service: service}
}

// StartSegment opens a root segment, for entry points outside the Lambda
// runtime's own segment.
func (t *Tracer) StartSegment(ctx context.Context, name string) (context.Context, *xray.Segment) {
	return xray.BeginSegment(ctx, fmt.Sprintf("%s.%s", t.service, name))
}

// TraceFunction runs fn inside a subsegment. An error returned by fn is
// recorded on the segment and passed through unchanged.
func (t *Tracer) TraceFunction(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, seg := xray.BeginSubsegment(ctx, name)
	defer seg.Close(nil)

	err := fn(ctx)
	if err != nil {
		seg.AddError(err)
	}
	return err
}

// Annotate attaches an indexed key/value to the current segment, a no-op
// when no segment is open (local runs without the X-Ray daemon).
func (t *Tracer) Annotate(ctx context.Context, key, value string) {
	if seg := xray.GetSegment(ctx); seg != nil {
		seg.AddAnnotation(key, value)
	}
}

// RecordError marks the current segment as failed without closing it.
func (t *Tracer) RecordError(ctx context.Context, err error) {
	if seg := xray.GetSegment(ctx); seg != nil {
		seg.AddError(err)
	}
}
