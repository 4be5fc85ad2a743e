package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes operational metrics to CloudWatch. A nil client turns
// every call into a no-op, which local development relies on.
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a metrics publisher under a namespace.
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// Increment records a count of one for a metric with a single dimension.
func (m *Metrics) Increment(ctx context.Context, metric, dimension, value string) {
	m.put(ctx, metric, dimension, value, 1, types.StandardUnitCount)
}

// Timing records a duration in milliseconds.
func (m *Metrics) Timing(ctx context.Context, metric, dimension, value string, d time.Duration) {
	m.put(ctx, metric, dimension, value, float64(d.Milliseconds()), types.StandardUnitMilliseconds)
}

func (m *Metrics) put(ctx context.Context, metric, dimension, value string, datum float64, unit types.StandardUnit) {
	if m.client == nil {
		return
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(m.namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metric),
				Value:      aws.Float64(datum),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: []types.Dimension{
					{Name: aws.String(dimension), Value: aws.String(value)},
				},
			},
		},
	}

	// Metrics are best-effort; a failed put never fails the request path.
	_, _ = m.client.PutMetricData(ctx, input)
}
