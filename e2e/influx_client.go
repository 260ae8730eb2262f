package e2e

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/domain"
)

// InfluxClient is a small helper around the official InfluxDB v2 client
// used by the E2E tests. It hides token/org/bucket plumbing and exposes
// the query side the assertions need.
type InfluxClient struct {
	url    string
	org    string
	bucket string
	token  string
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient creates a new client for the given parameters. It
// assumes the server is already running and reachable.
func NewInfluxClient(url, org, bucket, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{
		url:    url,
		org:    org,
		bucket: bucket,
		token:  token,
		client: c,
		query:  c.QueryAPI(org),
	}
}

// Setup runs the initial onboarding of a fresh InfluxDB instance,
// creating the user, organisation and bucket the sink will write to.
func (c *InfluxClient) Setup(ctx context.Context) error {
	retention := 0
	_, err := c.client.SetupWithToken(ctx, "e2e", "e2e-password", c.org, c.bucket, retention, c.token)
	if err != nil {
		return fmt.Errorf("influx setup: %w", err)
	}
	return nil
}

// CountSeries counts the rows of the given measurement written in the
// last hour.
func (c *InfluxClient) CountSeries(ctx context.Context, measurement string) (int, error) {
	flux := fmt.Sprintf(`from(bucket: %q)
  |> range(start: -1h)
  |> filter(fn: (r) => r._measurement == %q)
  |> group()
  |> distinct(column: "_time")
  |> count()`, c.bucket, measurement)
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	count := 0
	for res.Next() {
		if v, ok := res.Record().Value().(int64); ok {
			count = int(v)
		}
	}
	return count, res.Err()
}

// FieldValue fetches the last value of one field of a measurement.
func (c *InfluxClient) FieldValue(ctx context.Context, measurement, field string) (float64, error) {
	flux := fmt.Sprintf(`from(bucket: %q)
  |> range(start: -1h)
  |> filter(fn: (r) => r._measurement == %q and r._field == %q)
  |> last()`, c.bucket, measurement, field)
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	var out float64
	for res.Next() {
		switch v := res.Record().Value().(type) {
		case float64:
			out = v
		case int64:
			out = float64(v)
		}
	}
	return out, res.Err()
}

// Close releases the underlying client.
func (c *InfluxClient) Close() { c.client.Close() }

// Health reports whether the instance answers its health endpoint.
func (c *InfluxClient) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	h, err := c.client.Health(ctx)
	if err != nil {
		return err
	}
	if h.Status != domain.HealthCheckStatusPass {
		return fmt.Errorf("influx health: %s", h.Status)
	}
	return nil
}
