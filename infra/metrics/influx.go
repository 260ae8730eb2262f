package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/yardtools/yardcap/core/metrics"
	"github.com/yardtools/yardcap/infra/logger"
)

// InfluxSink writes batch outcomes to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails, so a missing database
// never blocks a batch run.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.RunSink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordTrainResult writes one train summary point.
func (s *InfluxSink) RecordTrainResult(r coremetrics.TrainResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("train_summary").
		AddTag("train_id", r.Summary.TrainID).
		AddTag("alternative", r.Label).
		AddTag("run_id", r.RunID).
		AddField("total_car", r.Summary.TotalCar).
		AddField("total_car_hours", round3(r.Summary.TotalCarHours)).
		AddField("avg_car_hours", round3(r.Summary.AvgCarHours)).
		AddField("min_car_hours", round3(r.Summary.MinCarHours)).
		AddField("min_car_hour", r.Summary.MinCarHour).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTrainSkip writes one skip point tagged with its reason.
func (s *InfluxSink) RecordTrainSkip(sk coremetrics.TrainSkip) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("train_skipped").
		AddTag("train_id", sk.TrainID).
		AddTag("alternative", sk.Label).
		AddTag("run_id", sk.RunID).
		AddTag("reason", sk.Reason.String()).
		AddField("count", 1).
		SetTime(sk.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordBatch writes the end-of-run statistics point.
func (s *InfluxSink) RecordBatch(rec coremetrics.BatchRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("batch_completed").
		AddTag("alternative", rec.Label).
		AddTag("run_id", rec.RunID).
		AddField("total", rec.Stats.Total).
		AddField("processed", rec.Stats.Processed).
		AddField("skipped", rec.Stats.Skipped).
		AddField("duration_ms", round3(rec.Duration.Seconds()*1000)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
