package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/yardtools/yardcap/core/metrics"
	"github.com/yardtools/yardcap/core/model"
)

func captureServer(bodies *[]string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		*bodies = append(*bodies, string(data))
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestInfluxSinkRecordTrainResult(t *testing.T) {
	var bodies []string
	srv := captureServer(&bodies)
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	sum := model.TrainSummary{
		TrainID:       "261",
		TotalCar:      11,
		TotalCarHours: 188,
		AvgCarHours:   188.0 / 11.0,
		MinCarHours:   56,
		MinCarHour:    12,
	}
	if err := sink.RecordTrainResult(coremetrics.TrainResult{
		RunID:   "run-1",
		Label:   "alt_1",
		Summary: sum,
		Time:    now,
	}); err != nil {
		t.Fatalf("record error: %v", err)
	}

	p := write.NewPointWithMeasurement("train_summary").
		AddTag("train_id", "261").
		AddTag("alternative", "alt_1").
		AddTag("run_id", "run-1").
		AddField("total_car", 11).
		AddField("total_car_hours", 188.0).
		AddField("avg_car_hours", 17.091).
		AddField("min_car_hours", 56.0).
		AddField("min_car_hour", 12).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	if len(bodies) != 1 || strings.TrimSpace(bodies[0]) != expected {
		t.Errorf("unexpected body: %v", bodies)
	}
}

func TestInfluxSinkSkipAndBatchPoints(t *testing.T) {
	var bodies []string
	srv := captureServer(&bodies)
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	now := time.Now()
	if err := sink.RecordTrainSkip(coremetrics.TrainSkip{
		RunID:   "run-1",
		Label:   "alt_1",
		TrainID: "999",
		Reason:  model.SkipNoBlocks,
		Time:    now,
	}); err != nil {
		t.Fatalf("skip error: %v", err)
	}
	if err := sink.RecordBatch(coremetrics.BatchRecord{
		RunID:    "run-1",
		Label:    "alt_1",
		Stats:    model.BatchStats{Total: 3, Processed: 2, Skipped: 1},
		Duration: 1500 * time.Millisecond,
		Time:     now,
	}); err != nil {
		t.Fatalf("batch error: %v", err)
	}

	if len(bodies) != 2 {
		t.Fatalf("expected 2 writes got %d", len(bodies))
	}
	if !strings.HasPrefix(bodies[0], "train_skipped,") || !strings.Contains(bodies[0], "reason=no_blocks") {
		t.Errorf("unexpected skip point: %s", bodies[0])
	}
	if !strings.HasPrefix(bodies[1], "batch_completed,") || !strings.Contains(bodies[1], "processed=2i") {
		t.Errorf("unexpected batch point: %s", bodies[1])
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	cfg := coremetrics.Config{
		InfluxEnabled: true,
		InfluxURL:     srv.URL + "/api/v2/write",
		InfluxToken:   "tok",
		InfluxOrg:     "org",
		InfluxBucket:  "bucket",
	}
	sink := NewInfluxSinkWithFallback(cfg)
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
