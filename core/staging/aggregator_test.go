package staging

import (
	"testing"

	"github.com/yardtools/yardcap/core/model"
)

func stagingRow(slot string, blocks map[string]string, spares ...string) model.YardPlanRow {
	return model.YardPlanRow{TimeText: slot, Blocks: blocks, Spares: spares}
}

func TestAggregateArrivalsExcludesPullHour(t *testing.T) {
	targets := NewBlockSet([]string{"CHBR"})
	rows := []model.YardPlanRow{
		stagingRow("4:00", map[string]string{"CHBR": "3"}),
		stagingRow("5:00", map[string]string{"CHBR": "7"}),
		stagingRow("6:00", map[string]string{"CHBR": "2"}),
	}
	series, counted := AggregateArrivals(rows, targets, 5)
	if counted != 2 {
		t.Fatalf("expected 2 contributing rows got %d", counted)
	}
	if series[4] != 3 || series[6] != 2 {
		t.Fatalf("unexpected series: %v", series)
	}
	if series[5] != 0 {
		t.Fatalf("pull hour must contribute nothing, got %d", series[5])
	}
	if series.Total() != 5 {
		t.Fatalf("expected total 5 got %d", series.Total())
	}
}

func TestAggregateArrivalsSkipsUnusableRows(t *testing.T) {
	targets := NewBlockSet([]string{"CHG"})
	rows := []model.YardPlanRow{
		stagingRow("no time", map[string]string{"CHG": "9"}),
		stagingRow("1:00", map[string]string{"CHG": "4"}),
	}
	series, counted := AggregateArrivals(rows, targets, 23)
	if counted != 1 || series[1] != 4 || series.Total() != 4 {
		t.Fatalf("unexpected aggregation: counted=%d series=%v", counted, series)
	}
}

func TestAggregateArrivalsSameHourAccumulates(t *testing.T) {
	targets := NewBlockSet([]string{"CHBR"})
	rows := []model.YardPlanRow{
		stagingRow("4:00", map[string]string{"CHBR": "3"}),
		stagingRow("4:30", map[string]string{"CHBR": "2"}),
	}
	series, counted := AggregateArrivals(rows, targets, 10)
	if counted != 2 || series[4] != 5 {
		t.Fatalf("expected both rows in hour 4, got counted=%d series[4]=%d", counted, series[4])
	}
}

func TestAggregateArrivalsResolvesSpares(t *testing.T) {
	targets := NewBlockSet([]string{"CHBR", "CHG"})
	rows := []model.YardPlanRow{
		stagingRow("2:00", map[string]string{"CHBR": "1"}, "2 CHG 1 OAK"),
	}
	series, _ := AggregateArrivals(rows, targets, 9)
	if series[2] != 3 {
		t.Fatalf("expected 3 cars at hour 2 got %d", series[2])
	}
}

func TestAggregateArrivalsNoUsableRows(t *testing.T) {
	rows := []model.YardPlanRow{stagingRow("x", nil)}
	_, counted := AggregateArrivals(rows, NewBlockSet([]string{"CHBR"}), 0)
	if counted != 0 {
		t.Fatalf("expected no contributing rows got %d", counted)
	}
}
