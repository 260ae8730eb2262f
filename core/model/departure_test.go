package model

import (
	"reflect"
	"testing"
)

func TestParseBlockList(t *testing.T) {
	got := ParseBlockList(" CHBR, CHG ,CHLF ")
	want := []string{"CHBR", "CHG", "CHLF"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if got := ParseBlockList(" , ,"); got != nil {
		t.Fatalf("expected nil for blank list, got %v", got)
	}
}

func TestDepartureValidate(t *testing.T) {
	if err := (DepartureRecord{TrainID: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank train id")
	}
	if err := (DepartureRecord{TrainID: "Q101"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
