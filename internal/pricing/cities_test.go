package pricing

import (
	"reflect"
	"testing"
)

func TestOrderCitiesPinsPrimariesFirst(t *testing.T) {
	// Primaries buried mid-list in rate-table order.
	in := []string{"Шымкент", "Караганда", "Алматы", "Павлодар", "Астана", "Актобе"}

	got := OrderCities(in)
	want := []string{"Астана", "Алматы", "Актобе", "Караганда", "Павлодар", "Шымкент"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ordered = %v, want %v", got, want)
	}
}

func TestOrderCitiesDropsDuplicatesAndEmpties(t *testing.T) {
	in := []string{"Шымкент", "Шымкент", "", "Астана", "Алматы"}

	got := OrderCities(in)
	want := []string{"Астана", "Алматы", "Шымкент"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ordered = %v, want %v", got, want)
	}
}

func TestOrderCitiesStable(t *testing.T) {
	in := []string{"Караганда", "Актобе", "Павлодар"}

	first := OrderCities(in)
	for i := 0; i < 3; i++ {
		if again := OrderCities(in); !reflect.DeepEqual(again, first) {
			t.Fatalf("ordering changed between calls: %v vs %v", again, first)
		}
	}
}
