package state

import (
	"testing"

	"github.com/kailas-cloud/reviewsearch/internal/domain/search/failure"
	"github.com/kailas-cloud/reviewsearch/internal/domain/search/result"
)

func TestMainRegion(t *testing.T) {
	hit := []result.Result{result.New("Great battery!", 4.5, 42, 0.93)}

	tests := []struct {
		name  string
		state State
		want  Region
	}{
		{"results win", State{Query: "shoes", Results: hit}, RegionResults},
		{"results win while loading", State{Query: "shoes", Results: hit, Loading: true}, RegionResults},
		{"results win with error", State{Query: "shoes", Results: hit, Err: failure.HTTPStatus(500)}, RegionResults},
		{"empty state", State{Query: "shoes", Results: []result.Result{}}, RegionEmpty},
		{"empty state nil results", State{Query: "shoes"}, RegionEmpty},
		{"nothing without query", State{Query: ""}, RegionNone},
		{"nothing while loading", State{Query: "shoes", Loading: true}, RegionNone},
		{"whitespace query counts", State{Query: " "}, RegionEmpty},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.state.MainRegion(); got != tc.want {
				t.Errorf("MainRegion() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestShowError_IndependentOfResults(t *testing.T) {
	s := State{
		Query:   "shoes",
		Results: []result.Result{result.New("ok", 3, 1, 0.5)},
		Err:     failure.Network(nil),
	}
	if !s.ShowError() {
		t.Error("expected error banner")
	}
	if s.MainRegion() != RegionResults {
		t.Error("expected stale results to stay visible")
	}
}

func TestCanSubmit(t *testing.T) {
	if (&State{Query: "  "}).CanSubmit() {
		t.Error("blank query must not be submittable")
	}
	if (&State{Query: "shoes", Loading: true}).CanSubmit() {
		t.Error("submit must be disabled while loading")
	}
	if !(&State{Query: "shoes"}).CanSubmit() {
		t.Error("expected submit enabled")
	}
}

func TestClone(t *testing.T) {
	s := State{Query: "q", Results: []result.Result{result.New("a", 1, 1, 0.1)}}
	c := s.Clone()
	c.Results[0] = result.New("b", 2, 2, 0.2)
	if s.Results[0].Comment() != "a" {
		t.Error("clone must not share the results slice")
	}
}
