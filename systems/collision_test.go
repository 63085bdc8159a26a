package systems

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

// stubAgent is a fixed-position agent for collision tests.
type stubAgent struct {
	loc, vel r2.Vec
	size     float64
}

func (s *stubAgent) ApplyBehaviours(bool, []Agent, []Threat) {}
func (s *stubAgent) Update()                                 {}
func (s *stubAgent) Location() r2.Vec                        { return s.loc }
func (s *stubAgent) Velocity() r2.Vec                        { return s.vel }
func (s *stubAgent) Size() float64                           { return s.size }

func at(x, y, size float64) Agent {
	return &stubAgent{loc: r2.Vec{X: x, Y: y}, size: size}
}

func TestPreyCaught(t *testing.T) {
	tests := []struct {
		name    string
		prey    []Agent
		threats []Agent
		want    []int
	}{
		{"no threats", []Agent{at(0, 0, 10)}, nil, nil},
		{"overlap", []Agent{at(0, 0, 10)}, []Agent{at(5, 0, 20)}, []int{0}},
		// (10+20)/2 = 15; exactly 15 apart is not a catch
		{"touching is safe", []Agent{at(0, 0, 10)}, []Agent{at(15, 0, 20)}, nil},
		{"just inside", []Agent{at(0, 0, 10)}, []Agent{at(14.9, 0, 20)}, []int{0}},
		{
			"two threats on one prey counts once",
			[]Agent{at(0, 0, 10)},
			[]Agent{at(1, 0, 20), at(-1, 0, 20)},
			[]int{0},
		},
		{
			"several prey",
			[]Agent{at(0, 0, 10), at(100, 0, 10), at(200, 0, 10)},
			[]Agent{at(2, 0, 20), at(198, 0, 20)},
			[]int{0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PreyCaught(tt.prey, tt.threats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PreyCaught() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFoodCollected(t *testing.T) {
	items := []r2.Vec{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 500, Y: 500}}

	tests := []struct {
		name string
		prey []Agent
		want []Collection
	}{
		{"nobody near", []Agent{at(300, 300, 10)}, nil},
		// pickup distance is size + margin = 20
		{"boundary excluded", []Agent{at(20, 0, 10)}, nil},
		{"inside", []Agent{at(19, 0, 10)}, []Collection{{Item: 0, Prey: 0}}},
		{
			"first prey in insertion order wins",
			[]Agent{at(300, 300, 10), at(5, 0, 10), at(1, 0, 10)},
			[]Collection{{Item: 0, Prey: 1}},
		},
		{
			"one prey may reach two items",
			[]Agent{at(50, 0, 45)},
			[]Collection{{Item: 0, Prey: 0}, {Item: 1, Prey: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FoodCollected(items, tt.prey, 10)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FoodCollected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestThreatsFrom(t *testing.T) {
	threats := []Agent{
		&stubAgent{loc: r2.Vec{X: 1, Y: 2}, vel: r2.Vec{X: 3, Y: 4}, size: 25},
		&stubAgent{loc: r2.Vec{X: 9, Y: 9}, size: 10},
	}

	got := ThreatsFrom(threats, 4)
	if len(got) != len(threats) {
		t.Fatalf("len = %d, want %d", len(got), len(threats))
	}
	want := Threat{Location: r2.Vec{X: 1, Y: 2}, Velocity: r2.Vec{X: 3, Y: 4}, Radius: 100}
	if got[0] != want {
		t.Errorf("threat[0] = %+v, want %+v", got[0], want)
	}
	if got[1].Radius != 40 {
		t.Errorf("threat[1] radius = %v, want 40", got[1].Radius)
	}

	if empty := ThreatsFrom(nil, 4); len(empty) != 0 {
		t.Errorf("empty input gave %d threats", len(empty))
	}
}
