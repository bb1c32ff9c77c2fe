package track

import "testing"

func TestParamsForIndex(t *testing.T) {
	tests := []struct {
		index                int
		count                int
		base, jitter, height float64
		seed                 string
	}{
		{1, 12, 270, 66, 154, "level-1-v1"},
		{2, 14, 260, 72, 158, "level-2-v1"},
		{14, 38, 140, 144, 206, "level-14-v1"},
		{20, 50, 140, 160, 230, "level-20-v1"},
		{40, 80, 140, 160, 310, "level-40-v1"},
	}

	for _, tc := range tests {
		t.Run(tc.seed, func(t *testing.T) {
			p := ParamsForIndex(tc.index)
			if p.ObstacleCount != tc.count {
				t.Errorf("ObstacleCount = %d, expected %d", p.ObstacleCount, tc.count)
			}
			if p.SpacingBase != tc.base {
				t.Errorf("SpacingBase = %v, expected %v", p.SpacingBase, tc.base)
			}
			if p.SpacingJitter != tc.jitter {
				t.Errorf("SpacingJitter = %v, expected %v", p.SpacingJitter, tc.jitter)
			}
			if p.BaseHeight != tc.height {
				t.Errorf("BaseHeight = %v, expected %v", p.BaseHeight, tc.height)
			}
			if p.Seed != tc.seed {
				t.Errorf("Seed = %q, expected %q", p.Seed, tc.seed)
			}
			if p.MinSpacing != 110 || p.StartX != 600 || p.GoalOffsetAfterLast != 220 || p.ObstacleWidth != 30 {
				t.Errorf("constant fields changed: %+v", p)
			}
		})
	}
}

func TestParamsInvalidIndexFallsBack(t *testing.T) {
	for _, idx := range []int{0, -3} {
		p := ParamsForIndex(idx)
		if p != DefaultParams() {
			t.Errorf("ParamsForIndex(%d) = %+v, expected default params", idx, p)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := ParamsForIndex(5)

	a := Generate(p)
	b := Generate(p)

	if len(a.Positions) != p.ObstacleCount {
		t.Fatalf("len(Positions) = %d, expected %d", len(a.Positions), p.ObstacleCount)
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Errorf("position %d differs: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
	if a.GoalX != b.GoalX {
		t.Errorf("GoalX differs: %v vs %v", a.GoalX, b.GoalX)
	}
}

func TestGenerateKnownLayout(t *testing.T) {
	tr := Generate(ParamsForIndex(1))
	expected := []float64{600, 911, 1178, 1399, 1686, 1896, 2224, 2548, 2757, 3027, 3241, 3512}

	if len(tr.Positions) != len(expected) {
		t.Fatalf("len(Positions) = %d, expected %d", len(tr.Positions), len(expected))
	}
	for i, want := range expected {
		if tr.Positions[i] != want {
			t.Errorf("Positions[%d] = %v, expected %v", i, tr.Positions[i], want)
		}
	}
	if tr.GoalX != 3732 {
		t.Errorf("GoalX = %v, expected 3732", tr.GoalX)
	}
}

func TestGenerateMinSpacing(t *testing.T) {
	for idx := 1; idx <= 40; idx++ {
		p := ParamsForIndex(idx)
		tr := Generate(p)
		for i := 1; i < len(tr.Positions); i++ {
			gap := tr.Positions[i] - tr.Positions[i-1]
			if gap < p.MinSpacing {
				t.Fatalf("level %d: gap %d = %v, below MinSpacing %v", idx, i, gap, p.MinSpacing)
			}
		}
	}
}

func TestGenerateNoJitter(t *testing.T) {
	p := LevelParams{
		Index:               1,
		Seed:                "level-1-v1",
		ObstacleCount:       10,
		ObstacleWidth:       30,
		SpacingBase:         280,
		SpacingJitter:       0,
		MinSpacing:          110,
		BaseHeight:          150,
		StartX:              600,
		GoalOffsetAfterLast: 220,
	}

	tr := Generate(p)
	for i, x := range tr.Positions {
		want := 600 + float64(i)*280
		if x != want {
			t.Errorf("Positions[%d] = %v, expected %v", i, x, want)
		}
	}
	if tr.GoalX != 600+9*280+220 {
		t.Errorf("GoalX = %v, expected %v", tr.GoalX, 600+9*280+220)
	}
}

func TestGenerateNoJitterBelowMinSpacing(t *testing.T) {
	p := ParamsForIndex(1)
	p.SpacingBase = 50
	p.SpacingJitter = 0

	tr := Generate(p)
	for i := 1; i < len(tr.Positions); i++ {
		if gap := tr.Positions[i] - tr.Positions[i-1]; gap != p.MinSpacing {
			t.Errorf("gap %d = %v, expected %v", i, gap, p.MinSpacing)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	for _, count := range []int{0, -3} {
		p := ParamsForIndex(1)
		p.ObstacleCount = count

		tr := Generate(p)
		if len(tr.Positions) != 0 {
			t.Errorf("count %d: expected no positions, got %d", count, len(tr.Positions))
		}
		if tr.GoalX != p.StartX+p.GoalOffsetAfterLast {
			t.Errorf("count %d: GoalX = %v, expected %v", count, tr.GoalX, p.StartX+p.GoalOffsetAfterLast)
		}
	}
}

func TestGenerateKeepsCustomParams(t *testing.T) {
	tests := []struct {
		name string
		p    LevelParams
	}{
		{
			name: "empty seed",
			p:    LevelParams{Seed: "", ObstacleCount: 5, SpacingBase: 200, MinSpacing: 110, StartX: 100, GoalOffsetAfterLast: 50},
		},
		{
			name: "zero min spacing",
			p:    LevelParams{Seed: "custom", ObstacleCount: 4, SpacingBase: 300, SpacingJitter: 40, StartX: 100, GoalOffsetAfterLast: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Generate(tt.p)
			if len(tr.Positions) != tt.p.ObstacleCount {
				t.Fatalf("len(Positions) = %d, expected %d", len(tr.Positions), tt.p.ObstacleCount)
			}
			if tr.Params != tt.p {
				t.Errorf("Params = %+v, expected %+v", tr.Params, tt.p)
			}
			if tr.Positions[0] != tt.p.StartX {
				t.Errorf("Positions[0] = %v, expected %v", tr.Positions[0], tt.p.StartX)
			}
			last := tr.Positions[len(tr.Positions)-1]
			if tr.GoalX != last+tt.p.GoalOffsetAfterLast {
				t.Errorf("GoalX = %v, expected %v", tr.GoalX, last+tt.p.GoalOffsetAfterLast)
			}

			again := Generate(tt.p)
			for i := range tr.Positions {
				if tr.Positions[i] != again.Positions[i] {
					t.Errorf("Positions[%d] = %v on second run, expected %v", i, again.Positions[i], tr.Positions[i])
				}
			}
		})
	}
}

func TestGap(t *testing.T) {
	p := LevelParams{SpacingBase: 200, SpacingJitter: 50, MinSpacing: 110}

	tests := []struct {
		name     string
		r        float64
		expected float64
	}{
		{"lowest draw", 0, 150},
		{"middle draw", 0.5, 200},
		{"half rounds up", 0.505, 201},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Gap(p, tc.r); got != tc.expected {
				t.Errorf("Gap(%v) = %v, expected %v", tc.r, got, tc.expected)
			}
		})
	}
}
