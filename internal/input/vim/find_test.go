package vim

import "testing"

func TestFindLocate(t *testing.T) {
	line := "abcabca"
	tests := []struct {
		name string
		find FindState
		col  int
		want int
		ok   bool
	}{
		{"f forward", FindState{Char: 'c', Forward: true}, 0, 2, true},
		{"f skips cursor char", FindState{Char: 'a', Forward: true}, 0, 3, true},
		{"f not found", FindState{Char: 'z', Forward: true}, 0, 0, false},
		{"t stops short", FindState{Char: 'c', Forward: true, Till: true}, 0, 1, true},
		{"F backward", FindState{Char: 'a', Forward: false}, 4, 3, true},
		{"T stops after", FindState{Char: 'a', Forward: false, Till: true}, 5, 4, true},
		{"F from col 0", FindState{Char: 'a', Forward: false}, 0, 0, false},
		{"t adjacent target fails", FindState{Char: 'b', Forward: true, Till: true}, 0, 0, false},
		{"T adjacent target fails", FindState{Char: 'b', Forward: false, Till: true}, 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.find.Locate(line, tt.col)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Locate = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindLocateRepeatSkipsAdjacent(t *testing.T) {
	line := "abcabca"
	tests := []struct {
		name string
		find FindState
		col  int
		want int
		ok   bool
	}{
		{"t repeat skips adjacent", FindState{Char: 'b', Forward: true, Till: true}, 0, 3, true},
		{"t repeat without adjacency", FindState{Char: 'b', Forward: true, Till: true}, 1, 3, true},
		{"t repeat exhausted", FindState{Char: 'b', Forward: true, Till: true}, 3, 0, false},
		{"T repeat skips adjacent", FindState{Char: 'b', Forward: false, Till: true}, 5, 2, true},
		{"f repeat unchanged", FindState{Char: 'b', Forward: true}, 1, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.find.LocateRepeat(line, tt.col)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("LocateRepeat = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindReversedKeepsTill(t *testing.T) {
	f := FindState{Char: 'x', Forward: true, Till: true}
	rev := f.Reversed()
	if rev.Forward {
		t.Error("Reversed should flip direction")
	}
	if !rev.Till {
		t.Error("Reversed must preserve the till flag")
	}
	if f.Forward != true {
		t.Error("Reversed must not mutate the original")
	}
}
