package models

import "strconv"

// Floors are numbered 1..MaxFloor in every block.
const (
	MinFloor = 1
	MaxFloor = 12
)

// Block is one tower of the society. FlatsPerFloor returns the ordered flat
// labels present on a floor; labels are unique within a (block, floor) pair.
type Block struct {
	ID            int
	Label         string
	FlatsPerFloor func(floor int) []string
}

// Flats returns the flat labels for a floor, or nil when the block has none.
func (b Block) Flats(floor int) []string {
	if b.FlatsPerFloor == nil || floor < MinFloor || floor > MaxFloor {
		return nil
	}
	return b.FlatsPerFloor(floor)
}

// BuildingTopology is the immutable blocks → floors → flats hierarchy.
type BuildingTopology struct {
	Blocks []Block
	Floors []int
}

// Block looks up a block by id.
func (t BuildingTopology) Block(id int) (Block, bool) {
	for _, b := range t.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return Block{}, false
}

// HasFlat reports whether (block, floor, flat) exists in the topology.
func (t BuildingTopology) HasFlat(block, floor int, flat string) bool {
	b, ok := t.Block(block)
	if !ok {
		return false
	}
	for _, f := range b.Flats(floor) {
		if f == flat {
			return true
		}
	}
	return false
}

// HasFloor reports whether floor is part of the topology's floor range.
func (t BuildingTopology) HasFloor(floor int) bool {
	for _, f := range t.Floors {
		if f == floor {
			return true
		}
	}
	return false
}

// FlatKey is the billing collaborator's composite key: block, flat label and
// floor concatenated without a delimiter ("1A3").
func FlatKey(block int, flat string, floor int) string {
	return strconv.Itoa(block) + flat + strconv.Itoa(floor)
}

func floorRange() []int {
	out := make([]int, 0, MaxFloor-MinFloor+1)
	for f := MinFloor; f <= MaxFloor; f++ {
		out = append(out, f)
	}
	return out
}

func fixedFlats(labels ...string) func(int) []string {
	return func(int) []string {
		out := make([]string, len(labels))
		copy(out, labels)
		return out
	}
}

// DefaultTopology is the Hijibiji society layout.
func DefaultTopology() BuildingTopology {
	block1 := func(floor int) []string {
		if floor <= 8 {
			return []string{"A", "B", "C", "D", "E", "F"}
		}
		return []string{"A", "B", "C"}
	}
	return BuildingTopology{
		Blocks: []Block{
			{ID: 1, Label: "Block 1", FlatsPerFloor: block1},
			{ID: 2, Label: "Block 2", FlatsPerFloor: fixedFlats("A", "B", "C", "D")},
			{ID: 3, Label: "Block 3", FlatsPerFloor: fixedFlats("A", "B", "C", "D", "E")},
			{ID: 4, Label: "Block 4", FlatsPerFloor: fixedFlats("A", "B", "C", "D", "E")},
			{ID: 5, Label: "Block 5", FlatsPerFloor: fixedFlats("A", "B", "C", "D", "E")},
			{ID: 6, Label: "Block 6", FlatsPerFloor: fixedFlats("A", "B", "C", "D")},
		},
		Floors: floorRange(),
	}
}
