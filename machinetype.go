package ftms

import "strings"

// MachineType classifies the exercise machine. A device may nominally claim
// more than one category; negotiation treats them as priority buckets in
// declaration order.
type MachineType uint8

const (
	Treadmill    MachineType = 1 << 0
	CrossTrainer MachineType = 1 << 1
	IndoorBike   MachineType = 1 << 2
	Rower        MachineType = 1 << 3
)

var machineTypeNames = []struct {
	bit  MachineType
	name string
}{
	{Treadmill, "treadmill"},
	{CrossTrainer, "cross-trainer"},
	{IndoorBike, "indoor-bike"},
	{Rower, "rower"},
}

// Has reports whether all bits of t are asserted.
func (m MachineType) Has(t MachineType) bool {
	return m&t == t
}

func (m MachineType) String() string {
	if m == 0 {
		return "unknown"
	}
	var names []string
	for _, t := range machineTypeNames {
		if m.Has(t.bit) {
			names = append(names, t.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseMachineType resolves a category name as accepted on the command
// line. Returns 0 for unknown names.
func ParseMachineType(name string) MachineType {
	for _, t := range machineTypeNames {
		if t.name == name {
			return t.bit
		}
	}
	return 0
}
