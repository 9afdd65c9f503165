package ftms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rangesPresent builds a hasRange predicate from the given settings.
func rangesPresent(present ...Setting) func(Setting) bool {
	set := make(map[Setting]bool, len(present))
	for _, s := range present {
		set[s] = true
	}
	return func(s Setting) bool { return set[s] }
}

func allRanges(Setting) bool { return true }

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name     string
		raw      MachineSettings
		mt       MachineType
		hasRange func(Setting) bool
		expected MachineSettings
	}{
		{
			name:     "empty input stays empty",
			raw:      0,
			mt:       Treadmill,
			hasRange: allRanges,
			expected: 0,
		},
		{
			name:     "treadmill keeps speed and incline",
			raw:      SettingSpeed | SettingIncline | SettingResistance | SettingPower,
			mt:       Treadmill,
			hasRange: allRanges,
			expected: SettingSpeed | SettingIncline,
		},
		{
			name:     "indoor bike keeps resistance and power",
			raw:      SettingSpeed | SettingIncline | SettingResistance | SettingPower,
			mt:       IndoorBike,
			hasRange: allRanges,
			expected: SettingResistance | SettingPower,
		},
		{
			name:     "cross trainer drops speed and incline",
			raw:      SettingSpeed | SettingIncline | SettingResistance,
			mt:       CrossTrainer,
			hasRange: allRanges,
			expected: SettingResistance,
		},
		{
			name:     "rower drops speed and incline",
			raw:      SettingSpeed | SettingPower | SettingTime,
			mt:       Rower,
			hasRange: allRanges,
			expected: SettingPower | SettingTime,
		},
		{
			name:     "missing range characteristic prunes the setting",
			raw:      SettingResistance | SettingPower,
			mt:       IndoorBike,
			hasRange: rangesPresent(TargetResistance),
			expected: SettingResistance,
		},
		{
			name: "category rule applies after presence pruning",
			// Speed survives phase one (its range exists) but the indoor
			// bike rule still removes it; incline and resistance fall in
			// phase one already.
			raw:      SettingSpeed | SettingIncline | SettingResistance,
			mt:       IndoorBike,
			hasRange: rangesPresent(TargetSpeed),
			expected: 0,
		},
		{
			name:     "non-ranged settings ignore presence checks",
			raw:      SettingEnergy | SettingTime | SettingSpinDown | SettingBikeSimulation,
			mt:       IndoorBike,
			hasRange: rangesPresent(),
			expected: SettingEnergy | SettingTime | SettingSpinDown | SettingBikeSimulation,
		},
		{
			name:     "multi-category device uses first matching rule only",
			raw:      SettingSpeed | SettingIncline | SettingResistance | SettingPower,
			mt:       Treadmill | IndoorBike,
			hasRange: allRanges,
			expected: SettingSpeed | SettingIncline,
		},
		{
			name:     "unknown category applies no rule",
			raw:      SettingSpeed | SettingPower,
			mt:       0,
			hasRange: allRanges,
			expected: SettingSpeed | SettingPower,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Negotiate(tt.raw, tt.mt, tt.hasRange, nil)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNegotiate_Idempotent(t *testing.T) {
	hasRange := rangesPresent(TargetSpeed, TargetPower, TargetHeartRate)

	for _, mt := range []MachineType{Treadmill, CrossTrainer, IndoorBike, Rower, 0} {
		raw := settingsMask // everything advertised
		once := Negotiate(raw, mt, hasRange, nil)
		twice := Negotiate(once, mt, hasRange, nil)
		assert.Equal(t, once, twice, "machine type %s", mt)
	}
}

func TestNegotiate_SubsetOfRaw(t *testing.T) {
	samples := []MachineSettings{
		0,
		SettingSpeed,
		SettingSpeed | SettingIncline,
		SettingResistance | SettingPower | SettingHeartRate,
		settingsMask,
	}
	predicates := []func(Setting) bool{
		allRanges,
		rangesPresent(),
		rangesPresent(TargetIncline, TargetHeartRate),
	}

	for _, raw := range samples {
		for _, hasRange := range predicates {
			for _, mt := range []MachineType{Treadmill, CrossTrainer, IndoorBike, Rower} {
				got := Negotiate(raw, mt, hasRange, nil)
				assert.Equal(t, got, got&raw, "result must be a subset of raw (raw=%s mt=%s)", raw, mt)
			}
		}
	}
}

func TestNegotiate_TreadmillNeverKeepsResistanceOrPower(t *testing.T) {
	for raw := MachineSettings(0); raw <= settingsMask; raw += 0x1111 {
		got := Negotiate(raw&settingsMask, Treadmill, allRanges, nil)
		assert.False(t, got.Has(SettingResistance), "raw=%#x", raw)
		assert.False(t, got.Has(SettingPower), "raw=%#x", raw)
	}
}
