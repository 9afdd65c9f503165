// Package ftms decodes the capability advertisement of a Bluetooth Fitness
// Machine Service (FTMS) device and negotiates which target settings are
// actually usable.
//
// The package performs no I/O of its own; callers supply the attribute-level
// transport (see the gatt.Conn interface) and receive immutable decoded
// structures back.
package ftms

import (
	"bytes"
	"strings"

	"github.com/srg/ftms/internal/codec"
)

// MachineFeatures reports the measurement capabilities of a fitness machine.
// It mirrors the Fitness Machine Features field of the Fitness Machine
// Feature characteristic (FTMS v1.0, section 4.3.1.1).
type MachineFeatures uint32

// Bit positions are assigned by the FTMS specification and must never be
// reordered.
const (
	FeatureAverageSpeed        MachineFeatures = 1 << 0
	FeatureCadence             MachineFeatures = 1 << 1
	FeatureDistance            MachineFeatures = 1 << 2
	FeatureInclination         MachineFeatures = 1 << 3
	FeatureElevationGain       MachineFeatures = 1 << 4
	FeaturePace                MachineFeatures = 1 << 5
	FeatureStepCount           MachineFeatures = 1 << 6
	FeatureResistance          MachineFeatures = 1 << 7
	FeatureStrideCount         MachineFeatures = 1 << 8
	FeatureExpendedEnergy      MachineFeatures = 1 << 9
	FeatureHeartRate           MachineFeatures = 1 << 10
	FeatureMetabolicEquivalent MachineFeatures = 1 << 11
	FeatureElapsedTime         MachineFeatures = 1 << 12
	FeatureRemainingTime       MachineFeatures = 1 << 13
	FeaturePowerMeasurement    MachineFeatures = 1 << 14
	FeatureForceOnBelt         MachineFeatures = 1 << 15
	FeatureUserDataRetention   MachineFeatures = 1 << 16
)

// featureNames maps each defined feature bit to its display name, in bit
// order. The mask of defined bits is derived from this table.
var featureNames = []struct {
	bit  MachineFeatures
	name string
}{
	{FeatureAverageSpeed, "average_speed"},
	{FeatureCadence, "cadence"},
	{FeatureDistance, "distance"},
	{FeatureInclination, "inclination"},
	{FeatureElevationGain, "elevation_gain"},
	{FeaturePace, "pace"},
	{FeatureStepCount, "step_count"},
	{FeatureResistance, "resistance"},
	{FeatureStrideCount, "stride_count"},
	{FeatureExpendedEnergy, "expended_energy"},
	{FeatureHeartRate, "heart_rate"},
	{FeatureMetabolicEquivalent, "metabolic_equivalent"},
	{FeatureElapsedTime, "elapsed_time"},
	{FeatureRemainingTime, "remaining_time"},
	{FeaturePowerMeasurement, "power_measurement"},
	{FeatureForceOnBelt, "force_on_belt"},
	{FeatureUserDataRetention, "user_data_retention"},
}

var featuresMask = func() MachineFeatures {
	var m MachineFeatures
	for _, f := range featureNames {
		m |= f.bit
	}
	return m
}()

// Has reports whether all bits of f are asserted.
func (m MachineFeatures) Has(f MachineFeatures) bool {
	return m&f == f
}

// Names returns the display names of the asserted flags in bit order.
func (m MachineFeatures) Names() []string {
	var names []string
	for _, f := range featureNames {
		if m.Has(f.bit) {
			names = append(names, f.name)
		}
	}
	return names
}

func (m MachineFeatures) String() string {
	if m == 0 {
		return "none"
	}
	return strings.Join(m.Names(), "|")
}

// ParseFeatures validates a raw features bitfield against the defined
// symbol set. Any bit outside the set is an UndefinedFlagError.
func ParseFeatures(raw uint32) (MachineFeatures, error) {
	if undef := raw &^ uint32(featuresMask); undef != 0 {
		return 0, &UndefinedFlagError{Field: "features", Raw: raw, Undefined: undef}
	}
	return MachineFeatures(raw), nil
}

// MachineSettings reports the target settings a fitness machine advertises.
// It mirrors the Target Setting Features field of the Fitness Machine
// Feature characteristic (FTMS v1.0, section 4.3.1.2).
//
// A value is either raw (as advertised) or negotiated (after Negotiate);
// both are the same type, distinguished only by provenance.
type MachineSettings uint32

const (
	SettingSpeed          MachineSettings = 1 << 0
	SettingIncline        MachineSettings = 1 << 1
	SettingResistance     MachineSettings = 1 << 2
	SettingPower          MachineSettings = 1 << 3
	SettingHeartRate      MachineSettings = 1 << 4
	SettingEnergy         MachineSettings = 1 << 5
	SettingSteps          MachineSettings = 1 << 6
	SettingStrides        MachineSettings = 1 << 7
	SettingDistance       MachineSettings = 1 << 8
	SettingTime           MachineSettings = 1 << 9
	SettingTimeTwoZones   MachineSettings = 1 << 10
	SettingTimeThreeZones MachineSettings = 1 << 11
	SettingTimeFiveZones  MachineSettings = 1 << 12
	SettingBikeSimulation MachineSettings = 1 << 13
	SettingCircumference  MachineSettings = 1 << 14
	SettingSpinDown       MachineSettings = 1 << 15
	SettingCadence        MachineSettings = 1 << 16
)

var settingNames = []struct {
	bit  MachineSettings
	name string
}{
	{SettingSpeed, "speed"},
	{SettingIncline, "inclination"},
	{SettingResistance, "resistance"},
	{SettingPower, "power"},
	{SettingHeartRate, "heart_rate"},
	{SettingEnergy, "energy"},
	{SettingSteps, "steps"},
	{SettingStrides, "strides"},
	{SettingDistance, "distance"},
	{SettingTime, "time"},
	{SettingTimeTwoZones, "time_two_zones"},
	{SettingTimeThreeZones, "time_three_zones"},
	{SettingTimeFiveZones, "time_five_zones"},
	{SettingBikeSimulation, "bike_simulation"},
	{SettingCircumference, "circumference"},
	{SettingSpinDown, "spin_down"},
	{SettingCadence, "cadence"},
}

var settingsMask = func() MachineSettings {
	var m MachineSettings
	for _, s := range settingNames {
		m |= s.bit
	}
	return m
}()

// Has reports whether all bits of s are asserted.
func (m MachineSettings) Has(s MachineSettings) bool {
	return m&s == s
}

// Names returns the display names of the asserted flags in bit order.
func (m MachineSettings) Names() []string {
	var names []string
	for _, s := range settingNames {
		if m.Has(s.bit) {
			names = append(names, s.name)
		}
	}
	return names
}

func (m MachineSettings) String() string {
	if m == 0 {
		return "none"
	}
	return strings.Join(m.Names(), "|")
}

// ParseSettings validates a raw settings bitfield against the defined
// symbol set. Any bit outside the set is an UndefinedFlagError.
func ParseSettings(raw uint32) (MachineSettings, error) {
	if undef := raw &^ uint32(settingsMask); undef != 0 {
		return 0, &UndefinedFlagError{Field: "settings", Raw: raw, Undefined: undef}
	}
	return MachineSettings(raw), nil
}

// DecodeFeatures parses the 8-byte Fitness Machine Feature characteristic
// value: a 32-bit features bitfield followed by a 32-bit target settings
// bitfield, both little-endian. The settings value is raw, pre-negotiation.
func DecodeFeatures(data []byte) (MachineFeatures, MachineSettings, error) {
	r := bytes.NewReader(data)

	rawFeatures, err := codec.DecodeUint32(r)
	if err != nil {
		return 0, 0, err
	}
	rawSettings, err := codec.DecodeUint32(r)
	if err != nil {
		return 0, 0, err
	}
	if r.Len() != 0 {
		return 0, 0, &TrailingDataError{Value: "fitness machine feature", Remaining: r.Len()}
	}

	features, err := ParseFeatures(rawFeatures)
	if err != nil {
		return 0, 0, err
	}
	settings, err := ParseSettings(rawSettings)
	if err != nil {
		return 0, 0, err
	}
	return features, settings, nil
}
