package ftms

import "github.com/srg/ftms/internal/codec"

// Setting identifies a target setting that carries a supported-range
// characteristic on the device.
type Setting int

const (
	TargetSpeed Setting = iota
	TargetIncline
	TargetResistance
	TargetPower
	TargetHeartRate
)

// settingSpecs binds each range-bearing setting to its flag bit, its
// supported-range characteristic and the wire format of the range values.
// The formats come from the FTMS characteristic definitions: speed in
// 0.01 km/h, inclination and resistance in tenths, power in watts, heart
// rate in bpm.
var settingSpecs = [...]struct {
	name   string
	bit    MachineSettings
	uuid   string
	format codec.Format
}{
	TargetSpeed:      {"speed", SettingSpeed, SpeedRangeUUID, codec.Uint16Hundredths},
	TargetIncline:    {"inclination", SettingIncline, InclinationRangeUUID, codec.Int16Tenths},
	TargetResistance: {"resistance", SettingResistance, ResistanceRangeUUID, codec.Int16Tenths},
	TargetPower:      {"power", SettingPower, PowerRangeUUID, codec.Int16},
	TargetHeartRate:  {"heart_rate", SettingHeartRate, HeartRateRangeUUID, codec.Uint8},
}

// rangedSettings lists the range-bearing settings in their fixed processing
// order. Both negotiation and range reads iterate in this order.
var rangedSettings = []Setting{
	TargetSpeed,
	TargetIncline,
	TargetResistance,
	TargetPower,
	TargetHeartRate,
}

func (s Setting) String() string {
	if s < 0 || int(s) >= len(settingSpecs) {
		return "unknown"
	}
	return settingSpecs[s].name
}

// Bit returns the MachineSettings flag the setting corresponds to.
func (s Setting) Bit() MachineSettings {
	return settingSpecs[s].bit
}

// RangeUUID returns the supported-range characteristic UUID for the setting.
func (s Setting) RangeUUID() string {
	return settingSpecs[s].uuid
}

// Format returns the fixed-point wire format of the setting's range values.
func (s Setting) Format() codec.Format {
	return settingSpecs[s].format
}
