package ftms

import "github.com/sirupsen/logrus"

// categoryRules prunes settings that are protocol-legal but physically
// meaningless for the machine category (a treadmill has no settable power
// target). Rules are evaluated in order and only the first matching
// category applies.
var categoryRules = []struct {
	category MachineType
	clear    MachineSettings
}{
	{Treadmill, SettingResistance | SettingPower},
	{CrossTrainer, SettingSpeed | SettingIncline},
	{IndoorBike, SettingSpeed | SettingIncline},
	{Rower, SettingSpeed | SettingIncline},
}

// Negotiate narrows a raw advertised settings bitfield down to the settings
// actually usable on the device.
//
// Phase one clears every range-bearing setting whose supported-range
// characteristic is absent: a headline capability without its range
// descriptor is not actionable. Phase two applies the category rule table.
// The result is always a subset of raw, and Negotiate is idempotent.
func Negotiate(raw MachineSettings, mt MachineType, hasRange func(Setting) bool, logger logrus.FieldLogger) MachineSettings {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	settings := raw

	for _, s := range rangedSettings {
		if !settings.Has(s.Bit()) || hasRange(s) {
			continue
		}
		settings &^= s.Bit()
		logger.WithField("setting", s.String()).
			Debug("Setting removed: supported-range characteristic not found")
	}

	for _, rule := range categoryRules {
		if mt.Has(rule.category) {
			settings &^= rule.clear
			break
		}
	}

	return settings
}
