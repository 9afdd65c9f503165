package ftms

// FTMS service and characteristic UUIDs (Bluetooth SIG assigned numbers),
// 16-bit short form, normalized without dashes.
const (
	// ServiceUUID is the Fitness Machine Service.
	ServiceUUID = "1826"

	// FeatureUUID is the mandatory Fitness Machine Feature characteristic.
	FeatureUUID = "2acc"

	// Supported range characteristics, one per controllable target setting.
	SpeedRangeUUID       = "2ad4"
	InclinationRangeUUID = "2ad5"
	ResistanceRangeUUID  = "2ad6"
	HeartRateRangeUUID   = "2ad7"
	PowerRangeUUID       = "2ad8"
)
