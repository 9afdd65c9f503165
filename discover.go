package ftms

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/srg/ftms/internal/gatt"
)

// Capabilities is the immutable result of capability discovery: what the
// machine reports it can measure, which target settings survived
// negotiation, and the value ranges of the settings that carry them.
type Capabilities struct {
	Type     MachineType
	Features MachineFeatures
	Settings MachineSettings
	Ranges   *RangeTable
}

// Discover reads the Fitness Machine Feature characteristic, negotiates the
// usable target settings against the machine category and the device's
// supported-range characteristics, and reads the ranges of the settings
// that kept them.
//
// Discovery is all-or-nothing: the first failure aborts the sequence and no
// partial result is returned. Transport errors propagate unchanged (wrapped
// with context, reachable via errors.Is/As); retries are the transport's
// business, not ours.
func Discover(ctx context.Context, conn gatt.Conn, mt MachineType, logger *logrus.Logger) (*Capabilities, error) {
	if logger == nil {
		logger = logrus.New()
	}

	logger.Debug("Reading features and settings...")

	if !conn.HasCharacteristic(FeatureUUID) {
		return nil, &gatt.NotFoundError{Resource: "characteristic", UUID: FeatureUUID}
	}

	data, err := conn.ReadCharacteristic(ctx, FeatureUUID)
	if err != nil {
		return nil, fmt.Errorf("reading fitness machine feature: %w", err)
	}

	features, rawSettings, err := DecodeFeatures(data)
	if err != nil {
		return nil, err
	}

	settings := Negotiate(rawSettings, mt, func(s Setting) bool {
		return conn.HasCharacteristic(s.RangeUUID())
	}, logger)

	logger.WithFields(logrus.Fields{
		"features": features.String(),
		"settings": settings.String(),
	}).Debug("Features negotiated")

	ranges, err := ReadRanges(ctx, settings, conn.ReadCharacteristic, logger)
	if err != nil {
		return nil, err
	}

	return &Capabilities{
		Type:     mt,
		Features: features,
		Settings: settings,
		Ranges:   ranges,
	}, nil
}
