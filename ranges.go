package ftms

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/srg/ftms/internal/codec"
)

// SettingRange is the inclusive value range of a target setting, in the
// setting's own unit.
type SettingRange struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
}

// RangeTable maps negotiated range-bearing settings to their ranges.
// Iteration order is the fixed read order of the settings.
type RangeTable = orderedmap.OrderedMap[Setting, SettingRange]

// ReadFunc reads the current value behind a characteristic UUID.
type ReadFunc func(ctx context.Context, uuid string) ([]byte, error)

// ReadRanges fetches the supported range of every range-bearing setting
// asserted in settings, strictly one read at a time and in the fixed
// setting order. Transport errors abort the whole sequence and propagate
// unchanged; no partial table is returned.
func ReadRanges(ctx context.Context, settings MachineSettings, read ReadFunc, logger logrus.FieldLogger) (*RangeTable, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	logger.Debug("Reading settings value ranges...")
	ranges := orderedmap.New[Setting, SettingRange]()

	for _, s := range rangedSettings {
		if !settings.Has(s.Bit()) {
			continue
		}

		data, err := read(ctx, s.RangeUUID())
		if err != nil {
			return nil, fmt.Errorf("reading %s range: %w", s, err)
		}

		sr, err := decodeRange(s, data)
		if err != nil {
			return nil, err
		}
		ranges.Set(s, sr)

		logger.WithFields(logrus.Fields{
			"setting": s.String(),
			"min":     sr.Min,
			"max":     sr.Max,
			"step":    sr.Step,
		}).Debug("Setting range decoded")
	}

	return ranges, nil
}

// decodeRange parses a supported-range characteristic value: min, max and
// step in the setting's fixed-point format, with no trailing bytes.
func decodeRange(s Setting, data []byte) (SettingRange, error) {
	r := bytes.NewReader(data)

	var vals [3]float64
	for i := range vals {
		v, err := codec.Decode(r, s.Format())
		if err != nil {
			return SettingRange{}, fmt.Errorf("decoding %s range: %w", s, err)
		}
		vals[i] = v
	}

	if r.Len() != 0 {
		return SettingRange{}, &TrailingDataError{Value: s.String() + " range", Remaining: r.Len()}
	}

	return SettingRange{Min: vals[0], Max: vals[1], Step: vals[2]}, nil
}
