package gatt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-ble/ble"
	"github.com/mcuadros/go-defaults"
	"github.com/sirupsen/logrus"
)

// DeviceFactory creates ble.Device instances (can be overridden in tests)
var DeviceFactory = func() (ble.Device, error) {
	return newDefaultDevice()
}

// DialOptions defines BLE connection options
type DialOptions struct {
	ConnectTimeout time.Duration `default:"30s"`
}

// BLEConn is a Conn implementation over the go-ble stack. Reads are
// serialized with a mutex: the FTMS profile allows only one outstanding
// attribute operation per connection.
type BLEConn struct {
	client ble.Client
	logger *logrus.Logger

	readMutex sync.Mutex

	// characteristics keyed by normalized UUID, populated at dial time
	chars map[string]*ble.Characteristic
}

// Dial connects to the device at address, discovers its GATT profile and
// returns a ready-to-use connection. The caller owns the connection and
// must Close it.
func Dial(ctx context.Context, address string, opts *DialOptions, logger *logrus.Logger) (*BLEConn, error) {
	if opts == nil {
		opts = &DialOptions{}
	}
	// Fills only zero-valued fields, explicit options win.
	defaults.SetDefaults(opts)
	if logger == nil {
		logger = logrus.New()
	}

	dev, err := DeviceFactory()
	if err != nil {
		return nil, fmt.Errorf("failed to create BLE device: %w", err)
	}
	ble.SetDefaultDevice(dev)

	connCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	logger.WithFields(logrus.Fields{
		"address": address,
		"timeout": opts.ConnectTimeout,
	}).Info("Connecting to BLE device...")

	client, err := ble.Dial(connCtx, ble.NewAddr(address))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to device with address %q: %w", address, err)
	}

	logger.WithField("address", address).Debug("Discovering services and characteristics...")
	profile, err := client.DiscoverProfile(true)
	if err != nil {
		if cancelErr := client.CancelConnection(); cancelErr != nil {
			logger.WithField("cancel_error", cancelErr).Warn("Failed to cancel connection during profile discovery failure")
		}
		return nil, fmt.Errorf("failed to discover profile: %w", err)
	}

	chars := make(map[string]*ble.Characteristic)
	for _, svc := range profile.Services {
		svcUUID := svc.UUID.String()
		for _, char := range svc.Characteristics {
			charUUID := NormalizeUUID(char.UUID.String())
			logger.WithFields(logrus.Fields{
				"service_uuid": svcUUID,
				"char_uuid":    charUUID,
			}).Debug("Found characteristic UUID")
			chars[charUUID] = char
		}
	}

	logger.WithFields(logrus.Fields{
		"address":         address,
		"services":        len(profile.Services),
		"characteristics": len(chars),
	}).Info("BLE device connected successfully")

	return &BLEConn{client: client, logger: logger, chars: chars}, nil
}

// HasCharacteristic reports whether the profile discovered at dial time
// contains the characteristic.
func (c *BLEConn) HasCharacteristic(uuid string) bool {
	_, ok := c.chars[NormalizeUUID(uuid)]
	return ok
}

// ReadCharacteristic reads the current value of the characteristic. The
// context is checked before the read is issued; the read itself is bounded
// by the connection's ATT timeout.
func (c *BLEConn) ReadCharacteristic(ctx context.Context, uuid string) ([]byte, error) {
	char, ok := c.chars[NormalizeUUID(uuid)]
	if !ok {
		return nil, &NotFoundError{Resource: "characteristic", UUID: uuid}
	}

	c.readMutex.Lock()
	defer c.readMutex.Unlock()

	if c.client == nil {
		return nil, ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := c.client.ReadCharacteristic(char)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"char_uuid": uuid,
			"error":     err,
		}).Error("Failed to read characteristic")
		return nil, fmt.Errorf("failed to read characteristic %q: %w", uuid, err)
	}

	c.logger.WithFields(logrus.Fields{
		"char_uuid": uuid,
		"bytes":     len(data),
	}).Debug("Characteristic read")
	return data, nil
}

// Close disconnects from the device. Safe to call more than once.
func (c *BLEConn) Close() error {
	c.readMutex.Lock()
	defer c.readMutex.Unlock()

	if c.client == nil {
		c.logger.Debug("Close called but already disconnected")
		return nil
	}

	client := c.client
	c.client = nil

	if err := client.CancelConnection(); err != nil {
		c.logger.WithField("error", err).Warn("BLE device disconnected with errors")
		return err
	}
	c.logger.Info("BLE device disconnected successfully")
	return nil
}
