//go:build linux

package gatt

import (
	"github.com/go-ble/ble"
	"github.com/go-ble/ble/linux"
)

func newDefaultDevice() (ble.Device, error) {
	return linux.NewDevice()
}
