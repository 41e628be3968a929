/*
 * Copyright 2025 Hewlett Packard Enterprise Development LP
 * Other additional copyright holders may be indicated within.
 *
 * The entirety of this work is licensed under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 *
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

//go:build linux

package nf2

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"unsafe"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const (
	sioDevPrivate = 0x89F0

	// Private ioctls implemented by the nf2 driver
	sioRegRead  = sioDevPrivate
	sioRegWrite = sioDevPrivate + 1

	devicePath = "/dev"
)

type transport int

const (
	netIfaceTransport transport = iota
	charDeviceTransport
)

func (t transport) String() string {
	switch t {
	case netIfaceTransport:
		return "netdev"
	case charDeviceTransport:
		return "chardev"
	}
	return "unknown"
}

// ifreqData is struct ifreq with ifr_data set; the union is padded out to 24 bytes.
type ifreqData struct {
	Name [unix.IFNAMSIZ]byte
	Data uintptr
	_    [24 - unsafe.Sizeof(uintptr(0))]byte
}

// Controller accesses NetFPGA cards through the nf2 kernel driver.
type Controller struct{}

func NewController() ControllerInterface {
	return &Controller{}
}

func (c *Controller) Check(name string) error {
	_, err := locate(name)
	return err
}

func (c *Controller) Open(name string) (DeviceInterface, error) {
	t, err := locate(name)
	if err != nil {
		return nil, err
	}

	var fd int
	switch t {
	case netIfaceTransport:
		fd, err = unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	case charDeviceTransport:
		fd, err = unix.Open(filepath.Join(devicePath, name), unix.O_RDWR|unix.O_CLOEXEC, 0)
	}

	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	dev := &Device{
		name:      name,
		fd:        fd,
		transport: t,
		log: log.WithFields(log.Fields{
			"iface":     name,
			"transport": t.String(),
		}),
	}

	dev.log.Debug("Device opened")

	return dev, nil
}

// locate works out how the named card is reached. Network interfaces take
// precedence over device nodes of the same name.
func locate(name string) (transport, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}

	found, err := netIfaceExists(name)
	if err != nil {
		return 0, fmt.Errorf("check interface %s: %w", name, err)
	}
	if found {
		return netIfaceTransport, nil
	}

	path := filepath.Join(devicePath, name)
	fi, err := os.Stat(path)
	if err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return charDeviceTransport, nil
	}

	return 0, fmt.Errorf("interface %s not found: no network interface or character device %s", name, path)
}

func netIfaceExists(name string) (bool, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return false, fmt.Errorf("socket: %w", err)
	}
	defer unix.Close(fd)

	ifr, err := unix.NewIfreq(name)
	if err != nil {
		return false, err
	}

	if err := unix.IoctlIfreq(fd, unix.SIOCGIFINDEX, ifr); err != nil {
		if errors.Is(err, unix.ENODEV) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// Device is an open nf2 register handle.
type Device struct {
	name      string
	fd        int
	transport transport

	log *log.Entry
}

func (d *Device) Name() string { return d.name }

func (d *Device) ReadReg(addr uint32) (uint32, error) {
	req, err := d.ioctl(sioRegRead, registerRequest{Reg: addr})
	if err != nil {
		return 0, fmt.Errorf("%s: read register %#x: %w", d.name, addr, err)
	}

	d.log.WithFields(log.Fields{"addr": fmt.Sprintf("%#x", addr), "val": fmt.Sprintf("%#x", req.Val)}).Debug("Read register")

	return req.Val, nil
}

func (d *Device) WriteReg(addr uint32, val uint32) error {
	if _, err := d.ioctl(sioRegWrite, registerRequest{Reg: addr, Val: val}); err != nil {
		return fmt.Errorf("%s: write register %#x: %w", d.name, addr, err)
	}

	d.log.WithFields(log.Fields{"addr": fmt.Sprintf("%#x", addr), "val": fmt.Sprintf("%#x", val)}).Debug("Write register")

	return nil
}

func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}

	err := unix.Close(d.fd)
	d.fd = -1

	d.log.Debug("Device closed")

	return err
}

// ioctl hands the register request to the driver. A network interface takes
// the request through ifr_data; the device node takes it directly.
func (d *Device) ioctl(code uintptr, req registerRequest) (registerRequest, error) {
	if d.fd < 0 {
		return req, fmt.Errorf("device closed")
	}

	b, err := req.encode()
	if err != nil {
		return req, err
	}

	if d.transport == netIfaceTransport {
		ifr := ifreqData{Data: uintptr(unsafe.Pointer(&b[0]))}
		copy(ifr.Name[:], d.name)
		err = ioctl(d.fd, code, unsafe.Pointer(&ifr))
		runtime.KeepAlive(b)
	} else {
		err = ioctl(d.fd, code, unsafe.Pointer(&b[0]))
	}
	if err != nil {
		return req, err
	}

	return decodeRegisterRequest(b)
}

func ioctl(fd int, code uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), code, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
