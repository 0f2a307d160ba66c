// Package evdev reads key events from a Linux input event device such as
// the Sense HAT joystick (/dev/input/eventN).
package evdev

import (
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/fkcurrie/sensehat-golang/pkg/device"
	goevdev "github.com/holoplot/go-evdev"
	"golang.org/x/sys/unix"
)

// Type is an input event type (EV_*).
type Type uint16

// Event types from linux/input-event-codes.h
const (
	EvSyn Type = Type(goevdev.EV_SYN)
	EvKey Type = Type(goevdev.EV_KEY)
	EvRel Type = Type(goevdev.EV_REL)
	EvAbs Type = Type(goevdev.EV_ABS)
	EvMsc Type = Type(goevdev.EV_MSC)
)

// Code is an input event code, for EV_KEY events the key (KEY_*).
type Code uint16

// Key codes sent by the Sense HAT joystick
const (
	KeyEnter Code = Code(goevdev.KEY_ENTER)
	KeyUp    Code = Code(goevdev.KEY_UP)
	KeyLeft  Code = Code(goevdev.KEY_LEFT)
	KeyRight Code = Code(goevdev.KEY_RIGHT)
	KeyDown  Code = Code(goevdev.KEY_DOWN)
)

// Values of EV_KEY events
const (
	ValueRelease int32 = 0
	ValuePress   int32 = 1
	ValueRepeat  int32 = 2
)

// maxBatch is the number of events buffered between the reader goroutine
// and ReadEvents.
const maxBatch = 64

// Event is a decoded input event.
type Event struct {
	Time  time.Time
	Type  Type
	Code  Code
	Value int32
}

// IsKeyPress reports whether the event is the transition of a key to the
// pressed state. Releases and autorepeats are not presses.
func (e Event) IsKeyPress() bool {
	return e.Type == EvKey && e.Value == ValuePress
}

func fromInput(ev *goevdev.InputEvent) Event {
	return Event{
		Time:  time.Unix(ev.Time.Unix()),
		Type:  Type(ev.Type),
		Code:  Code(ev.Code),
		Value: ev.Value,
	}
}

// eventReader is the part of *goevdev.InputDevice the reader goroutine uses.
type eventReader interface {
	ReadOne() (*goevdev.InputEvent, error)
	Close() error
}

type readResult struct {
	event Event
	err   error
}

// Device is an open input event device.
type Device struct {
	path    string
	name    string
	src     eventReader
	results chan readResult
	done    chan struct{}
	once    sync.Once
	err     error
}

// Open opens the input device at path for reading. With grab set the device
// is grabbed exclusively, so its key presses do not also reach the console.
//
// Files that do not answer the evdev queries give an error of kind
// device.ErrFormat.
func Open(path string, grab bool) (*Device, error) {
	dev, err := goevdev.Open(path)
	if err != nil {
		return nil, device.Wrap("open", path, classifyOpen(err), err)
	}

	name, err := dev.Name()
	if err != nil {
		dev.Close()
		return nil, device.Wrap("open", path, device.ErrFormat, err)
	}

	if grab {
		if err := dev.Grab(); err != nil {
			dev.Close()
			return nil, device.Wrap("grab", path, device.ErrIO, err)
		}
	}

	return newDevice(path, name, dev), nil
}

func newDevice(path, name string, src eventReader) *Device {
	d := &Device{
		path:    path,
		name:    name,
		src:     src,
		results: make(chan readResult, maxBatch),
		done:    make(chan struct{}),
	}
	go d.readLoop()
	return d
}

// classifyOpen maps a failed open. Failures of the open call itself carry a
// *fs.PathError, anything else is an evdev query the file did not answer.
func classifyOpen(err error) error {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, unix.ENXIO),
		errors.Is(err, unix.ENODEV):
		return device.ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return device.ErrPermission
	case errors.As(err, &pathErr):
		return device.ErrIO
	default:
		return device.ErrFormat
	}
}

// readLoop feeds results until the source fails or the device is closed.
func (d *Device) readLoop() {
	for {
		ev, err := d.src.ReadOne()
		r := readResult{err: err}
		if err == nil {
			r.event = fromInput(ev)
		}

		select {
		case d.results <- r:
		case <-d.done:
			return
		}
		if err != nil {
			return
		}
	}
}

// Path returns the device path.
func (d *Device) Path() string {
	return d.path
}

// Name returns the name the kernel reports for the device.
func (d *Device) Name() string {
	return d.name
}

// ReadEvents blocks until at least one event is available and returns all
// events queued so far. A read failure is returned once the events read
// before it have been delivered, and on every later call.
func (d *Device) ReadEvents() ([]Event, error) {
	if d.err != nil {
		return nil, d.err
	}

	var events []Event
	select {
	case <-d.done:
		return nil, device.Wrap("read", d.path, device.ErrRead, os.ErrClosed)
	case r := <-d.results:
		if r.err != nil {
			d.err = device.Wrap("read", d.path, device.ErrRead, r.err)
			return nil, d.err
		}
		events = append(events, r.event)
	}

	for {
		select {
		case r := <-d.results:
			if r.err != nil {
				d.err = device.Wrap("read", d.path, device.ErrRead, r.err)
				return events, nil
			}
			events = append(events, r.event)
		default:
			return events, nil
		}
	}
}

// Close closes the device, releasing a grab. A blocked ReadEvents returns
// with an error.
func (d *Device) Close() error {
	var err error
	d.once.Do(func() {
		close(d.done)
		err = d.src.Close()
	})
	return err
}
