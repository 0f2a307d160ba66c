// Package gpiokeys provides a joystick key source for five discrete buttons
// wired to GPIO lines, read through the GPIO character device.
//
// Edges on the lines are translated into the same EV_KEY events the Sense HAT
// joystick produces, so the keypad can drive a joystick.Controller in place
// of the input event device.
package gpiokeys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/fkcurrie/sensehat-golang/pkg/device"
	"github.com/fkcurrie/sensehat-golang/pkg/evdev"
	"github.com/retroenv/retrogolib/log"
	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

const (
	// queueSize is the number of translated events buffered between the
	// GPIO event handler and ReadEvents.
	queueSize = 64

	consumer = "sensehat-joystick"
)

// Config describes the keypad wiring.
type Config struct {
	Chip      string // GPIO chip, e.g. "gpiochip0"
	Up        int    // line offsets of the buttons
	Down      int
	Left      int
	Right     int
	Enter     int
	ActiveLow bool // buttons pull the line low when pressed
	Logger    *log.Logger
}

// Keypad is a key source backed by GPIO lines.
type Keypad struct {
	chip   string
	keys   map[int]evdev.Code
	lines  *gpiocdev.Lines
	events chan evdev.Event
	done   chan struct{}
	once   sync.Once
	logger *log.Logger
}

// Open requests the configured lines as inputs with edge detection.
func Open(cfg Config) (*Keypad, error) {
	k, err := newKeypad(cfg)
	if err != nil {
		return nil, err
	}

	offsets := make([]int, 0, len(k.keys))
	for offset := range k.keys {
		offsets = append(offsets, offset)
	}

	opts := []gpiocdev.LineReqOption{
		gpiocdev.WithConsumer(consumer),
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(k.handle),
	}
	if cfg.ActiveLow {
		opts = append(opts, gpiocdev.AsActiveLow, gpiocdev.WithPullUp)
	}

	lines, err := gpiocdev.RequestLines(cfg.Chip, offsets, opts...)
	if err != nil {
		return nil, device.Wrap("open", cfg.Chip, classifyRequest(err), err)
	}
	k.lines = lines

	k.logger.Debug("Opened GPIO keypad",
		log.String("chip", cfg.Chip),
		log.String("lines", fmt.Sprint(offsets)))
	return k, nil
}

func newKeypad(cfg Config) (*Keypad, error) {
	keys := map[int]evdev.Code{}
	for _, b := range []struct {
		offset int
		code   evdev.Code
	}{
		{cfg.Up, evdev.KeyUp},
		{cfg.Down, evdev.KeyDown},
		{cfg.Left, evdev.KeyLeft},
		{cfg.Right, evdev.KeyRight},
		{cfg.Enter, evdev.KeyEnter},
	} {
		if b.offset < 0 {
			return nil, fmt.Errorf("invalid line offset %d", b.offset)
		}
		if _, ok := keys[b.offset]; ok {
			return nil, fmt.Errorf("line offset %d assigned to more than one button", b.offset)
		}
		keys[b.offset] = b.code
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithConfig(log.DefaultConfig())
	}

	return &Keypad{
		chip:   cfg.Chip,
		keys:   keys,
		events: make(chan evdev.Event, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}, nil
}

func classifyRequest(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, unix.ENODEV):
		return device.ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return device.ErrPermission
	case errors.Is(err, gpiocdev.ErrNotCharacterDevice):
		return device.ErrFormat
	default:
		return device.ErrIO
	}
}

// translate converts a line edge into a key event. With active low buttons
// the request inverts the lines, so a rising edge is always a press.
func (k *Keypad) translate(le gpiocdev.LineEvent) (evdev.Event, bool) {
	code, ok := k.keys[le.Offset]
	if !ok {
		return evdev.Event{}, false
	}

	value := evdev.ValueRelease
	if le.Type == gpiocdev.LineEventRisingEdge {
		value = evdev.ValuePress
	}

	return evdev.Event{
		Time:  time.Now(),
		Type:  evdev.EvKey,
		Code:  code,
		Value: value,
	}, true
}

// handle runs on the gpiocdev event goroutine.
func (k *Keypad) handle(le gpiocdev.LineEvent) {
	ev, ok := k.translate(le)
	if !ok {
		return
	}

	select {
	case <-k.done:
		return
	default:
	}

	select {
	case k.events <- ev:
	default:
		k.logger.Error("GPIO keypad queue full, dropping event", log.Int("line", le.Offset))
	}
}

// ReadEvents blocks until at least one key event is queued and returns all
// queued events.
func (k *Keypad) ReadEvents() ([]evdev.Event, error) {
	var events []evdev.Event

	select {
	case <-k.done:
		return nil, device.Wrap("read", k.chip, device.ErrRead, os.ErrClosed)
	case ev := <-k.events:
		events = append(events, ev)
	}

	for {
		select {
		case ev := <-k.events:
			events = append(events, ev)
		default:
			return events, nil
		}
	}
}

// Close releases the lines. A blocked ReadEvents returns with an error.
func (k *Keypad) Close() error {
	var err error
	k.once.Do(func() {
		close(k.done)
		if k.lines != nil {
			err = k.lines.Close()
		}
	})
	return err
}
