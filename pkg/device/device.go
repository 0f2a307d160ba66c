// Package device holds the error kinds and open helpers shared by the LED
// matrix and joystick drivers.
package device

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Error kinds. Every error returned by the drivers matches exactly one of
// these with errors.Is.
var (
	ErrNotFound   = errors.New("device not found")
	ErrPermission = errors.New("permission denied")
	ErrFormat     = errors.New("unsupported device format")
	ErrIO         = errors.New("i/o failure")
	ErrRead       = errors.New("read failure")
	ErrOutOfRange = errors.New("coordinates out of range")
)

// Error describes a failed device operation.
type Error struct {
	Op   string // operation, e.g. "open", "write", "read"
	Path string // device path
	Kind error  // one of the Err* kinds above
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Wrap builds an *Error of the given kind.
func Wrap(op, path string, kind, err error) error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// OpenFile opens path with the given flags and maps the failure onto
// ErrNotFound, ErrPermission or ErrFormat.
func OpenFile(path string, flag int) (*os.File, error) {
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, Wrap("open", path, classifyOpen(err), err)
	}
	return f, nil
}

func classifyOpen(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist),
		errors.Is(err, unix.ENXIO),
		errors.Is(err, unix.ENODEV):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	case errors.Is(err, unix.EISDIR):
		return ErrFormat
	default:
		return ErrIO
	}
}

// IsCharDevice reports whether f is a character special file.
func IsCharDevice(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	return info.Mode()&fs.ModeCharDevice != 0, nil
}

// Control runs fn with the raw descriptor of f. Unlike f.Fd it leaves the
// file in non-blocking mode, so a later Close still interrupts a pending Read.
func Control(f *os.File, fn func(fd int) error) error {
	conn, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var opErr error
	if err := conn.Control(func(fd uintptr) {
		opErr = fn(int(fd))
	}); err != nil {
		return err
	}
	return opErr
}

// IoctlPtr issues an ioctl whose argument is a pointer to a kernel struct.
func IoctlPtr(f *os.File, req uint, arg unsafe.Pointer) error {
	return Control(f, func(fd int) error {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
		if errno != 0 {
			return errno
		}
		return nil
	})
}
