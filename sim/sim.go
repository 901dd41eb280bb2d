//go:build !baremetal

// Package sim is a desktop stand-in for the touch panel hardware, so the
// calibration utility can be exercised without an edit-flash-test cycle.
//
// The display is shown in a window managed by a separate process (started by
// re-executing the current binary) and driven over a line-oriented pipe
// protocol. Mouse events in the window flow back and are turned into
// synthetic raw touch samples: window pixels are scaled into a fake 12-bit
// ADC range with a little noise, so the calibrator has a real mapping to
// discover.
package sim

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/aykevl/tinygl/pixel"
	"tinygo.org/x/drivers/touch"
)

// Raw coordinate range reported by the simulated touch controller. The
// values mimic an XPT2046 that doesn't quite reach the ends of its 12-bit
// range, like a real panel.
const (
	rawLow  = 200
	rawHigh = 3900

	// Uniform noise applied to every raw sample, in raw units either way.
	rawJitter = 6

	// Pressure reported while the mouse button is held. Comfortably above
	// the default thresholds.
	rawPressure = 1200
)

// How often dirty framebuffer rows are pushed to the window process.
const flushInterval = 15 * time.Millisecond

// Display is a simulated TFT. It implements drivers.Displayer, so it can be
// wrapped by touchcal.NewTFT like any hardware display.
type Display struct {
	width  int
	height int

	mu       sync.Mutex
	buf      []pixel.RGB888
	dirtyLow int // first dirty row
	dirtyEnd int // one past the last dirty row; low >= end means clean

	touchMu sync.Mutex
	pressed bool
	mouseX  int
	mouseY  int
}

// NewDisplay opens the simulator window and returns a display of the given
// size in virtual pixels. Only one display per process is supported.
func NewDisplay(title string, width, height int) *Display {
	d := &Display{
		width:    width,
		height:   height,
		buf:      make([]pixel.RGB888, width*height),
		dirtyLow: height,
	}
	startWindow(d)
	windowSendCommand("title "+title, nil)
	windowSendCommand(fmt.Sprintf("display %d %d", width, height), nil)
	go d.flushLoop()
	return d
}

// Size returns the display size in pixels.
func (d *Display) Size() (width, height int16) {
	return int16(d.width), int16(d.height)
}

// SetPixel writes one pixel to the framebuffer. Out of bounds writes are
// dropped, like a display driver clipping to its visible area.
func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || int(x) >= d.width || int(y) >= d.height {
		return
	}
	d.mu.Lock()
	d.buf[int(y)*d.width+int(x)] = pixel.NewColor[pixel.RGB888](c.R, c.G, c.B)
	if int(y) < d.dirtyLow {
		d.dirtyLow = int(y)
	}
	if int(y) >= d.dirtyEnd {
		d.dirtyEnd = int(y) + 1
	}
	d.mu.Unlock()
}

// Display pushes all pending changes to the window immediately.
func (d *Display) Display() error {
	d.flush()
	return nil
}

// Pushing rows on a timer keeps the pipe traffic bounded no matter how the
// drawing code batches its SetPixel calls.
func (d *Display) flushLoop() {
	for range time.Tick(flushInterval) {
		d.flush()
	}
}

func (d *Display) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := make([]byte, d.width*3)
	for y := d.dirtyLow; y < d.dirtyEnd; y++ {
		for x := 0; x < d.width; x++ {
			c := d.buf[y*d.width+x].RGBA()
			row[x*3+0] = c.R
			row[x*3+1] = c.G
			row[x*3+2] = c.B
		}
		windowSendCommand(fmt.Sprintf("draw 0 %d %d", y, d.width), row)
	}
	d.dirtyLow = d.height
	d.dirtyEnd = 0
}

// Update the shared mouse state from window events.
func (d *Display) setMouse(pressed bool, x, y int) {
	d.touchMu.Lock()
	d.pressed = pressed
	if pressed {
		d.mouseX = x
		d.mouseY = y
	}
	d.touchMu.Unlock()
}

// Touch is the simulated touch controller attached to a Display. It
// implements touchcal.Source.
type Touch struct {
	display *Display
}

// NewTouch returns the touch input of the given display.
func NewTouch(display *Display) *Touch {
	return &Touch{display: display}
}

// Touched reports whether the mouse button is held inside the window.
func (t *Touch) Touched() bool {
	d := t.display
	d.touchMu.Lock()
	pressed := d.pressed
	d.touchMu.Unlock()
	return pressed
}

// ReadTouchPoint returns the current sample in raw controller units. While
// the mouse is pressed every call returns a freshly jittered sample, like a
// real panel re-converting on every read.
func (t *Touch) ReadTouchPoint() touch.Point {
	d := t.display
	d.touchMu.Lock()
	defer d.touchMu.Unlock()
	if !d.pressed {
		return touch.Point{}
	}
	return touch.Point{
		X: pixelToRaw(d.mouseX, d.width) + jitter(),
		Y: pixelToRaw(d.mouseY, d.height) + jitter(),
		Z: rawPressure + jitter(),
	}
}

func pixelToRaw(v, extent int) int {
	if v < 0 {
		v = 0
	}
	if v >= extent {
		v = extent - 1
	}
	return rawLow + v*(rawHigh-rawLow)/(extent-1)
}

func jitter() int {
	return rand.Intn(2*rawJitter+1) - rawJitter
}

var (
	windowStart  sync.Once
	windowLock   sync.Mutex
	windowStdin  io.WriteCloser
	windowStdout io.ReadCloser
)

// Ensure the window is running in a separate process, starting it if
// necessary.
func startWindow(d *Display) {
	windowRunning := make(chan struct{})
	windowStart.Do(func() {
		go func() {
			cmd := exec.Command(os.Args[0], runWindowCommand)
			cmd.Stderr = os.Stderr
			windowStdin, _ = cmd.StdinPipe()
			windowStdout, _ = cmd.StdoutPipe()
			err := cmd.Start()
			if err != nil {
				fmt.Fprintln(os.Stderr, "could not start window process:", err)
				os.Exit(1)
			}
			close(windowRunning)
			err = cmd.Wait()
			if err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					os.Exit(exitErr.ExitCode())
				}
				os.Exit(1)
			}
			// The window was closed, so exit.
			os.Exit(0)
		}()
		<-windowRunning

		go windowListenEvents(d)
	})
}

// Send a command to the separate process that manages the window. The command
// is a single line (without newline). The data part is optional binary data
// whose size must be derivable from the textual command.
func windowSendCommand(command string, data []byte) {
	windowLock.Lock()
	defer windowLock.Unlock()

	windowStdin.Write([]byte(command + "\n"))
	windowStdin.Write(data)
}

// Goroutine that listens for mouse events from the window process and turns
// them into touch state.
func windowListenEvents(d *Display) {
	r := bufio.NewReader(windowStdout)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			fmt.Fprintln(os.Stderr, "failed to read I/O events from window process:", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch cmd := fields[0]; cmd {
		case "mousedown", "mousemove":
			var x, y int
			fmt.Sscanf(line, "%s %d %d", &cmd, &x, &y)
			d.setMouse(true, x, y)
		case "mouseup":
			d.setMouse(false, 0, 0)
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}
