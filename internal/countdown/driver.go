package countdown

import (
	"sync"
	"time"

	"github.com/sandeepkv93/neuroflow/internal/scheduler"
)

type State struct {
	Remaining int
	Initial   int
	Running   bool
	Mode      Mode
	Expired   bool
}

// Driver binds a Session to a scheduler slot for callers outside the TUI.
// Session expiry hooks run with the driver locked and must not call back into
// the driver; use Driver.OnTick and State.Expired instead.
type Driver struct {
	mu       sync.Mutex
	session  *Session
	slot     *scheduler.Slot
	interval time.Duration
	onTick   func(State)
}

func NewDriver(session *Session, engine *scheduler.Engine, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second
	}
	return &Driver{
		session:  session,
		slot:     scheduler.NewSlot(engine),
		interval: interval,
	}
}

// OnTick runs after every tick that reached the session, on the scheduler
// goroutine.
func (d *Driver) OnTick(fn func(State)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onTick = fn
}

func (d *Driver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.session.Start() {
		return nil
	}
	_, err := d.slot.Start(d.interval, d.tick)
	if err != nil {
		d.session.Pause()
	}
	return err
}

func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.session.Pause()
	d.slot.Stop()
}

func (d *Driver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.session.Reset()
	d.slot.Stop()
}

func (d *Driver) SetDuration(seconds int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.SetDuration(seconds)
}

func (d *Driver) Adjust(deltaSec int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.Adjust(deltaSec)
}

// Close detaches the driver from the scheduler and pauses the session.
func (d *Driver) Close() {
	d.Pause()
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stateLocked(false)
}

func (d *Driver) Attached() bool {
	return d.slot.Live()
}

func (d *Driver) tick(tk scheduler.Tick) {
	d.mu.Lock()
	if !d.slot.Owns(tk.Handle) {
		d.mu.Unlock()
		return
	}
	expired := d.session.Tick()
	if !d.session.Running() {
		d.slot.Stop()
	}
	st := d.stateLocked(expired)
	fn := d.onTick
	d.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}

func (d *Driver) stateLocked(expired bool) State {
	return State{
		Remaining: d.session.Remaining(),
		Initial:   d.session.Initial(),
		Running:   d.session.Running(),
		Mode:      d.session.Mode(),
		Expired:   expired,
	}
}
