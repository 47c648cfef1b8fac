// Package session orchestrates the pose list, the countdown engine,
// and the announcer: which cue plays at which transition, whether the
// session auto-advances, and which pose is current.
package session

import (
	"github.com/atelierlibre/posecue/internal/format"
	"github.com/atelierlibre/posecue/internal/soundbank"
)

// State is the session's position in its lifecycle.
type State string

const (
	StateIdle               State = "IDLE"
	StatePoseActive         State = "POSE_ACTIVE"
	StatePoseFinishedManual State = "POSE_FINISHED"
	StateSessionComplete    State = "SESSION_COMPLETE"
)

// Pose is one timed pose. Immutable once added.
type Pose struct {
	Seconds int
}

// Label renders the pose duration as a clock label ("1:30").
func (p Pose) Label() string { return format.HHMMSS(p.Seconds) }

// Countdown is the engine surface the controller drives.
type Countdown interface {
	Start(seconds int)
	Stop()
}

// Announcer plays announcement cues. Playback must be fire-and-forget.
type Announcer interface {
	Play(cue soundbank.Cue)
}

// remaining-time thresholds announced mid-pose, in descending order.
var thresholdCues = []struct {
	seconds int
	cue     soundbank.Cue
}{
	{300, soundbank.CueFiveMin},
	{60, soundbank.CueOneMin},
	{30, soundbank.CueThirtySec},
}

// Controller is the session state machine. All methods must be called
// from a single goroutine; the engine's events are expected to be
// forwarded to PoseFinished and HandleTick from that same goroutine.
type Controller struct {
	countdown Countdown
	announcer Announcer

	poses       []Pose
	index       int
	autoAdvance bool
	state       State

	// last remaining value seen within the current pose, for
	// threshold crossing detection.
	lastRemaining int
}

// NewController creates an idle controller with auto-advance enabled.
func NewController(countdown Countdown, announcer Announcer) *Controller {
	return &Controller{
		countdown:   countdown,
		announcer:   announcer,
		index:       -1,
		autoAdvance: true,
		state:       StateIdle,
	}
}

// AddPose appends a pose of minutes*60+seconds to the list. A
// non-positive total is silently rejected with no state change.
func (c *Controller) AddPose(minutes, seconds int) bool {
	total := minutes*60 + seconds
	if total <= 0 {
		return false
	}
	c.poses = append(c.poses, Pose{Seconds: total})
	return true
}

// Poses returns a copy of the pose list in playback order.
func (c *Controller) Poses() []Pose {
	out := make([]Pose, len(c.poses))
	copy(out, c.poses)
	return out
}

// CurrentIndex returns the zero-based current pose index, -1 before
// the session starts.
func (c *Controller) CurrentIndex() int { return c.index }

// CurrentPose returns the pose being timed, if any.
func (c *Controller) CurrentPose() (Pose, bool) {
	if c.index < 0 || c.index >= len(c.poses) {
		return Pose{}, false
	}
	return c.poses[c.index], true
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// AutoAdvance reports whether completed poses flow into the next one
// automatically.
func (c *Controller) AutoAdvance() bool { return c.autoAdvance }

// SetAutoAdvance flips the auto-advance flag. Takes effect on the next
// pose completion; an in-progress countdown is unaffected.
func (c *Controller) SetAutoAdvance(on bool) { c.autoAdvance = on }

// StartSession begins the session at the first pose, announcing the
// session start. No-op when the pose list is empty.
func (c *Controller) StartSession() bool {
	if len(c.poses) == 0 {
		return false
	}
	c.index = 0
	c.announcer.Play(soundbank.CueSessionStart)
	c.startPose()
	return true
}

func (c *Controller) startPose() {
	pose := c.poses[c.index]
	c.state = StatePoseActive
	c.lastRemaining = pose.Seconds
	c.announcer.Play(soundbank.CuePoseStart)
	c.countdown.Start(pose.Seconds)
}

// NextPose advances to the next pose on explicit request. Valid while
// a pose is active or after a pose finished without auto-advance;
// no-op when the list is exhausted.
func (c *Controller) NextPose() bool {
	if c.state != StatePoseActive && c.state != StatePoseFinishedManual {
		return false
	}
	if c.index >= len(c.poses)-1 {
		return false
	}
	c.index++
	c.startPose()
	return true
}

// PoseFinished reacts to the engine's completion event: always plays
// the over cue, then advances, completes the session, or waits for a
// manual advance depending on the auto-advance flag and remaining
// poses.
func (c *Controller) PoseFinished() {
	if c.state != StatePoseActive {
		return
	}
	c.announcer.Play(soundbank.CueOver)

	if !c.autoAdvance {
		c.state = StatePoseFinishedManual
		return
	}
	if c.index < len(c.poses)-1 {
		c.index++
		c.startPose()
		return
	}
	c.state = StateSessionComplete
}

// HandleTick observes a remaining-seconds tick. Ticks drive only the
// remaining-time announcements; they never change the state machine.
func (c *Controller) HandleTick(remaining int) {
	if c.state != StatePoseActive {
		return
	}
	for _, th := range thresholdCues {
		if c.lastRemaining > th.seconds && remaining <= th.seconds && remaining > 0 {
			c.announcer.Play(th.cue)
			break
		}
	}
	c.lastRemaining = remaining
}
