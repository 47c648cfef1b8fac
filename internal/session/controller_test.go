package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atelierlibre/posecue/internal/soundbank"
)

type fakeCountdown struct {
	starts []int
	stops  int
}

func (f *fakeCountdown) Start(seconds int) { f.starts = append(f.starts, seconds) }
func (f *fakeCountdown) Stop()             { f.stops++ }

type fakeAnnouncer struct {
	played []soundbank.Cue
}

func (f *fakeAnnouncer) Play(cue soundbank.Cue) { f.played = append(f.played, cue) }

func newTestController() (*Controller, *fakeCountdown, *fakeAnnouncer) {
	cd := &fakeCountdown{}
	an := &fakeAnnouncer{}
	return NewController(cd, an), cd, an
}

// runPose simulates the engine completing the current pose.
func runPose(c *Controller) { c.PoseFinished() }

func TestAddPose_RejectsNonPositiveDurations(t *testing.T) {
	c, _, _ := newTestController()

	require.False(t, c.AddPose(0, 0))
	require.False(t, c.AddPose(0, -30))
	require.False(t, c.AddPose(-1, 30))
	require.Empty(t, c.Poses())

	require.True(t, c.AddPose(1, 30))
	poses := c.Poses()
	require.Len(t, poses, 1)
	require.Equal(t, 90, poses[0].Seconds)
	require.Equal(t, "1:30", poses[0].Label())
}

func TestStartSession_EmptyListIsNoOp(t *testing.T) {
	c, cd, an := newTestController()

	require.False(t, c.StartSession())
	require.Equal(t, StateIdle, c.State())
	require.Equal(t, -1, c.CurrentIndex())
	require.Empty(t, cd.starts)
	require.Empty(t, an.played)
}

func TestSession_AutoAdvanceRunsToCompletion(t *testing.T) {
	c, cd, an := newTestController()
	c.AddPose(0, 5)
	c.AddPose(0, 3)

	require.True(t, c.StartSession())
	require.Equal(t, StatePoseActive, c.State())
	require.Equal(t, 0, c.CurrentIndex())
	require.Equal(t, []soundbank.Cue{soundbank.CueSessionStart, soundbank.CuePoseStart}, an.played)
	require.Equal(t, []int{5}, cd.starts)

	// First pose completes: over, then auto-advance into pose two.
	runPose(c)
	require.Equal(t, StatePoseActive, c.State())
	require.Equal(t, 1, c.CurrentIndex())
	require.Equal(t, []soundbank.Cue{
		soundbank.CueSessionStart, soundbank.CuePoseStart,
		soundbank.CueOver, soundbank.CuePoseStart,
	}, an.played)
	require.Equal(t, []int{5, 3}, cd.starts)

	// Last pose completes: over, then session complete.
	runPose(c)
	require.Equal(t, StateSessionComplete, c.State())
	require.Equal(t, soundbank.CueOver, an.played[len(an.played)-1])
	require.Equal(t, []int{5, 3}, cd.starts)

	// A stray completion event after the session ended is ignored.
	runPose(c)
	require.Equal(t, StateSessionComplete, c.State())
	require.Equal(t, []int{5, 3}, cd.starts)
}

func TestSession_ManualAdvance(t *testing.T) {
	c, cd, _ := newTestController()
	c.AddPose(0, 5)
	c.AddPose(0, 3)
	c.SetAutoAdvance(false)

	c.StartSession()
	runPose(c)
	require.Equal(t, StatePoseFinishedManual, c.State())
	require.Equal(t, []int{5}, cd.starts)

	// Manual advance restarts the countdown at the next pose.
	require.True(t, c.NextPose())
	require.Equal(t, StatePoseActive, c.State())
	require.Equal(t, 1, c.CurrentIndex())
	require.Equal(t, []int{5, 3}, cd.starts)

	runPose(c)
	require.Equal(t, StatePoseFinishedManual, c.State())

	// List exhausted: NextPose is a no-op.
	require.False(t, c.NextPose())
	require.Equal(t, StatePoseFinishedManual, c.State())
	require.Equal(t, []int{5, 3}, cd.starts)
}

func TestNextPose_SkipsAheadWhileActive(t *testing.T) {
	c, cd, _ := newTestController()
	c.AddPose(5, 0)
	c.AddPose(3, 0)

	c.StartSession()
	require.True(t, c.NextPose())
	require.Equal(t, 1, c.CurrentIndex())
	require.Equal(t, []int{300, 180}, cd.starts)

	// No next pose left.
	require.False(t, c.NextPose())
}

func TestNextPose_InvalidStates(t *testing.T) {
	c, _, _ := newTestController()
	c.AddPose(0, 5)

	// Idle: nothing to advance.
	require.False(t, c.NextPose())

	c.StartSession()
	runPose(c)
	require.Equal(t, StateSessionComplete, c.State())
	require.False(t, c.NextPose())
}

func TestSetAutoAdvance_TakesEffectOnNextCompletion(t *testing.T) {
	c, _, _ := newTestController()
	c.AddPose(0, 5)
	c.AddPose(0, 3)

	c.StartSession()
	c.SetAutoAdvance(false)
	require.Equal(t, StatePoseActive, c.State(), "toggling must not affect the running countdown")

	runPose(c)
	require.Equal(t, StatePoseFinishedManual, c.State())

	c.SetAutoAdvance(true)
	c.NextPose()
	runPose(c)
	require.Equal(t, StateSessionComplete, c.State())
}

func TestHandleTick_AnnouncesThresholds(t *testing.T) {
	c, _, an := newTestController()
	c.AddPose(6, 0) // 360s
	c.StartSession()
	an.played = nil

	c.HandleTick(359)
	c.HandleTick(301)
	require.Empty(t, an.played)

	c.HandleTick(300)
	require.Equal(t, []soundbank.Cue{soundbank.CueFiveMin}, an.played)

	// Same threshold never fires twice within a pose.
	c.HandleTick(299)
	require.Len(t, an.played, 1)

	c.HandleTick(61)
	c.HandleTick(60)
	require.Equal(t, soundbank.CueOneMin, an.played[len(an.played)-1])

	// A jittery jump across a threshold still fires it.
	c.HandleTick(29)
	require.Equal(t, soundbank.CueThirtySec, an.played[len(an.played)-1])
	require.Len(t, an.played, 3)
}

func TestHandleTick_NoThresholdAtPoseStartOrZero(t *testing.T) {
	c, _, an := newTestController()
	c.AddPose(5, 0) // exactly 300s
	c.StartSession()
	an.played = nil

	// The opening tick carries the full duration; announcing "five
	// minutes remaining" on top of pose_start would be noise.
	c.HandleTick(300)
	require.Empty(t, an.played)

	c.HandleTick(299)
	require.Empty(t, an.played)
}

func TestHandleTick_ShortPosesStayQuiet(t *testing.T) {
	c, _, an := newTestController()
	c.AddPose(0, 5)
	c.StartSession()
	an.played = nil

	for r := 5; r >= 0; r-- {
		c.HandleTick(r)
	}
	require.Empty(t, an.played, "5s pose never crosses an announcement threshold")
}
