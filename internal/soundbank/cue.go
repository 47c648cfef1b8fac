// Package soundbank maps the announcer's fixed cue set to audio assets
// on disk, dispatches playback, and packages the whole set as a
// portable .soundbank archive.
package soundbank

import "fmt"

// Cue identifies one announcement sound. The set is closed and
// versioned with the archive format; free-form cue names are not
// accepted anywhere.
type Cue string

const (
	CueSessionStart Cue = "session_start"
	CuePoseStart    Cue = "pose_start"
	CueFiveMin      Cue = "five_min"
	CueOneMin       Cue = "one_min"
	CueThirtySec    Cue = "thirty_sec"
	CueOver         Cue = "over"
)

// cueOrder is the canonical enumeration order, used for manifest
// serialization and listings.
var cueOrder = []Cue{
	CueSessionStart,
	CuePoseStart,
	CueFiveMin,
	CueOneMin,
	CueThirtySec,
	CueOver,
}

var cueLabels = map[Cue]string{
	CueSessionStart: "Session Start",
	CuePoseStart:    "Pose Start",
	CueFiveMin:      "5 Minutes Remaining",
	CueOneMin:       "1 Minute Remaining",
	CueThirtySec:    "30 Seconds Remaining",
	CueOver:         "Over",
}

// Cues returns all cues in canonical order. The slice is a copy.
func Cues() []Cue {
	out := make([]Cue, len(cueOrder))
	copy(out, cueOrder)
	return out
}

// ParseCue validates a cue identifier.
func ParseCue(s string) (Cue, error) {
	c := Cue(s)
	if _, ok := cueLabels[c]; !ok {
		return "", fmt.Errorf("unknown cue %q (valid: %v)", s, cueOrder)
	}
	return c, nil
}

// Label returns the human-readable cue name.
func (c Cue) Label() string { return cueLabels[c] }

func (c Cue) String() string { return string(c) }
