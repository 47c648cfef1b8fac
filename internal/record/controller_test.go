package record

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atelierlibre/posecue/internal/audio"
	"github.com/atelierlibre/posecue/internal/soundbank"
)

// fakeRecorder optionally materializes the output file on Stop, the
// way a real capture run does.
type fakeRecorder struct {
	startErr  error
	writeFile bool
	path      string
}

func (r *fakeRecorder) Start(outputPath string) error {
	if r.startErr != nil {
		return r.startErr
	}
	r.path = outputPath
	return nil
}

func (r *fakeRecorder) Stop() error {
	if r.writeFile {
		return os.WriteFile(r.path, []byte("pcm"), 0o644)
	}
	return nil
}

func newTestController(t *testing.T, rec *fakeRecorder) (*Controller, *soundbank.Bank) {
	t.Helper()
	bank, err := soundbank.New(t.TempDir(), audio.NoopSink{})
	require.NoError(t, err)
	c := NewController(bank, rec)
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c, bank
}

func TestRecord_SuccessRegistersCue(t *testing.T) {
	c, bank := newTestController(t, &fakeRecorder{writeFile: true})

	path, err := c.Start(soundbank.CueOver)
	require.NoError(t, err)
	require.Contains(t, path, "over_1700000000.wav")

	saved, err := c.Stop()
	require.NoError(t, err)
	require.Equal(t, path, saved)
	require.Equal(t, path, bank.CueFile(soundbank.CueOver))
}

func TestRecord_MissingOutputFileDoesNotMutateBank(t *testing.T) {
	c, bank := newTestController(t, &fakeRecorder{writeFile: false})

	_, err := c.Start(soundbank.CuePoseStart)
	require.NoError(t, err)

	_, err = c.Stop()
	var rerr *RecordingError
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, soundbank.CuePoseStart, rerr.Cue)
	require.Empty(t, bank.CueFile(soundbank.CuePoseStart))
}

func TestRecord_DeviceUnavailable(t *testing.T) {
	c, _ := newTestController(t, &fakeRecorder{startErr: errors.New("no input device")})

	_, err := c.Start(soundbank.CueOneMin)
	var rerr *RecordingError
	require.ErrorAs(t, err, &rerr)
}

func TestRecord_RefusesConcurrentRecordings(t *testing.T) {
	c, _ := newTestController(t, &fakeRecorder{writeFile: true})

	_, err := c.Start(soundbank.CueOver)
	require.NoError(t, err)

	_, err = c.Start(soundbank.CueOneMin)
	require.Error(t, err)

	_, err = c.Stop()
	require.NoError(t, err)

	// A fresh recording is allowed once the previous one stopped.
	_, err = c.Start(soundbank.CueOneMin)
	require.NoError(t, err)
}

func TestStop_WithoutStart(t *testing.T) {
	c, _ := newTestController(t, &fakeRecorder{})
	_, err := c.Stop()
	require.Error(t, err)
}
