package audio

import (
	"fmt"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	smath "github.com/Faultbox/glscene/pkg/math"
)

// VoiceID identifies a positional voice. The zero ID is never issued.
type VoiceID uint64

// Listener is the ear position used to pan and attenuate voices.
type Listener struct {
	Position smath.Vec3
	Right    smath.Vec3 // unit vector pointing to the listener's right
	Rolloff  float32    // gain = 1 / (1 + Rolloff*distance)
}

// DefaultListener sits at the origin facing -Z.
func DefaultListener() Listener {
	return Listener{Right: smath.V3(1, 0, 0), Rolloff: 0.5}
}

type voice struct {
	ctrl   *beep.Ctrl
	pan    *effects.Pan
	volume *effects.Volume
	pos    smath.Vec3
}

// spatialize returns the stereo pan (-1 left, 1 right) and linear gain for a
// source at pos.
func spatialize(l Listener, pos smath.Vec3) (pan, gain float64) {
	d := pos.Sub(l.Position)
	dist := d.Length()
	gain = 1 / (1 + float64(l.Rolloff)*float64(dist))
	if dist < smath.Epsilon {
		return 0, gain
	}
	pan = clamp(float64(d.Scale(1/dist).Dot(l.Right)), -1, 1)
	return pan, gain
}

// Play3D starts a loaded clip at pos. Looping voices play until StopVoice.
func (m *Manager) Play3D(clip string, pos smath.Vec3, loop bool) (VoiceID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return 0, ErrNotInitialized
	}
	buf, ok := m.clips[clip]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownClip, clip)
	}

	src := buf.Streamer(0, buf.Len())
	var s beep.Streamer = src
	if loop {
		s = &loopStreamer{seeker: src, resampled: src}
	}

	v := &voice{pos: pos}
	v.ctrl = &beep.Ctrl{Streamer: s}
	v.pan = &effects.Pan{Streamer: v.ctrl}
	v.volume = &effects.Volume{Streamer: v.pan, Base: 2}
	m.applyVoiceInternal(v)

	m.nextVoice++
	id := m.nextVoice
	m.voices[id] = v

	speaker.Lock()
	m.sfxMixer.Add(v.volume)
	speaker.Unlock()
	return id, nil
}

// SetVoicePosition moves a voice. Unknown IDs are ignored.
func (m *Manager) SetVoicePosition(id VoiceID, pos smath.Vec3) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.voices[id]
	if !ok {
		return
	}
	v.pos = pos

	speaker.Lock()
	m.applyVoiceInternal(v)
	speaker.Unlock()
}

// StopVoice silences a voice and forgets it. Unknown IDs are ignored.
func (m *Manager) StopVoice(id VoiceID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.voices[id]
	if !ok {
		return
	}
	delete(m.voices, id)

	// A drained Ctrl is dropped by the mixer on its next pass.
	speaker.Lock()
	v.ctrl.Streamer = nil
	speaker.Unlock()
}

// VoiceCount returns the number of live voices.
func (m *Manager) VoiceCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.voices)
}

// SetListener moves the ear and re-pans every voice.
func (m *Manager) SetListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = l
	m.respatializeInternal()
}

func (m *Manager) respatializeInternal() {
	if len(m.voices) == 0 {
		return
	}
	speaker.Lock()
	for _, v := range m.voices {
		m.applyVoiceInternal(v)
	}
	speaker.Unlock()
}

func (m *Manager) applyVoiceInternal(v *voice) {
	pan, gain := spatialize(m.listener, v.pos)
	vol := gain * m.masterVolume * m.sfxVolLevel
	v.pan.Pan = pan
	v.volume.Volume = volumeToExp(vol)
	v.volume.Silent = vol <= 0
}

func (m *Manager) stopAllVoicesInternal() {
	speaker.Lock()
	for id, v := range m.voices {
		v.ctrl.Streamer = nil
		delete(m.voices, id)
	}
	speaker.Unlock()
}
