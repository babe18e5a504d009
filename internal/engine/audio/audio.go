// Package audio provides audio playback for background music, one-shot sound
// effects and positional voices that follow objects in the scene.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	// ErrNotInitialized is returned by playback calls before Init succeeds.
	ErrNotInitialized = errors.New("audio not initialized")
	// ErrUnknownClip is returned when playing a clip that was never loaded.
	ErrUnknownClip = errors.New("unknown audio clip")
)

// Manager handles audio playback for the scene.
type Manager struct {
	mu sync.RWMutex

	// State
	initialized bool
	sampleRate  beep.SampleRate

	// BGM
	bgmStreamer beep.StreamSeekCloser
	bgmCtrl     *beep.Ctrl
	bgmVolume   *effects.Volume
	bgmPlaying  bool
	bgmPath     string

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	bgmVolLevel  float64
	sfxVolLevel  float64

	// SFX mixer for concurrent sound effects and voices
	sfxMixer *beep.Mixer

	// Decoded clips by name
	clips map[string]*beep.Buffer

	// Positional voices
	voices    map[VoiceID]*voice
	nextVoice VoiceID
	listener  Listener
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		bgmVolLevel:  0.7,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
		clips:        make(map[string]*beep.Buffer),
		voices:       make(map[VoiceID]*voice),
		listener:     DefaultListener(),
	}
}

// Init initializes the audio system.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	// Start SFX mixer
	speaker.Play(m.sfxMixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.stopAllVoicesInternal()
	m.stopBGMInternal()
	speaker.Clear()
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.updateBGMVolume()
	m.respatializeInternal()
}

// SetBGMVolume sets the BGM volume (0.0 to 1.0).
func (m *Manager) SetBGMVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bgmVolLevel = clamp(vol, 0, 1)
	m.updateBGMVolume()
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
	m.respatializeInternal()
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetBGMVolume returns the BGM volume.
func (m *Manager) GetBGMVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bgmVolLevel
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

func (m *Manager) updateBGMVolume() {
	if m.bgmVolume != nil {
		vol := m.masterVolume * m.bgmVolLevel
		m.bgmVolume.Silent = vol <= 0
		m.bgmVolume.Volume = volumeToExp(vol)
	}
}

// volumeToExp converts a 0-1 amplitude to the base-2 exponent effects.Volume expects.
// vol=1 -> 0, vol=0.5 -> -1, vol=0.25 -> -2.
func volumeToExp(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return math.Log2(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LoadClip decodes WAV data into memory under name, resampled to the output rate.
func (m *Manager) LoadClip(name string, data []byte) error {
	streamer, format, err := wav.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	var s beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		s = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("read wav %s: %w", name, err)
	}

	m.clips[name] = buf
	return nil
}

// LoadClipFile reads a WAV file and loads it under name.
func (m *Manager) LoadClipFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read clip: %w", err)
	}
	return m.LoadClip(name, data)
}

// ClipLen returns the length of a loaded clip in samples.
func (m *Manager) ClipLen(name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.clips[name]
	if !ok {
		return 0, false
	}
	return buf.Len(), true
}

// PlayBGM plays background music from WAV data.
// If loop is true, the music will loop indefinitely.
func (m *Manager) PlayBGM(data []byte, path string, loop bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return ErrNotInitialized
	}

	// Stop current BGM
	m.stopBGMInternal()

	// Decode WAV
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}

	// Resample if needed
	var resampled beep.Streamer
	if format.SampleRate != m.sampleRate {
		resampled = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	} else {
		resampled = streamer
	}

	var finalStreamer beep.Streamer = resampled
	if loop {
		finalStreamer = &loopStreamer{seeker: streamer, resampled: resampled}
	}

	m.bgmCtrl = &beep.Ctrl{Streamer: finalStreamer, Paused: false}
	m.bgmVolume = &effects.Volume{
		Streamer: m.bgmCtrl,
		Base:     2,
	}
	m.updateBGMVolume()

	m.bgmStreamer = streamer
	m.bgmPath = path
	m.bgmPlaying = true

	speaker.Play(m.bgmVolume)
	return nil
}

// PlayBGMFile reads a WAV file and plays it as background music.
func (m *Manager) PlayBGMFile(path string, loop bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bgm: %w", err)
	}
	return m.PlayBGM(data, path, loop)
}

func (m *Manager) stopBGMInternal() {
	if m.bgmCtrl != nil {
		speaker.Lock()
		m.bgmCtrl.Streamer = nil
		speaker.Unlock()
	}
	m.bgmPlaying = false
	if m.bgmStreamer != nil {
		m.bgmStreamer.Close()
		m.bgmStreamer = nil
	}
	m.bgmCtrl = nil
	m.bgmVolume = nil
	m.bgmPath = ""
}

// PauseBGM pauses the current background music.
func (m *Manager) PauseBGM() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bgmCtrl != nil {
		speaker.Lock()
		m.bgmCtrl.Paused = true
		speaker.Unlock()
		m.bgmPlaying = false
	}
}

// ResumeBGM resumes the paused background music.
func (m *Manager) ResumeBGM() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bgmCtrl != nil {
		speaker.Lock()
		m.bgmCtrl.Paused = false
		speaker.Unlock()
		m.bgmPlaying = true
	}
}

// IsBGMPlaying returns whether BGM is currently playing.
func (m *Manager) IsBGMPlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bgmPlaying
}

// GetBGMPath returns the path of the currently playing BGM.
func (m *Manager) GetBGMPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bgmPath
}

// PlaySFX plays a loaded clip once, unpositioned.
func (m *Manager) PlaySFX(clip string) error {
	m.mu.RLock()
	initialized := m.initialized
	sfxVol := m.masterVolume * m.sfxVolLevel
	buf, ok := m.clips[clip]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownClip, clip)
	}

	// Add to mixer (concurrent playback)
	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToExp(sfxVol),
		Silent:   sfxVol <= 0,
	})
	speaker.Unlock()
	return nil
}

// loopStreamer wraps a streamer to make it loop.
type loopStreamer struct {
	seeker    beep.StreamSeeker
	resampled beep.Streamer
}

func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		n, ok := l.resampled.Stream(samples[filled:])
		filled += n
		if !ok {
			// Reset to beginning
			if err := l.seeker.Seek(0); err != nil {
				return filled, false
			}
			if n == 0 && l.seeker.Len() == 0 {
				return filled, false
			}
		}
	}
	return filled, true
}

func (l *loopStreamer) Err() error {
	return l.seeker.Err()
}
