package app

import (
	"go.uber.org/zap"

	"github.com/Faultbox/glscene/internal/engine/audio"
	"github.com/Faultbox/glscene/internal/logger"
	"github.com/Faultbox/glscene/internal/projectile"
	smath "github.com/Faultbox/glscene/pkg/math"
)

// voicePlayer is the part of *audio.Manager the bubbles use.
type voicePlayer interface {
	Play3D(clip string, pos smath.Vec3, loop bool) (audio.VoiceID, error)
	SetVoicePosition(id audio.VoiceID, pos smath.Vec3)
	StopVoice(id audio.VoiceID)
	PlaySFX(clip string) error
}

// bubbleSounds adapts the audio manager's voices to projectile sound handles.
// When pop is set, every stopped voice is followed by that one-shot clip.
type bubbleSounds struct {
	voices voicePlayer
	pop    string
}

var _ projectile.AudioProvider = bubbleSounds{}

func (b bubbleSounds) Play3D(clip string, pos smath.Vec3, loop bool) (projectile.SoundHandle, error) {
	id, err := b.voices.Play3D(clip, pos, loop)
	if err != nil {
		return 0, err
	}
	return projectile.SoundHandle(id), nil
}

func (b bubbleSounds) SetPosition(h projectile.SoundHandle, pos smath.Vec3) {
	b.voices.SetVoicePosition(audio.VoiceID(h), pos)
}

func (b bubbleSounds) Stop(h projectile.SoundHandle) {
	b.voices.StopVoice(audio.VoiceID(h))
	if b.pop == "" {
		return
	}
	if err := b.voices.PlaySFX(b.pop); err != nil {
		logger.Debug("pop skipped", zap.Error(err))
	}
}

// musicControl is the part of *audio.Manager the music toggle uses.
type musicControl interface {
	IsBGMPlaying() bool
	PauseBGM()
	ResumeBGM()
	GetBGMPath() string
}

// toggleMusic pauses playing music or resumes paused music and reports
// whether it is playing afterwards. Without a track it does nothing.
func toggleMusic(m musicControl) bool {
	if m.GetBGMPath() == "" {
		return false
	}
	if m.IsBGMPlaying() {
		m.PauseBGM()
	} else {
		m.ResumeBGM()
	}
	return m.IsBGMPlaying()
}
