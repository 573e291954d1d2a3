package domain

// Settings are the user-adjustable options consulted by session transitions.
type Settings struct {
	VoiceEnabled bool `toml:"voice_enabled"`
	ShowTips     bool `toml:"show_tips"`
	AutoAdvance  bool `toml:"auto_advance"`
	SoundEnabled bool `toml:"sound_enabled"`
	CompactMode  bool `toml:"compact_mode"`
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() Settings {
	return Settings{
		VoiceEnabled: false,
		ShowTips:     true,
		AutoAdvance:  false,
		SoundEnabled: true,
		CompactMode:  false,
	}
}

// SettingsPatch is a partial update. Nil fields keep their prior value.
type SettingsPatch struct {
	VoiceEnabled *bool `toml:"voice_enabled"`
	ShowTips     *bool `toml:"show_tips"`
	AutoAdvance  *bool `toml:"auto_advance"`
	SoundEnabled *bool `toml:"sound_enabled"`
	CompactMode  *bool `toml:"compact_mode"`
}

// Apply shallow-merges the patch into s and returns the result.
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.VoiceEnabled != nil {
		s.VoiceEnabled = *p.VoiceEnabled
	}
	if p.ShowTips != nil {
		s.ShowTips = *p.ShowTips
	}
	if p.AutoAdvance != nil {
		s.AutoAdvance = *p.AutoAdvance
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	if p.CompactMode != nil {
		s.CompactMode = *p.CompactMode
	}
	return s
}

// Bool is a helper for building patches inline.
func Bool(v bool) *bool { return &v }
