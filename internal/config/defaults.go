package config

const (
	defaultWorkDir          = "~/.local/share/scribe/work"
	defaultLogDir           = "~/.local/share/scribe/logs"
	defaultModelCacheDir    = "~/.cache/scribe/models"
	defaultWhisperModel     = "base"
	defaultWhisperDevice    = "cpu"
	defaultWhisperCommand   = "whisper"
	defaultCloudMediaFormat = "wav"
	defaultCloudPollSeconds = 5
	defaultCloudPollTimeout = 1800
	defaultCloudHTTPTimeout = 60
	defaultTranslationURL   = "http://localhost:5000"
	defaultTranslationTO    = 30
	defaultAudioSampleRate  = 16000
	defaultAudioChannels    = 1
	defaultAudioBitrate     = "192k"
	defaultAudioCodec       = "pcm_s16le"
	defaultAudioFormat      = "wav"
	defaultSubtitleCodec    = "mov_text"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// WhisperModels enumerates the model size keys the local backend accepts.
var WhisperModels = []string{"tiny", "base", "small", "medium", "large"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:       defaultWorkDir,
			LogDir:        defaultLogDir,
			ModelCacheDir: defaultModelCacheDir,
		},
		Whisper: Whisper{
			Model:   defaultWhisperModel,
			Device:  defaultWhisperDevice,
			Command: defaultWhisperCommand,
		},
		Cloud: Cloud{
			MediaFormat:    defaultCloudMediaFormat,
			PollInterval:   defaultCloudPollSeconds,
			PollTimeout:    defaultCloudPollTimeout,
			TimeoutSeconds: defaultCloudHTTPTimeout,
		},
		Translation: Translation{
			URL:            defaultTranslationURL,
			TimeoutSeconds: defaultTranslationTO,
		},
		Audio: Audio{
			SampleRate: defaultAudioSampleRate,
			Channels:   defaultAudioChannels,
			Bitrate:    defaultAudioBitrate,
			Codec:      defaultAudioCodec,
			Format:     defaultAudioFormat,
		},
		Mux: Mux{
			SubtitleCodec: defaultSubtitleCodec,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
