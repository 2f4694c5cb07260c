// Command scribe generates subtitles for video files. It extracts the audio
// track with ffmpeg, transcribes it locally through whisper or remotely
// through an asynchronous transcription service, and writes SRT subtitles,
// optionally translating them or muxing them back into the video.
package main
