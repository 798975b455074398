package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/munnaproff08-wq/suvarna-prompt/internal/config"
)

// editRecording handles the recording settings
func editRecording(cfg *config.Config) error {
	sampleRate := strconv.Itoa(cfg.Recording.SampleRate)
	channels := strconv.Itoa(cfg.Recording.Channels)
	frameSamples := strconv.Itoa(cfg.Recording.FrameSamples)
	device := cfg.Recording.Device
	channelBufferSize := strconv.Itoa(cfg.Recording.ChannelBufferSize)
	timeout := cfg.Recording.Timeout.String()
	resetBuffer := cfg.General.ResetBufferOnStart

	channelOptions := []huh.Option[string]{
		huh.NewOption("1 (Mono) - Recommended", "1"),
		huh.NewOption("2 (Stereo)", "2"),
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sample Rate (Hz)").
				Description("The live transcription API expects 16000").
				Placeholder("16000").
				Value(&sampleRate).
				Validate(validatePositiveInt),
			huh.NewSelect[string]().
				Title("Channels").
				Description("Number of audio channels").
				Options(channelOptions...).
				Value(&channels),
			huh.NewInput().
				Title("Frame Samples").
				Description("Samples per frame sent to the live session").
				Placeholder("4096").
				Value(&frameSamples).
				Validate(validatePositiveInt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Device").
				Description("PipeWire device name. Empty uses the default microphone.").
				Placeholder("(default)").
				Value(&device),
			huh.NewInput().
				Title("Channel Buffer Size").
				Description("Number of audio frames to buffer").
				Placeholder("30").
				Value(&channelBufferSize).
				Validate(validatePositiveInt),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Recording Timeout").
				Description("Maximum recording duration (e.g., '30s', '2m', '5m')").
				Placeholder("5m").
				Value(&timeout).
				Validate(validateDuration),
			huh.NewConfirm().
				Title("Clear the transcript when recording starts?").
				Description("Off keeps appending across recordings until you convert or cancel").
				Value(&resetBuffer),
		),
	).WithTheme(getTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Recording.SampleRate, _ = strconv.Atoi(sampleRate)
	cfg.Recording.Channels, _ = strconv.Atoi(channels)
	cfg.Recording.FrameSamples, _ = strconv.Atoi(frameSamples)
	cfg.Recording.Device = device
	cfg.Recording.ChannelBufferSize, _ = strconv.Atoi(channelBufferSize)
	cfg.Recording.Timeout, _ = time.ParseDuration(timeout)
	cfg.General.ResetBufferOnStart = resetBuffer

	return nil
}
