package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/reel/internal/command"
	"github.com/llehouerou/reel/internal/config"
	"github.com/llehouerou/reel/internal/engine"
	"github.com/llehouerou/reel/internal/errmsg"
	"github.com/llehouerou/reel/internal/playback"
	"github.com/llehouerou/reel/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	log := setupLogger(cfg.GetLogsConfig())

	mgr, err := session.Open()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpSessionOpen, err))
	}
	defer mgr.Close()

	ec := cfg.GetEngineConfig()
	eng := engine.NewSim(engine.SimConfig{
		Latency:   ec.Latency(),
		Duration:  ec.DurationS,
		FailKinds: ec.FailKinds,
	})
	defer eng.Close()

	svc := playback.New(eng, capabilities(cfg), log)
	defer svc.Close()

	go watch(svc, mgr, log)

	if cfg.ShouldRestoreSession() {
		restoreSession(svc, mgr, log)
	}

	fmt.Println("reel playback console - type 'help' for commands")
	return repl(svc)
}

// setupLogger configures logrus from the logs section of the config.
func setupLogger(lc config.LogsConfig) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)

	if lc.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// capabilities resolves platform capabilities with the config override.
func capabilities(cfg *config.Config) playback.Capabilities {
	caps := playback.DetectCapabilities()
	switch cfg.Playback.PiP {
	case "on":
		caps.PiP = true
	case "off":
		caps.PiP = false
	}
	return caps
}

// restoreSession replays persisted settings through the dispatcher so they
// take the same validated path as live input. Only values differing from
// the initial state are submitted.
func restoreSession(svc playback.Service, mgr *session.Manager, log *logrus.Logger) {
	saved, err := mgr.Get()
	if err != nil {
		log.Warn(errmsg.Format(errmsg.OpSessionRestore, err))
		return
	}

	defaults := session.DefaultSettings()
	var cmds []command.Command

	if saved.Volume != defaults.Volume {
		cmds = append(cmds, command.SetVolume{Level: saved.Volume})
	}
	if saved.Muted {
		cmds = append(cmds, command.Mute{})
	}
	if saved.Speed != defaults.Speed {
		cmds = append(cmds, command.SetPlaybackSpeed{Speed: saved.Speed})
	}
	if saved.SubtitleLanguage != "" {
		cmds = append(cmds, command.SetSubtitles{Language: saved.SubtitleLanguage})
	}
	if saved.AudioTrack != "" {
		cmds = append(cmds, command.SelectAudioTrack{Language: saved.AudioTrack})
	}
	if !saved.Looping {
		cmds = append(cmds, command.Unloop{})
	}
	if saved.Brightness != defaults.Brightness {
		cmds = append(cmds, command.SetBrightness{Value: saved.Brightness})
	}
	if saved.Contrast != defaults.Contrast {
		cmds = append(cmds, command.SetContrast{Value: saved.Contrast})
	}
	for _, h := range saved.Filters {
		cmds = append(cmds, command.ApplyFilter{Filter: command.Handle(h)})
	}
	for _, h := range saved.Vectors {
		cmds = append(cmds, command.AddVector{Builder: command.Handle(h)})
	}

	for _, cmd := range cmds {
		if _, err := svc.Submit(cmd); err != nil {
			log.Warn(errmsg.FormatWith(errmsg.OpSessionRestore, command.Name(cmd), err))
		}
	}
}

// watch persists settings on every published snapshot (debounced by the
// session manager) and reports asynchronous effect failures.
func watch(svc playback.Service, mgr *session.Manager, log *logrus.Logger) {
	sub := svc.Subscribe()
	for {
		select {
		case st := <-sub.States:
			mgr.Save(settingsFrom(st))
		case e := <-sub.Errors:
			log.Error(errmsg.Format(opForEffect(e.Op), e.Err))
		case <-sub.Done:
			return
		}
	}
}

// settingsFrom extracts the durable subset of a snapshot.
func settingsFrom(st playback.State) session.Settings {
	filters := make([]string, len(st.ActiveFilters))
	for i, h := range st.ActiveFilters {
		filters[i] = string(h)
	}
	vectors := make([]string, len(st.ActiveVectors))
	for i, h := range st.ActiveVectors {
		vectors[i] = string(h)
	}
	return session.Settings{
		Volume:           st.Volume,
		Muted:            st.Muted,
		Speed:            st.Speed,
		SubtitleLanguage: st.SubtitleLanguage,
		AudioTrack:       st.SelectedAudioTrack,
		Looping:          st.Looping,
		Brightness:       st.Brightness,
		Contrast:         st.Contrast,
		Filters:          filters,
		Vectors:          vectors,
	}
}

func opForEffect(kind string) errmsg.Op {
	switch kind {
	case "seek":
		return errmsg.OpSeek
	case "play":
		return errmsg.OpPlay
	case "pause":
		return errmsg.OpPause
	case "enable_subtitles", "disable_subtitles":
		return errmsg.OpSubtitle
	case "apply_color":
		return errmsg.OpColor
	case "rebuild_filter_chain":
		return errmsg.OpFilter
	case "rebuild_vector_overlay":
		return errmsg.OpVector
	case "select_audio":
		return errmsg.OpAudio
	case "enter_pip", "exit_pip":
		return errmsg.OpPiP
	default:
		return errmsg.OpSubmit
	}
}

func repl(svc playback.Service) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		fields := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			printHelp()
			continue
		case "state":
			fmt.Println(formatState(svc.State()))
			continue
		}

		cmd, err := parseCommand(fields)
		if err != nil {
			fmt.Println(err)
			continue
		}

		st, err := svc.Submit(cmd)
		if err != nil {
			fmt.Println(errmsg.Format(errmsg.OpSubmit, err))
			continue
		}
		fmt.Println(formatState(st))
	}
}

func parseCommand(fields []string) (command.Command, error) {
	arg := func(i int) string {
		if i < len(fields) {
			return fields[i]
		}
		return ""
	}
	num := func(i int) (float64, error) {
		v, err := strconv.ParseFloat(arg(i), 64)
		if err != nil {
			return 0, fmt.Errorf("usage: %s <number>", fields[0])
		}
		return v, nil
	}

	switch fields[0] {
	case "idle":
		return command.Idle{}, nil
	case "play":
		return command.Play{}, nil
	case "pause":
		return command.Pause{}, nil
	case "begin":
		return command.Begin{}, nil
	case "end":
		return command.End{}, nil
	case "mute":
		return command.Mute{}, nil
	case "unmute":
		return command.Unmute{}, nil
	case "loop":
		return command.Loop{}, nil
	case "unloop":
		return command.Unloop{}, nil
	case "seek":
		t, err := num(1)
		if err != nil {
			return nil, errors.New("usage: seek <seconds> [autoplay]")
		}
		return command.Seek{Time: t, Autoplay: arg(2) == "autoplay"}, nil
	case "volume":
		v, err := num(1)
		if err != nil {
			return nil, err
		}
		return command.SetVolume{Level: v}, nil
	case "speed":
		v, err := num(1)
		if err != nil {
			return nil, err
		}
		return command.SetPlaybackSpeed{Speed: v}, nil
	case "brightness":
		v, err := num(1)
		if err != nil {
			return nil, err
		}
		return command.SetBrightness{Value: v}, nil
	case "contrast":
		v, err := num(1)
		if err != nil {
			return nil, err
		}
		return command.SetContrast{Value: v}, nil
	case "subs":
		if arg(1) == "" || arg(1) == "off" {
			return command.SetSubtitles{}, nil
		}
		return command.SetSubtitles{Language: arg(1)}, nil
	case "audio":
		if arg(1) == "" {
			return nil, errors.New("usage: audio <language>")
		}
		return command.SelectAudioTrack{Language: arg(1)}, nil
	case "filter":
		switch arg(1) {
		case "add":
			return command.ApplyFilter{
				Filter:        command.Handle(arg(2)),
				ClearExisting: arg(3) == "clear",
			}, nil
		case "clear":
			return command.RemoveAllFilters{}, nil
		}
		return nil, errors.New("usage: filter add <id> [clear] | filter clear")
	case "vector":
		switch arg(1) {
		case "add":
			return command.AddVector{
				Builder:       command.Handle(arg(2)),
				ClearExisting: arg(3) == "clear",
			}, nil
		case "clear":
			return command.RemoveAllVectors{}, nil
		}
		return nil, errors.New("usage: vector add <id> [clear] | vector clear")
	case "pip":
		switch arg(1) {
		case "start":
			return command.StartPiP{}, nil
		case "stop":
			return command.StopPiP{}, nil
		}
		return nil, errors.New("usage: pip start|stop")
	}
	return nil, fmt.Errorf("unknown command %q (try 'help')", fields[0])
}

func formatState(st playback.State) string {
	mode := "paused"
	if st.Playing {
		mode = "playing"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s @%.1fs vol=%.2f", mode, st.CurrentTime, st.Volume)
	if st.Muted {
		b.WriteString(" muted")
	}
	fmt.Fprintf(&b, " speed=%.2g", st.Speed)
	if st.Looping {
		b.WriteString(" loop")
	}
	if st.SubtitleLanguage != "" {
		fmt.Fprintf(&b, " subs=%s", st.SubtitleLanguage)
	}
	if st.SelectedAudioTrack != "" {
		fmt.Fprintf(&b, " audio=%s", st.SelectedAudioTrack)
	}
	if st.Brightness != 0 || st.Contrast != 1 {
		fmt.Fprintf(&b, " color=%.2g/%.2g", st.Brightness, st.Contrast)
	}
	if len(st.ActiveFilters) > 0 {
		fmt.Fprintf(&b, " filters=%v", st.ActiveFilters)
	}
	if len(st.ActiveVectors) > 0 {
		fmt.Fprintf(&b, " vectors=%v", st.ActiveVectors)
	}
	if st.PiPActive {
		b.WriteString(" pip")
	}
	if st.LastError != nil {
		fmt.Fprintf(&b, " [last error: %v]", st.LastError)
	}
	return b.String()
}

func printHelp() {
	fmt.Print(`commands:
  play | pause | idle | begin | end
  seek <seconds> [autoplay]
  volume <0..1> | mute | unmute
  speed <rate>
  subs <language>|off
  audio <language>
  loop | unloop
  brightness <value> | contrast <value>
  filter add <id> [clear] | filter clear
  vector add <id> [clear] | vector clear
  pip start|stop
  state | help | quit
`)
}
