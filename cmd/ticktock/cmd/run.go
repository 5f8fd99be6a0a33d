package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ticktock/internal/core/control"
	"ticktock/internal/core/frame"
	"ticktock/internal/core/model"
	"ticktock/internal/core/timeparts"
	"ticktock/internal/core/timer"
	"ticktock/internal/observe"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	runLength      time.Duration
	runFPS         int
	runMetricsAddr string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a countdown or stopwatch in the terminal",
	Long: `Run starts a timer and redraws it on one line until it stops.

While running, type a command and press enter:
  p  pause, resume, or start again after a reset (an empty line works too)
  r  reset to the baseline
  s  stop and quit
  q  quit

Example:
  ticktock run --length 25m
  ticktock run --mode stopwatch --length 1h --allow-overflow=false
  ticktock run --metrics-addr :9105`,
	RunE: runTimer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("mode", "countdown", "countdown or stopwatch")
	runCmd.Flags().DurationVar(&runLength, "length", 25*time.Minute, "length to count down from or up to")
	runCmd.Flags().Bool("allow-overflow", true, "keep counting past the length instead of stopping")
	runCmd.Flags().IntVar(&runFPS, "fps", 10, "redraws per second")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "serve /metrics and /status on this address")

	_ = viper.BindPFlag("mode", runCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("allow_overflow", runCmd.Flags().Lookup("allow-overflow"))
}

// resolveConfig merges flags with the config file. Flags win when set.
func resolveConfig(cmd *cobra.Command) (model.TimerConfig, error) {
	config := model.DefaultTimerConfig()

	mode, ok := model.ParseMode(viper.GetString("mode"))
	if !ok {
		return config, fmt.Errorf("unknown mode %q: want countdown or stopwatch", viper.GetString("mode"))
	}
	config.Mode = mode
	config.AllowOverflow = viper.GetBool("allow_overflow")

	config.Length = runLength
	if !cmd.Flags().Changed("length") && viper.IsSet("length_seconds") {
		config.Length = time.Duration(viper.GetInt("length_seconds")) * time.Second
	}
	if config.Length < 0 {
		return config, fmt.Errorf("length must not be negative, got %s", config.Length)
	}
	return config, nil
}

func runTimer(cmd *cobra.Command, args []string) error {
	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runFPS <= 0 {
		runFPS = 10
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := frame.NewLoop(frame.Config{FrameInterval: time.Second / time.Duration(runFPS)})
	engine := timer.New(config, timer.Config{Scheduler: loop})

	if runMetricsAddr != "" {
		collector := observe.NewCollector()
		collector.Attach(engine)
		go func() {
			log.Printf("metrics server listening on %s", runMetricsAddr)
			if err := collector.Serve(ctx, runMetricsAddr); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	out := cmd.OutOrStdout()
	events, unsubscribe := engine.Subscribe(256)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		printEvents(out, config, events)
	}()

	engine.On(timer.EventStop, func(timer.Event) {
		cancel()
	})

	go readCommands(ctx, cmd.InOrStdin(), loop, engine)

	loop.Do(engine.Start)
	runErr := loop.Run(ctx)

	unsubscribe()
	<-printed
	fmt.Fprintln(out)

	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}

// printEvents redraws the timer line until events is closed.
func printEvents(out io.Writer, config model.TimerConfig, events <-chan timer.Event) {
	for event := range events {
		switch event.Type {
		case timer.EventStart:
			log.Printf("run %s started: %s for %s", uuid.NewString(), config.Mode, config.Length)
		case timer.EventTick, timer.EventReset:
			fmt.Fprintf(out, "\r%s%s", sign(config.Mode, event), timeparts.Split(event.Elapsed).Clock())
		case timer.EventDone:
			if event.Done {
				fmt.Fprint(out, "  done")
			}
		case timer.EventPause:
			fmt.Fprint(out, "  paused")
		}
	}
}

// sign marks values that are past the end of the run.
func sign(mode model.Mode, event timer.Event) string {
	if !event.Overflowed {
		return " "
	}
	if mode == model.ModeCountdown {
		return "-"
	}
	return "+"
}

func readCommands(ctx context.Context, in io.Reader, loop *frame.Loop, engine *timer.Timer) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		action, ok := parseCommand(scanner.Text())
		if !ok {
			continue
		}
		loop.Do(func() {
			applyCommand(action, engine)
		})
	}
}

type command int

const (
	commandToggle command = iota
	commandReset
	commandStop
	commandQuit
)

func parseCommand(line string) (command, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "p", "":
		return commandToggle, true
	case "r":
		return commandReset, true
	case "s":
		return commandStop, true
	case "q":
		return commandQuit, true
	default:
		return 0, false
	}
}

// applyCommand runs on the loop goroutine.
func applyCommand(action command, engine *timer.Timer) {
	switch action {
	case commandToggle:
		if _, err := control.Toggle(engine.State(), engine); err != nil {
			log.Printf("toggle: %v", err)
		}
	case commandReset:
		engine.Reset()
	case commandStop, commandQuit:
		engine.Stop(false)
	}
}
