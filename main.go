// Package main provides the entry point for the voxbooth CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/voxlabs/voxbooth/internal/audio"
	"github.com/voxlabs/voxbooth/internal/capability"
	"github.com/voxlabs/voxbooth/speech"
	"github.com/voxlabs/voxbooth/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	outputDir  string
	profileID  string
	demoMode   bool
	pitch      float64
	rate       float64

	rootCmd = &cobra.Command{
		Use:   "voxbooth [SCRIPT]",
		Short: "Write, preview and record voiceovers in your terminal",
		Long: paragraph(
			fmt.Sprintf("\nA %s for voiceover work: write the script, hear it spoken, then record your own takes.", keyword("recording booth")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(cmd *cobra.Command) error {
	outputDir = viper.GetString("output_dir")
	profileID = viper.GetString("profile")
	pitch = viper.GetFloat64("speech.pitch")
	rate = viper.GetFloat64("speech.rate")

	if pitch < speech.MinPitch || pitch > speech.MaxPitch {
		return fmt.Errorf("pitch must be between %.1f and %.1f, got %.2f", speech.MinPitch, speech.MaxPitch, pitch)
	}
	if rate < speech.MinRate || rate > speech.MaxRate {
		return fmt.Errorf("rate must be between %.1f and %.1f, got %.2f", speech.MinRate, speech.MaxRate, rate)
	}

	sampleRate := viper.GetInt("audio.sample_rate")
	if sampleRate != 44100 && sampleRate != 48000 {
		return fmt.Errorf("audio sample_rate must be 44100 or 48000, got %d", sampleRate)
	}
	channels := viper.GetInt("audio.channels")
	if channels != 1 && channels != 2 {
		return fmt.Errorf("audio channels must be 1 or 2, got %d", channels)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) && !cmd.Flags().Changed("demo") {
		return errors.New("voxbooth needs a terminal")
	}
	return nil
}

func execute(_ *cobra.Command, args []string) error {
	scriptPath := ""
	if len(args) == 1 {
		p, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("unable to resolve script path: %w", err)
		}
		info, err := os.Stat(p)
		if err == nil && info.IsDir() {
			return fmt.Errorf("%s is a directory, expected a script file", args[0])
		}
		scriptPath = p
	}
	return runTUI(scriptPath)
}

func runTUI(scriptPath string) error {
	speechCfg := speech.Config{
		PreferredLocales: viper.GetStringSlice("speech.preferred_locales"),
		Pitch:            pitch,
		Rate:             rate,
	}
	audioCfg := audio.Config{
		SampleRate: viper.GetInt("audio.sample_rate"),
		Channels:   viper.GetInt("audio.channels"),
	}

	// Environment overrides take precedence over the config file.
	if c, err := env.ParseAs[speech.Config](); err == nil && len(c.PreferredLocales) > 0 {
		speechCfg.PreferredLocales = c.PreferredLocales
	}
	if len(speechCfg.PreferredLocales) == 0 {
		speechCfg.PreferredLocales = speech.DefaultConfig().PreferredLocales
	}

	caps := capability.Probe(audioCfg, log.Default())
	if demoMode {
		caps = capability.Demo()
	}

	m, err := ui.NewModel(ui.Config{
		Caps:       caps,
		SpeechCfg:  speechCfg,
		AudioCfg:   audioCfg,
		OutputDir:  outputDir,
		ScriptPath: scriptPath,
		ProfileID:  profileID,
		Logger:     log.Default(),
	})
	if err != nil {
		return err
	}

	if _, err := ui.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "~/voxbooth", "directory for saved takes")
	rootCmd.Flags().StringVar(&profileID, "profile", "warm-narrator", "voice profile (warm-narrator, product-demo, documentary, energetic-promo)")
	rootCmd.Flags().BoolVar(&demoMode, "demo", false, "run with simulated speech and capture devices")
	rootCmd.Flags().Float64Var(&pitch, "pitch", 1.0, "preview pitch multiplier")
	rootCmd.Flags().Float64Var(&rate, "rate", 1.0, "preview rate multiplier")

	_ = viper.BindPFlag("output_dir", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("profile", rootCmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("speech.pitch", rootCmd.Flags().Lookup("pitch"))
	_ = viper.BindPFlag("speech.rate", rootCmd.Flags().Lookup("rate"))

	viper.SetDefault("output_dir", "~/voxbooth")
	viper.SetDefault("profile", "warm-narrator")
	viper.SetDefault("speech.preferred_locales", []string{"en-US", "en-GB"})
	viper.SetDefault("speech.pitch", 1.0)
	viper.SetDefault("speech.rate", 1.0)
	viper.SetDefault("audio.sample_rate", 44100)
	viper.SetDefault("audio.channels", 1)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "voxbooth")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "voxbooth")}, dirs...)
	}

	if c := os.Getenv("VOXBOOTH_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("voxbooth")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("voxbooth")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "voxbooth.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}

// setupLog sends logs to a file; the TUI owns the terminal, so stderr
// logging would corrupt the display. Logging is off unless
// VOXBOOTH_DEBUG is set; VOXBOOTH_LOGFILE overrides the default
// cache-dir location.
func setupLog() (func() error, error) {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.FatalLevel)

	if os.Getenv("VOXBOOTH_DEBUG") == "" {
		return func() error { return nil }, nil
	}

	path := os.Getenv("VOXBOOTH_LOGFILE")
	if path == "" {
		scope := gap.NewScope(gap.User, "voxbooth")
		p, err := scope.CacheDir()
		if err != nil {
			return nil, fmt.Errorf("unable to resolve cache dir: %w", err)
		}
		if err := os.MkdirAll(p, 0o755); err != nil {
			return nil, fmt.Errorf("unable to create cache dir: %w", err)
		}
		path = filepath.Join(p, "voxbooth.log")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("unable to open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetLevel(log.DebugLevel)
	return f.Close, nil
}
