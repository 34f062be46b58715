package main

import (
	"context"
	"fixtured"
	"fixtured/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	logrus.SetOutput(os.Stdout)
}

func main() {
	if err := newCommand().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func newCommand() *cobra.Command {
	var configPath, listen, logLevel string

	cmd := &cobra.Command{
		Use:           "fixtured [flags] DIR",
		Short:         "Serves test fixture files",
		Long:          `Serves files from DIR at GET /{filename}, adding X-Num-Entries to .protobuf files`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := readConfig(configPath, args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				config.Http.Listen = listen
			}
			if cmd.Flags().Changed("log-level") {
				config.Log.Level = logLevel
			}
			if err := config.Validate(); err != nil {
				return err
			}
			setupLogging(config.Log)

			// Handle interrupt signals
			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(interrupt)

			s, err := server.New(config)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				select {
				case <-interrupt:
					cancel()
				case <-ctx.Done():
				}
			}()

			return s.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a config.yaml file")
	cmd.Flags().StringVar(&listen, "listen", config.NewConfig().Http.Listen, "address to listen to")
	cmd.Flags().StringVar(&logLevel, "log-level", config.NewConfig().Log.Level, "log level")
	return cmd
}

// readConfig returns the config file, or the defaults when path is empty, serving dir.
func readConfig(path string, dir string) (*config.Config, error) {
	c := config.NewConfig()
	if path != "" {
		var err error
		if c, err = config.ReadYAMLFile(path); err != nil {
			return nil, err
		}
	}

	c.Files.Dir = dir
	return c, nil
}

func setupLogging(c config.LogConfig) {
	if level, err := logrus.ParseLevel(c.Level); err == nil {
		logrus.SetLevel(level)
	}

	if c.File == "" {
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.DateTime,
	})
	logrus.SetOutput(&lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	})
}
