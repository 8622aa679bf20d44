// Command zarr-layers resolves an OME-Zarr path and prints the layer
// records a visualization host would receive.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/robert-malhotra/go-omezarr/layer"
	"github.com/robert-malhotra/go-omezarr/omezarr"
)

type config struct {
	LogLevel    string `yaml:"log_level"`
	HTTPTimeout string `yaml:"http_timeout"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "zarr-layers <path-or-url>...",
		Short: "Print the layer records derived from an OME-Zarr hierarchy",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if logLevel == "" {
				logLevel = cfg.LogLevel
			}
			if logLevel != "" {
				level, err := logrus.ParseLevel(logLevel)
				if err != nil {
					return fmt.Errorf("parsing log level: %w", err)
				}
				logrus.SetLevel(level)
			}
			if timeout == 0 && cfg.HTTPTimeout != "" {
				timeout, err = time.ParseDuration(cfg.HTTPTimeout)
				if err != nil {
					return fmt.Errorf("parsing http_timeout: %w", err)
				}
			}

			return run(args, timeout)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "HTTP request timeout for remote stores")
	return cmd
}

func loadConfig(path string) (*config, error) {
	cfg := &config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func run(paths []string, timeout time.Duration) error {
	if len(paths) > 1 {
		logrus.Warn("more than one path is not currently supported")
	}
	path := paths[0]

	loc, err := omezarr.ParseURLWithTimeout(path, timeout)
	if err != nil {
		return err
	}
	if loc == nil {
		return fmt.Errorf("%s: not an OME-Zarr hierarchy", path)
	}

	read := layer.Transform(omezarr.NewReader(loc).Nodes())
	records, err := read()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d layer(s)\n", path, len(records))
	for i, rec := range records {
		printRecord(i, rec)
	}
	return nil
}

func printRecord(i int, rec layer.Data) {
	fmt.Printf("\nlayer %d (%s)\n", i, rec.Kind)
	for level, arr := range rec.Data {
		fmt.Printf("  level %d: shape %v dtype %s\n", level, arr.Shape(), arr.DTypeString())
	}

	md := rec.Metadata
	if md.ChannelAxis != nil {
		fmt.Printf("  channel_axis: %d\n", *md.ChannelAxis)
	}
	if md.Scale != nil {
		fmt.Printf("  scale: %v\n", md.Scale)
	}
	if md.Name != nil {
		fmt.Printf("  name: %v\n", md.Name)
	}
	if md.Visible != nil {
		fmt.Printf("  visible: %v\n", md.Visible)
	}
	if md.ContrastLimits != nil {
		fmt.Printf("  contrast_limits: %v\n", md.ContrastLimits)
	}
	if md.Colormaps != nil {
		fmt.Printf("  colormaps: %d\n", len(md.Colormaps))
	}
	if md.Color != nil {
		fmt.Printf("  colors: %d label(s)\n", len(md.Color))
	}
	if md.Properties != nil {
		fmt.Printf("  properties: %d object(s), fields %v\n",
			len(md.Properties.Index), md.Properties.Fields)
	}
}
