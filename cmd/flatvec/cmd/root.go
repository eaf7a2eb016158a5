package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/flatvec/internal/config"
	"github.com/rawbytedev/flatvec/pkg/vec"
)

// environment is filled in before any subcommand runs.
type environment struct {
	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd builds the flatvec command tree.
func NewRootCmd() *cobra.Command {
	env := &environment{}
	rootCmd := &cobra.Command{
		Use:   "flatvec",
		Short: "Pack and inspect zero-copy flatvec buffers",
		Long: `flatvec packs YAML, JSON or CBOR documents into zero-copy vectors and
sorted maps, and inspects, queries or dumps existing buffers.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return env.load(cmd)
		},
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newPackCmd(env),
		newInspectCmd(env),
		newGetCmd(env),
		newDumpCmd(env),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (env *environment) load(cmd *cobra.Command) error {
	cfg := config.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	level, err := cfg.Level()
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	env.cfg = cfg
	env.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// format resolves the index format from --index, falling back to config.
func (env *environment) format(cmd *cobra.Command) (vec.Format, error) {
	bits, _ := cmd.Flags().GetInt("index")
	if bits == 0 {
		return env.cfg.Format()
	}
	return vec.FormatFromBits(bits)
}

// strict resolves --strict, falling back to config.
func (env *environment) strict(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("strict") {
		s, _ := cmd.Flags().GetBool("strict")
		return s
	}
	return env.cfg.StrictOrder
}

func addBufferFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("kind", "k", kindVector, "Buffer kind: vector, map or map2d")
	cmd.Flags().Int("index", 0, "Index width in bits: 8, 16 or 32 (default from config)")
	cmd.Flags().Bool("strict", false, "Verify key order when parsing maps")
}
