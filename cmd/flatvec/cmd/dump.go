package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/flatvec/internal/blob"
	"github.com/rawbytedev/flatvec/pkg/interchange"
)

func newDumpCmd(env *environment) *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a buffer as YAML, JSON or CBOR",
		Long: `Dump decodes every entry of a buffer and writes it in the same shape
that pack accepts, so dump output can be packed again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			f, err := env.format(cmd)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("format")
			if name == "" {
				name = env.cfg.DumpFormat
			}
			out, err := interchange.ParseFormat(name)
			if err != nil {
				return err
			}
			b, err := blob.Load(args[0])
			if err != nil {
				return err
			}
			defer b.Close()
			p, err := parseBuffer(kind, f, env.strict(cmd), b.Data)
			if err != nil {
				return fmt.Errorf("invalid %s buffer: %w", kind, err)
			}
			doc, err := interchange.Marshal(out, p.document())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(doc)
			return err
		},
	}
	addBufferFlags(dumpCmd)
	dumpCmd.Flags().StringP("format", "f", "", "Output format: yaml, json or cbor (default from config)")
	return dumpCmd
}
