package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/flatvec/internal/blob"
	"github.com/rawbytedev/flatvec/pkg/interchange"
)

func newPackCmd(env *environment) *cobra.Command {
	packCmd := &cobra.Command{
		Use:   "pack <vector|map|map2d>",
		Short: "Pack a YAML, JSON or CBOR document into a flatvec buffer",
		Long: `Pack reads a source document and writes the encoded buffer.

A vector source is a list of strings. A map source is a list of
{key, value} entries. A map2d source is a list of {key0, entries} groups.
Later duplicates overwrite earlier ones.

Example:
  flatvec pack map --in words.yaml --out words.fv --index 32`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{kindVector, kindMap, kindMap2D},
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")
			f, err := env.format(cmd)
			if err != nil {
				return err
			}
			src, err := interchange.FormatFromPath(in)
			if err != nil {
				return err
			}
			doc, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("failed to read source: %w", err)
			}
			data, n, err := packDocument(args[0], f, src, doc)
			if err != nil {
				return fmt.Errorf("failed to pack %s: %w", in, err)
			}
			compress, _ := cmd.Flags().GetBool("zstd")
			if !cmd.Flags().Changed("zstd") {
				compress = env.cfg.Compress
			}
			path, err := blob.Write(out, data, compress)
			if err != nil {
				return err
			}
			env.log.Info("packed", "kind", args[0], "entries", n, "bytes", len(data), "index", f, "out", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	packCmd.Flags().String("in", "", "Source document (.yaml, .json or .cbor)")
	packCmd.Flags().String("out", "", "Output file")
	packCmd.Flags().Int("index", 0, "Index width in bits: 8, 16 or 32 (default from config)")
	packCmd.Flags().Bool("zstd", false, "Compress the output file with zstd")
	_ = packCmd.MarkFlagRequired("in")
	_ = packCmd.MarkFlagRequired("out")
	return packCmd
}
