package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/flatvec/internal/blob"
)

func newInspectCmd(env *environment) *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Validate a buffer and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			f, err := env.format(cmd)
			if err != nil {
				return err
			}
			b, err := blob.Load(args[0])
			if err != nil {
				return err
			}
			defer b.Close()

			start := time.Now()
			p, err := parseBuffer(kind, f, env.strict(cmd), b.Data)
			if err != nil {
				return fmt.Errorf("invalid %s buffer: %w", kind, err)
			}
			env.log.Debug("validated", "file", args[0], "elapsed", time.Since(start))

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "kind:    %s\n", kind)
			fmt.Fprintf(w, "entries: %d\n", p.entries())
			fmt.Fprintf(w, "bytes:   %d\n", len(b.Data))
			fmt.Fprintf(w, "index:   %s\n", f)
			fmt.Fprintf(w, "mapped:  %t\n", b.Mapped)
			fmt.Fprintf(w, "blake3:  %s\n", blob.Digest(b.Data))
			return nil
		},
	}
	addBufferFlags(inspectCmd)
	return inspectCmd
}
