package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/flatvec/internal/blob"
)

var errNotFound = errors.New("not found")

func newGetCmd(env *environment) *cobra.Command {
	getCmd := &cobra.Command{
		Use:   "get <file> <index|key|key0 key1>",
		Short: "Look up one element of a buffer",
		Long: `Get prints one element: by position for a vector, by key for a map,
and by outer and inner key for a map2d.

Example:
  flatvec get words.fv --kind map2d en one`,
		Args: cobra.RangeArgs(2, 3),
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
			p, err := parseBuffer(kind, f, env.strict(cmd), b.Data)
			if err != nil {
				return fmt.Errorf("invalid %s buffer: %w", kind, err)
			}
			v, err := lookup(p, args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	addBufferFlags(getCmd)
	return getCmd
}

func lookup(p parsed, keys []string) (string, error) {
	var (
		v  string
		ok bool
	)
	switch p.kind {
	case kindVector, kindMap:
		if len(keys) != 1 {
			return "", fmt.Errorf("%s lookup takes one key, got %d", p.kind, len(keys))
		}
		if p.kind == kindMap {
			v, ok = p.m.Get(keys[0])
			break
		}
		i, err := strconv.Atoi(keys[0])
		if err != nil {
			return "", fmt.Errorf("invalid index %q: %w", keys[0], err)
		}
		v, ok = p.vector.Get(i)
	case kindMap2D:
		if len(keys) != 2 {
			return "", fmt.Errorf("map2d lookup takes two keys, got %d", len(keys))
		}
		v, ok = p.m2.Get2D(keys[0], keys[1])
	}
	if !ok {
		return "", errNotFound
	}
	return v, nil
}
