package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hydrate/internal/config"
	"github.com/vango-dev/hydrate/internal/errors"
	"github.com/vango-dev/hydrate/internal/service"
)

func reorderCmd() *cobra.Command {
	var (
		attr     string
		selector string
		document bool
		output   string
	)

	cmd := &cobra.Command{
		Use:   "reorder [file]",
		Short: "Reorder stamped server-rendered markup",
		Long: `Read markup whose elements carry claim stamps, reorder every parent
into claim order with the fewest moves and write the result.

The input is a body fragment unless --document is given. With no file,
or "-", the markup is read from standard input.

Examples:
  hydrate reorder page.html
  hydrate reorder --selector main --attr data-h page.html
  cat page.html | hydrate reorder --document -o out.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if attr == "" {
				attr = cfg.Hydrate.ClaimAttr
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			in := io.Reader(os.Stdin)
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return errors.New("H303").Wrap(err)
				}
				defer f.Close()
				in = f
			}

			r := service.NewReorderer(service.WithLogger(logger))
			res, err := r.Reorder(context.Background(), in, service.Request{
				Attr:     attr,
				Selector: selector,
				Document: document,
			})
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = io.WriteString(os.Stdout, res.HTML)
				return err
			}
			if err := os.WriteFile(output, []byte(res.HTML), 0644); err != nil {
				return errors.New("H303").Wrap(err)
			}
			success("Wrote %s", output)
			info("%d stamped, %d moved", res.Stamped, res.Moves)
			return nil
		},
	}

	cmd.Flags().StringVarP(&attr, "attr", "a", "", "Claim stamp attribute (default from "+config.ConfigFileName+")")
	cmd.Flags().StringVarP(&selector, "selector", "s", "", "Tag of the element to reorder (default: whole input)")
	cmd.Flags().BoolVarP(&document, "document", "d", false, "Parse the input as a full document")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
