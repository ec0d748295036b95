package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hydrate/internal/registry"
	"github.com/vango-dev/hydrate/pkg/component"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the CLI build and the linked runtime versions",
		Long: `Show the CLI build stamp together with every component runtime version
registered in this binary. Two runtimes linked side by side share no
scheduler, so a warning is printed when more than one is registered.`,
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(version)
				return
			}

			linked := registry.Versions()
			fmt.Printf("hydrate %s (%s, built %s)\n", version, commit, date)
			fmt.Printf("runtime %s, linked: %s\n", component.Version, strings.Join(linked, ", "))
			fmt.Printf("%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			if registry.Multiple() {
				warn("%d runtime versions are linked into this binary", len(linked))
			}
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print the CLI version alone")

	return cmd
}
