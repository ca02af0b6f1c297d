package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Versifine/hearth/internal/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Output default configuration file",
		Description: `Output the default configuration to stdout or a file:

	hearth config > config.yaml
	hearth config --write          # Writes to configs/config.yaml`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write config to " + defaultConfigPath + " instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			data, err := config.Default().Marshal()
			if err != nil {
				return cli.Exit(fmt.Errorf("error encoding config: %w", err), 1)
			}

			if c.Bool("write") {
				if err := os.WriteFile(defaultConfigPath, data, 0o644); err != nil {
					return cli.Exit(fmt.Errorf("error writing config to %q: %w", defaultConfigPath, err), 1)
				}
				_, _ = fmt.Fprintf(c.App.Writer, "Configuration written to %s\n", defaultConfigPath)
				return nil
			}

			if _, err := c.App.Writer.Write(data); err != nil {
				return cli.Exit(fmt.Errorf("error writing config: %w", err), 1)
			}
			return nil
		},
	}
}
