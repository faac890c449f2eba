package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/theoremus-urban-solutions/sl-departures/sl"
)

// Discovery commands are configuration-time helpers. Their fetch failures
// are surfaced directly for the user to correct, never retried.

func newClient(c *cli.Context) *sl.Client {
	opts := []sl.Option{}
	if base := c.String("base-url"); base != "" {
		opts = append(opts, sl.WithBaseURL(base))
	}
	return sl.NewClient(opts...)
}

func baseURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "base-url",
		Usage: "Override the SL Transport API base URL",
	}
}

func sitesCommand() *cli.Command {
	return &cli.Command{
		Name:  "sites",
		Usage: "List sites, optionally filtered by a search term",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "Case-insensitive name filter (min 2 characters)"},
			baseURLFlag(),
		},
		Action: func(c *cli.Context) error {
			client := newClient(c)

			var sites []sl.Site
			var err error
			if term := c.String("search"); term != "" {
				sites, err = client.SearchSites(c.Context, term)
			} else {
				sites, err = client.Sites(c.Context)
			}
			if err != nil {
				return err
			}

			for _, s := range sites {
				fmt.Printf("%d\t%s\n", s.ID, s.Name)
			}
			return nil
		},
	}
}

func linesCommand() *cli.Command {
	return &cli.Command{
		Name:  "lines",
		Usage: "List lines of a transport mode serving a site",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "site", Usage: "Site id", Required: true},
			&cli.StringFlag{Name: "mode", Usage: "Transport mode", Value: "TRAIN"},
			baseURLFlag(),
		},
		Action: func(c *cli.Context) error {
			client := newClient(c)
			lines, err := client.Lines(c.Context, c.Int("site"), c.String("mode"))
			if err != nil {
				return err
			}
			for _, l := range lines {
				if l.GroupOfLines != "" && l.GroupOfLines != l.Designation {
					fmt.Printf("%s\t(%s)\n", l.Designation, l.GroupOfLines)
				} else {
					fmt.Printf("%s\n", l.Designation)
				}
			}
			return nil
		},
	}
}

func directionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "directions",
		Usage: "List directions at a site, optionally narrowed to one line",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "site", Usage: "Site id", Required: true},
			&cli.StringFlag{Name: "mode", Usage: "Transport mode", Value: "TRAIN"},
			&cli.StringFlag{Name: "line", Usage: "Line designation filter"},
			baseURLFlag(),
		},
		Action: func(c *cli.Context) error {
			client := newClient(c)
			dirs, err := client.Directions(c.Context, c.Int("site"), c.String("mode"), c.String("line"))
			if err != nil {
				return err
			}
			for _, d := range dirs {
				fmt.Printf("%s\t→ %s\n", d.Code, d.Destination)
			}
			return nil
		},
	}
}
