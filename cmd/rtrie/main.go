// Command rtrie is a small driver around the trie package: it loads the
// trie serialized in a file, applies one operation, and (for mutating
// operations) writes the result back. Each file holds exactly one trie;
// the --trie flag is accepted but not consulted.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/jaiminpan/rtrie/trie"
)

var log zerolog.Logger

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	app := &cli.App{
		Name:  "rtrie",
		Usage: "inspect and mutate a radix trie kept in a flat file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "path to the backing store file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "trie",
				Value: "default",
				Usage: "name of the trie (not consulted: the file holds a single trie)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			addCommand,
			removeCommand,
			findCommand,
			suffixCommand,
			listCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("rtrie failed")
		os.Exit(1)
	}
}

// loadOrNew reads the trie serialized in the backing file. A missing file
// is treated as an empty trie, matching the teacher's NewTrieDB behavior
// of starting empty when nothing has been flushed to disk yet.
func loadOrNew(c *cli.Context) (*trie.Trie, error) {
	path := c.String("file")
	blob, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("file", path).Msg("no existing store, starting empty")
			return trie.New(), nil
		}
		return nil, err
	}
	t := trie.New()
	if err := t.Read(bytes.NewReader(blob)); err != nil {
		return nil, err
	}
	return t, nil
}

func save(c *cli.Context, t *trie.Trie) error {
	path := c.String("file")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.Write(f)
}

var addCommand = &cli.Command{
	Name:      "add",
	Usage:     "add a key",
	ArgsUsage: "<key>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("add requires exactly one key argument", 1)
		}
		t, err := loadOrNew(c)
		if err != nil {
			return err
		}
		key := []byte(c.Args().Get(0))
		t.Add(key)
		log.Info().Str("key", c.Args().Get(0)).Msg("added")
		return save(c, t)
	},
}

var removeCommand = &cli.Command{
	Name:      "remove",
	Usage:     "remove a key",
	ArgsUsage: "<key>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("remove requires exactly one key argument", 1)
		}
		t, err := loadOrNew(c)
		if err != nil {
			return err
		}
		key := []byte(c.Args().Get(0))
		t.Remove(key)
		log.Info().Str("key", c.Args().Get(0)).Msg("removed")
		return save(c, t)
	},
}

var findCommand = &cli.Command{
	Name:      "find",
	Usage:     "report whether a key is present",
	ArgsUsage: "<key>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("find requires exactly one key argument", 1)
		}
		t, err := loadOrNew(c)
		if err != nil {
			return err
		}
		found := t.Find([]byte(c.Args().Get(0)))
		fmt.Println(found)
		if !found {
			os.Exit(1)
		}
		return nil
	},
}

var suffixCommand = &cli.Command{
	Name:      "suffix",
	Usage:     "return the unique completion of a prefix",
	ArgsUsage: "<prefix>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("suffix requires exactly one prefix argument", 1)
		}
		t, err := loadOrNew(c)
		if err != nil {
			return err
		}
		suffix, result := t.GetSuffix([]byte(c.Args().Get(0)))
		switch result {
		case trie.SuffixFound:
			fmt.Printf("found: %q\n", suffix)
		case trie.SuffixNone:
			fmt.Println("no key with that prefix")
		case trie.SuffixMultiple:
			fmt.Println("multiple completions")
		}
		return nil
	},
}

var listCommand = &cli.Command{
	Name:  "list",
	Usage: "list every stored key",
	Action: func(c *cli.Context) error {
		t, err := loadOrNew(c)
		if err != nil {
			return err
		}
		var it trie.Iterator
		for it.Next(t) {
			fmt.Printf("%q\n", it.Key())
		}
		return nil
	},
}
