// Command errcatalog checks that a translation catalog covers every error
// tag a response can carry.
//
//	errcatalog -catalog translations/en.json
//
// It exits 1 when a tag is missing (or, with -strict, when the catalog has
// keys that are not tags) and 2 on usage or read errors.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/StricklySoft/stricklysoft-community/pkg/i18n"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("errcatalog", flag.ContinueOnError)
	fs.SetOutput(stderr)
	catalogPath := fs.String("catalog", "", "path to a JSON translation catalog")
	strict := fs.Bool("strict", false, "also fail on catalog keys that are not error tags")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *catalogPath == "" {
		fmt.Fprintln(stderr, "errcatalog: -catalog is required")
		fs.Usage()
		return 2
	}

	catalog, err := i18n.LoadCatalog(*catalogPath)
	if err != nil {
		fmt.Fprintf(stderr, "errcatalog: %v\n", err)
		return 2
	}

	code := 0
	missing := i18n.MissingTags(catalog)
	for _, tag := range missing {
		fmt.Fprintf(stdout, "missing: %s\n", tag)
	}
	if len(missing) > 0 {
		code = 1
	}

	if unknown := i18n.UnknownKeys(catalog); len(unknown) > 0 {
		for _, key := range unknown {
			fmt.Fprintf(stdout, "unknown: %s\n", key)
		}
		if *strict {
			code = 1
		}
	}

	if code == 0 {
		fmt.Fprintf(stdout, "%s: all error tags translated\n", *catalogPath)
	}
	return code
}
