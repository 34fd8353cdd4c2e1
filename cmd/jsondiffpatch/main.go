// Command jsondiffpatch diffs, patches and merges JSON or YAML documents.
//
//	jsondiffpatch diff [-raw] [-indent] [-yaml] SOURCE TARGET
//	jsondiffpatch apply [-indent] [-yaml] DOCUMENT PATCH
//	jsondiffpatch merge [-indent] [-yaml] DOCUMENT MERGE_PATCH
//
// Files ending in .yaml or .yml are read as YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/benitogf/jsondiffpatch"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

const usage = "usage: jsondiffpatch diff|apply|merge [flags] FILE FILE"

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	command := args[0]

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	asYAML := fs.Bool("yaml", false, "write YAML instead of JSON")
	indent := fs.Bool("indent", false, "indent JSON output")
	raw := fs.Bool("raw", false, "diff without move and copy factorization")
	if err := fs.Parse(args[1:]); err != nil {
		return errors.Wrap(err, command)
	}
	if fs.NArg() != 2 {
		return errors.New(usage)
	}

	first, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}
	second, err := readDocument(fs.Arg(1))
	if err != nil {
		return err
	}

	var result any
	switch command {
	case "diff":
		result = jsondiffpatch.Diff(first, second, jsondiffpatch.OptionFactorize(!*raw))
	case "apply":
		patch, err := jsondiffpatch.ParsePatch(second)
		if err != nil {
			return errors.Wrap(err, fs.Arg(1))
		}
		if result, err = patch.ApplyValue(first); err != nil {
			return errors.Wrap(err, fs.Arg(0))
		}
	case "merge":
		result = jsondiffpatch.MergePatch(first, second)
	default:
		return errors.Errorf("unknown command %q\n%s", command, usage)
	}
	return write(stdout, result, *indent, *asYAML)
}

func readDocument(name string) (any, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return nil, errors.Wrapf(err, "%s: yaml", name)
		}
	}
	doc, err := jsondiffpatch.Decode(data)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return doc, nil
}

func write(w io.Writer, v any, indent, asYAML bool) error {
	var (
		out []byte
		err error
	)
	if indent && !asYAML {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return errors.Wrap(err, "encode result")
	}
	if asYAML {
		if out, err = yaml.JSONToYAML(out); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		_, err = w.Write(out)
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
