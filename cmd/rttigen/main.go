/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command rttigen scans Go sources for //rtti: directives and writes the
// enum helpers and the RegisterAll registration unit.
//
// Usage:
//
//	rttigen -S ./scene -O ./generated [-I ./more]... [-pkg generated]
//	        [-import example.com/game/generated] [-config rttigen.yaml]
//	        [-v] [-profile cpu|mem]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"

	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/emit"
	"dirpx.dev/rtti/extract"
)

var errUsage = errors.New("rttigen: usage")

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	gen     config.Generator
	verbose bool
	profile string
}

// parseFlags loads the optional YAML config and applies the flags that were
// set on top of it.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("rttigen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		src, out, pkg, imp, cfgPath, prof string
		search                             stringList
		verbose                            bool
	)
	fs.StringVar(&src, "S", "", "primary source root")
	fs.StringVar(&out, "O", "", "output directory of "+emit.RegistrationFile)
	fs.Var(&search, "I", "additional source root (repeatable)")
	fs.StringVar(&pkg, "pkg", "", "package name of the registration unit")
	fs.StringVar(&imp, "import", "", "import path of the output directory (default: derived from go.mod)")
	fs.StringVar(&cfgPath, "config", "", "YAML generator config")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	fs.StringVar(&prof, "profile", "", "write a cpu or mem profile to the working directory")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}

	gen := config.DefaultGenerator()
	if cfgPath != "" {
		loaded, err := config.LoadGenerator(cfgPath)
		if err != nil {
			return options{}, err
		}
		gen = loaded
	}
	var opts []config.GeneratorOption
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "S":
			opts = append(opts, config.WithSourceRoot(src))
		case "O":
			opts = append(opts, config.WithOutput(out, ""))
		case "I":
			opts = append(opts, config.WithSearchPaths(search...))
		case "pkg":
			opts = append(opts, config.WithOutputPackage(pkg))
		case "import":
			opts = append(opts, config.WithOutputImportPath(imp))
		}
	})
	for _, opt := range opts {
		opt(&gen)
	}

	switch prof {
	case "", "cpu", "mem":
	default:
		return options{}, fmt.Errorf("%w: -profile must be cpu or mem, got %q", errUsage, prof)
	}
	return options{gen: gen, verbose: verbose, profile: prof}, nil
}

func run(opts options, log *slog.Logger) error {
	if err := opts.gen.Validate(); err != nil {
		return err
	}
	start := time.Now()

	ex, err := extract.New(opts.gen, extract.WithLogger(log))
	if err != nil {
		return err
	}
	for _, root := range opts.gen.Roots() {
		if err := ex.ParseDir(root); err != nil {
			return err
		}
	}
	res := ex.Result()

	files, err := emit.New(opts.gen, emit.WithLogger(log)).Generate(res)
	if err != nil {
		return err
	}
	written, err := emit.WriteFiles(files, log)
	if err != nil {
		return err
	}
	log.Info("done",
		slog.Int("classes", len(res.Classes)),
		slog.Int("enums", len(res.Enums)),
		slog.Int("sources", len(res.Sources)),
		slog.Int("files", len(files)),
		slog.Int("written", written),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

func main() { os.Exit(mainCode()) }

func mainCode() int {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	switch opts.profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	if err := run(opts, log); err != nil {
		log.Error("generation failed", slog.Any("error", err))
		return 1
	}
	return 0
}
