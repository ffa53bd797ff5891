// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/loader"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrUsage      = errors.New(f("exactly one FILE required"))
	ErrSaveSource = errors.New(f("-s needs an assembly source"))
)

// options selected on the command line.
type options struct {
	assemble bool
	save     bool
	verbose  bool
	path     string
}

// parseArgs parses the command line. Messages use the locale of the
// environment.
func parseArgs(name string, args []string, output io.Writer) (opts options, err error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)

	flags.BoolVar(&opts.assemble, "a", false, "Assemble the file, instead of loading an .ls8 image")
	flags.BoolVar(&opts.save, "s", false, "Write the .ls8 image to stdout, do not execute")
	flags.BoolVar(&opts.verbose, "v", false, "Verbose mode")

	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: %v [options] FILE\n", name)
		flags.PrintDefaults()
	}

	err = flags.Parse(args)
	if err != nil {
		return
	}

	if flags.NArg() != 1 {
		flags.Usage()
		err = ErrUsage
		return
	}

	opts.path = flags.Arg(0)
	if strings.HasSuffix(opts.path, ".asm") {
		opts.assemble = true
	}

	if opts.save && !opts.assemble {
		err = ErrSaveSource
		return
	}

	return
}

// run loads or assembles the file, then executes it or writes its listing.
func run(opts options, stdout io.Writer) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = opts.verbose
	emu.Output = stdout

	if opts.assemble {
		var inf *os.File
		inf, err = os.Open(opts.path)
		if err != nil {
			return
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			return
		}
	} else {
		var image []byte
		image, err = loader.Open(opts.path)
		if err != nil {
			return
		}

		err = emu.LoadImage(image)
		if err != nil {
			return
		}
	}

	if opts.save {
		err = emu.Program.Listing(stdout)
		return
	}

	err = emu.Run()
	return
}

func main() {
	opts, err := parseArgs(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Printf("%v", err)
		os.Exit(2)
	}

	err = run(opts, os.Stdout)
	if err != nil {
		log.Fatalf("%v: %v", opts.path, err)
	}
}
