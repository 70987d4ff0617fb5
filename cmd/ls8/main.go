// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrArguments = errors.New(f("unknown arguments"))
	ErrSaveImage = errors.New(f("-s requires -c"))
)

// load attaches the program named by the command line to the emulator:
// the assembled compile source, or else the single image path in args.
func load(emu *emulator.Emulator, compile string, args []string) (err error) {
	switch {
	case len(compile) != 0:
		if len(args) != 0 {
			err = errors.Join(ErrArguments, errors.New(f("%v", args)))
			return
		}

		var inf *os.File
		inf, err = os.Open(compile)
		if err != nil {
			return
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: emu.Verbose}
		for equ, value := range emu.Defines() {
			asm.Predefine(equ, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			return
		}
	case len(args) == 1:
		var inf *os.File
		inf, err = os.Open(args[0])
		if err != nil {
			return
		}
		defer inf.Close()

		err = emu.Rom.Unmarshal(inf)
		if err != nil {
			return
		}
	case len(args) == 0:
		err = cpu.ErrProgramMissing
		return
	default:
		err = errors.Join(ErrArguments, errors.New(f("%v", args[1:])))
		return
	}

	return
}

func main() {
	var compile string
	var save bool
	var output string
	var trace bool
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.BoolVar(&save, "s", false, "Save the compiled image, do not execute")
	flag.StringVar(&output, "o", "-", "Image output, for -s")
	flag.BoolVar(&trace, "t", false, "Trace each instruction to stderr")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	err := load(emu, compile, flag.Args())
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if save {
		if emu.Program == nil {
			log.Fatalf("%v: %v", os.Args[0], ErrSaveImage)
		}

		ouf := os.Stdout
		if output != "-" {
			ouf, err = os.Create(output)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			defer ouf.Close()
		}

		err = emu.Program.WriteImage(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	if trace {
		emu.Cpu.Trace = os.Stderr
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
