// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Program wenyan runs a 文言 (Wenyan) source file.
//
// Usage: wenyan [--roman] [--dump] FILE.wy
//
// FILE is read and lexed, macro-expanded, parsed, and evaluated in order.
// Any GrammarError or RuntimeError is written to standard error and the
// program exits with status 1. With --dump, the parsed AST is written to
// standard output instead of being evaluated.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pborman/getopt"
	"github.com/wenyan-lang/wenyan/pkg/wenyan"
)

var stop = os.Exit

func exitIfError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
	}
}

func main() {
	var roman bool
	var debug bool
	var dump bool
	var traceP string
	var help bool

	getopt.BoolVarLong(&roman, "roman", 0, "accepted and ignored; diagnostics are not romanized")
	getopt.BoolVarLong(&debug, "debug", 0, "narrate lexer state transitions")
	getopt.BoolVarLong(&dump, "dump", 0, "print the parsed AST instead of evaluating it")
	getopt.StringVarLong(&traceP, "trace", 0, "write lexer trace to TRACEFILE", "TRACEFILE")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("FILE.wy")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		stop(0)
	}

	args := getopt.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "wenyan: exactly one source file is required")
		getopt.PrintUsage(os.Stderr)
		stop(1)
	}

	cfg := &wenyan.Config{Roman: roman, Debug: debug}
	if traceP != "" {
		fp, err := os.Create(traceP)
		exitIfError(err)
		defer fp.Close()
		cfg.Trace = fp
	}

	data, err := ioutil.ReadFile(args[0])
	exitIfError(err)

	toks, err := wenyan.Lex(string(data), cfg)
	exitIfError(err)

	toks, err = wenyan.ExpandMacros(toks)
	exitIfError(err)

	prog, err := wenyan.Parse(toks)
	exitIfError(err)

	if dump {
		wenyan.Dump(os.Stdout, prog)
		return
	}

	ev := wenyan.NewEvaluator(cfg, os.Stdout)
	exitIfError(ev.Run(prog))
}
