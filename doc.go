/*
Command rlmeta compiles rlmeta grammars into Go source.

rlmeta grammars describe a PEG (parsing expression grammar): a set of
rules, each an ordered choice of sequences of matchers, with optional
semantic actions that build a result once a sequence has matched. A
grammar file is a set of namespaces, each holding a set of rules:

	Namespace {
	    rule1 = 'a' rule2:x -> ["a" ~x]
	    rule2 = 'b'*:xs     -> xs
	}

Compiling a grammar produces Go source holding one
Register<Namespace>(reg *registry.Registry) function per namespace
(function declarations only, with no package clause or import block);
calling it installs that namespace's rules into a registry, ready to be
matched against with internal/stream and internal/match. rlmeta's own two
bootstrap grammars, Parser and CodeGenerator, live in internal/grammar as
hand-written Go rule trees built from the same internal/match
constructors that compiled grammars use.

Command-line usage

	rlmeta COMMAND [COMMAND...]

With no commands given, rlmeta runs "--compile -", compiling stdin and
writing the result to stdout.

Commands are processed in the order given:

	--support
		write the embedded runtime support source to stdout: a
		standalone value/runtime/action/stream implementation in
		package rlmetasupport. It has no matcher combinators or rule
		registry, and compiled grammars refer to this module's own
		internal packages, not to it.

	--copy PATH
		write the verbatim content of PATH (or stdin if PATH is "-")
		to stdout.

	--embed NAME PATH
		write "NAME = <repr of PATH's contents>\n" to stdout. If NAME
		isn't already a valid Go identifier, a note suggesting one is
		printed to stderr; stdout is always exactly the assignment
		line.

	--compile PATH
		compile the grammar at PATH and write the resulting Go source
		to stdout. On a match failure, an ERROR/POSITION/STREAM
		diagnostic is written to stderr instead, with the failing
		position highlighted when stderr is a terminal.

Configuration

A few defaults can be overridden through the environment instead of a
flag: RLMETA_INDENT_PREFIX (the indentprefix a grammar's `>...<` syntax
indents with; the `indent` builtin called with one argument always uses
four spaces), RLMETA_NO_COLOR (force-disable the
terminal highlighting --compile does on error, alongside the usual
NO_COLOR convention), and RLMETA_LOG_LEVEL (the hclog level rlmeta logs
stage transitions at; silent by default).

Non-goals

rlmeta's matcher engine does not support left recursion, does not memoize
(no packrat caching), and matches Unicode only by codepoint equality or
range, not by Unicode general category. None of these are planned.
*/
package main
