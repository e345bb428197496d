// Package parser turns command-line and configuration text into typed
// commands.
//
// Grammar, one command per line:
//
//	set <name> <value>
//	map <prefixes> <keys> <action>      or   <prefixes>map <keys> <action>
//	unmap <prefixes> <keys>             or   <prefixes>unmap <keys>
//	include <file>
//	<name> [args]
//
// Mode prefixes are the short codes of a mode.Registry and may be
// concatenated ("nc" is normal and command). Blank lines and lines
// starting with '#' are skipped in files.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/dshills/cmdbar/internal/command"
	"github.com/dshills/cmdbar/internal/input/key"
	"github.com/dshills/cmdbar/internal/input/mode"
)

// DefaultMaxIncludeDepth limits nested include directives.
const DefaultMaxIncludeDepth = 10

var (
	// ErrIncludeDepthExceeded indicates too many nested include directives.
	ErrIncludeDepthExceeded = errors.New("include depth exceeded")

	// ErrIncludeLoop indicates a file includes itself, directly or not.
	ErrIncludeLoop = errors.New("include loop")

	// ErrFileNotFound indicates the file to parse does not exist.
	ErrFileNotFound = errors.New("file not found")
)

// Keywords of the grammar.
const (
	KeywordSet     = "set"
	KeywordMap     = "map"
	KeywordUnmap   = "unmap"
	KeywordInclude = "include"
)

// Parser parses command lines against a fixed set of modes and custom
// commands.
type Parser struct {
	modes      *mode.Registry
	custom     map[string]command.Definition
	includeDir string
	maxDepth   int
}

// Option configures a Parser.
type Option func(*Parser)

// WithIncludeDir resolves relative include paths against dir instead of
// the directory of the including file.
func WithIncludeDir(dir string) Option {
	return func(p *Parser) {
		p.includeDir = dir
	}
}

// WithMaxIncludeDepth sets the include nesting limit.
func WithMaxIncludeDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// New creates a parser. defs declares the custom commands the host accepts.
func New(modes *mode.Registry, defs []command.Definition, opts ...Option) *Parser {
	p := &Parser{
		modes:    modes,
		custom:   make(map[string]command.Definition, len(defs)),
		maxDepth: DefaultMaxIncludeDepth,
	}
	for _, d := range defs {
		p.custom[d.Name] = d
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Definitions returns the custom command definitions sorted by name.
func (p *Parser) Definitions() []command.Definition {
	out := make([]command.Definition, 0, len(p.custom))
	for _, d := range p.custom {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ParseLine parses a single command line as typed by the user.
// A blank line yields a NoCommand error.
func (p *Parser) ParseLine(text string) command.ParseResult {
	var result command.ParseResult
	p.parseLine(&result, text, 0, p.includeDir, nil)
	return result
}

// ParseFile parses a configuration stream. Includes are resolved against
// the include directory, or the working directory when none is set.
func (p *Parser) ParseFile(r io.Reader) command.ParseResult {
	var result command.ParseResult
	if err := p.parseReader(&result, r, p.includeDir, nil); err != nil {
		result.Errors = append(result.Errors, err)
	}
	return result
}

// ParseFileAt parses the configuration file at path.
// The returned error is only set when the file itself cannot be read;
// ErrFileNotFound is wrapped when it does not exist.
func (p *Parser) ParseFileAt(path string) (command.ParseResult, error) {
	var result command.ParseResult
	if err := p.parsePath(&result, path, nil); err != nil {
		return result, err
	}
	return result, nil
}

// parsePath parses the file at path. stack holds the absolute paths of
// the files currently being included, outermost first.
func (p *Parser) parsePath(result *command.ParseResult, path string, stack []string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}
	if slices.Contains(stack, abs) {
		return fmt.Errorf("%w: %s", ErrIncludeLoop, path)
	}
	if len(stack) > p.maxDepth {
		return fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	dir := p.includeDir
	if dir == "" {
		dir = filepath.Dir(path)
	}
	if err := p.parseReader(result, f, dir, append(stack[:len(stack):len(stack)], abs)); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

func (p *Parser) parseReader(result *command.ParseResult, r io.Reader, dir string, stack []string) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		p.parseLine(result, line, lineNum, dir, stack)
	}
	return scanner.Err()
}

func (p *Parser) parseLine(result *command.ParseResult, line string, lineNum int, dir string, stack []string) {
	line = strings.TrimRight(line, "\r\n")
	body := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(body) == "" || strings.HasPrefix(body, "#") {
		result.Errors = append(result.Errors, &command.ParseError{Kind: command.NoCommand, Line: lineNum})
		return
	}

	head, rest := splitWord(body)
	fail := func(err *command.ParseError) {
		err.Line = lineNum
		result.Errors = append(result.Errors, err)
	}

	switch {
	case head == KeywordSet:
		cmd, err := parseSet(rest)
		if err != nil {
			fail(err)
			return
		}
		result.Commands = append(result.Commands, cmd)

	case head == KeywordMap || head == KeywordUnmap:
		prefixWord, rest := splitWord(rest)
		if prefixWord == "" {
			fail(&command.ParseError{Kind: command.MissingArgument})
			return
		}
		prefixes, err := p.modes.SplitPrefixes(prefixWord)
		if err != nil {
			fail(&command.ParseError{Kind: command.Parse, Unexpected: prefixWord, Expected: "mode prefix", Err: err})
			return
		}
		p.parseMapping(result, head == KeywordUnmap, prefixes, rest, fail)

	case head == KeywordInclude:
		p.parseInclude(result, rest, dir, stack, fail)

	default:
		if prefixes, ok := p.modes.SplitLeadingPrefixes(head, KeywordUnmap); ok {
			p.parseMapping(result, true, prefixes, rest, fail)
			return
		}
		if prefixes, ok := p.modes.SplitLeadingPrefixes(head, KeywordMap); ok {
			p.parseMapping(result, false, prefixes, rest, fail)
			return
		}
		cmd, err := p.parseNamed(head, strings.TrimSpace(rest))
		if err != nil {
			fail(err)
			return
		}
		result.Commands = append(result.Commands, cmd)
	}
}

func parseSet(rest string) (command.Command, *command.ParseError) {
	name, value := splitWord(rest)
	value = strings.TrimSpace(value)
	if name == "" || value == "" {
		return nil, &command.ParseError{Kind: command.MissingArgument}
	}
	return command.Set{Name: name, Value: value}, nil
}

// parseMapping parses "<keys> <action>" or "<keys>" and emits one command
// per prefix.
func (p *Parser) parseMapping(result *command.ParseResult, unmap bool, prefixes []string, rest string, fail func(*command.ParseError)) {
	keysWord, action := splitWord(rest)
	if keysWord == "" {
		fail(&command.ParseError{Kind: command.MissingArgument})
		return
	}
	keys, err := key.ParseSequence(keysWord)
	if err != nil {
		fail(&command.ParseError{Kind: command.Parse, Unexpected: keysWord, Expected: "key sequence", Err: err})
		return
	}

	if unmap {
		if extra := strings.TrimSpace(action); extra != "" {
			fail(&command.ParseError{Kind: command.Parse, Unexpected: extra, Expected: "end of line"})
			return
		}
		for _, prefix := range prefixes {
			result.Commands = append(result.Commands, command.Unmap{Prefix: prefix, Keys: keys.Clone()})
		}
		return
	}

	if strings.TrimSpace(action) == "" {
		fail(&command.ParseError{Kind: command.MissingArgument})
		return
	}
	for _, prefix := range prefixes {
		result.Commands = append(result.Commands, command.Map{Prefix: prefix, Keys: keys.Clone(), Action: action})
	}
}

func (p *Parser) parseInclude(result *command.ParseResult, rest, dir string, stack []string, fail func(*command.ParseError)) {
	name := strings.TrimSpace(rest)
	if name == "" {
		fail(&command.ParseError{Kind: command.MissingArgument})
		return
	}
	path := name
	if !filepath.IsAbs(path) && dir != "" {
		path = filepath.Join(dir, path)
	}
	if err := p.parsePath(result, path, stack); err != nil {
		fail(&command.ParseError{Kind: command.Parse, Unexpected: name, Expected: "readable file", Err: err})
	}
}

func (p *Parser) parseNamed(name, args string) (command.Command, *command.ParseError) {
	if action, ok := command.LookupAppAction(name); ok {
		if args != "" {
			return nil, &command.ParseError{Kind: command.Parse, Unexpected: args, Expected: "end of line"}
		}
		return command.App{Action: action}, nil
	}

	def, ok := p.custom[name]
	if !ok {
		return nil, &command.ParseError{Kind: command.UnknownCommand, Unexpected: name}
	}
	switch def.Arg {
	case command.ArgNone:
		if args != "" {
			return nil, &command.ParseError{Kind: command.Parse, Unexpected: args, Expected: "end of line"}
		}
	case command.ArgRequired:
		if args == "" {
			return nil, &command.ParseError{Kind: command.MissingArgument}
		}
	}
	return command.Custom{Name: name, Args: args}, nil
}

// splitWord returns the first space-separated word of s and the text after
// the separating whitespace. Trailing whitespace of the remainder is kept.
func splitWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}
