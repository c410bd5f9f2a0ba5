// Package message compiles raw message sources into renderable form and
// performs placeholder interpolation and plural branch selection.
//
// The source syntax is plain text with {name} or {0} interpolation tokens
// and |-delimited plural branches:
//
//	"no apples | one apple | {n} apples"
//	"hello {name}, you are caller {0}"
//
// Compile is pure and deterministic: the same source always yields an
// equivalent Message.
package message

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dmitrymomot/intl/pkg/plural"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenNamed
	tokenPositional
	tokenLiteral
)

type token struct {
	text  string // literal text or placeholder name
	index int    // argument index for positional tokens
	kind  tokenKind
}

// Message is a compiled message: one or more plural branches, each a token
// sequence. Messages are immutable and safe for concurrent rendering.
type Message struct {
	source   string
	branches [][]token
}

// Compile parses a raw message source into a Message. It fails when the
// source has unbalanced braces or an empty placeholder, which indicates a
// resource authoring bug rather than a runtime data gap.
func Compile(source string) (*Message, error) {
	parts := strings.Split(source, "|")
	branches := make([][]token, 0, len(parts))

	for _, part := range parts {
		tokens, err := tokenize(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("compiling message %q: %w", source, err)
		}
		branches = append(branches, tokens)
	}

	return &Message{source: source, branches: branches}, nil
}

// MustCompile is like Compile but panics on error. Intended for static
// message literals in tests and defaults.
func MustCompile(source string) *Message {
	m, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return m
}

func tokenize(src string) ([]token, error) {
	var tokens []token
	for len(src) > 0 {
		open := strings.IndexByte(src, '{')
		if open < 0 {
			if strings.IndexByte(src, '}') >= 0 {
				return nil, ErrUnbalancedBraces
			}
			tokens = append(tokens, token{kind: tokenText, text: src})
			break
		}

		if open > 0 {
			if strings.IndexByte(src[:open], '}') >= 0 {
				return nil, ErrUnbalancedBraces
			}
			tokens = append(tokens, token{kind: tokenText, text: src[:open]})
		}

		closing := strings.IndexByte(src[open:], '}')
		if closing < 0 {
			return nil, ErrUnbalancedBraces
		}

		name := strings.TrimSpace(src[open+1 : open+closing])
		if name == "" {
			return nil, ErrEmptyPlaceholder
		}
		if strings.IndexByte(name, '{') >= 0 {
			return nil, ErrUnbalancedBraces
		}

		if len(name) >= 2 && name[0] == '\'' && name[len(name)-1] == '\'' {
			tokens = append(tokens, token{kind: tokenLiteral, text: name[1 : len(name)-1]})
			src = src[open+closing+1:]
			continue
		}

		if index, err := strconv.Atoi(name); err == nil && index >= 0 {
			tokens = append(tokens, token{kind: tokenPositional, index: index, text: name})
		} else {
			tokens = append(tokens, token{kind: tokenNamed, text: name})
		}

		src = src[open+closing+1:]
	}
	return tokens, nil
}

// Source returns the original source the message was compiled from.
func (m *Message) Source() string {
	return m.source
}

// Branches returns how many plural branches the message defines.
func (m *Message) Branches() int {
	return len(m.branches)
}

// Args carries interpolation arguments for one render call. Named and
// positional arguments may be supplied together: name-shaped tokens resolve
// against Named, numeric-shaped tokens against Positional.
type Args struct {
	Named      map[string]any
	Positional []any
}

// Merge folds other into a, named keys and positional slots alike.
func (a Args) Merge(other Args) Args {
	if len(other.Named) > 0 {
		if a.Named == nil {
			a.Named = make(map[string]any, len(other.Named))
		}
		for k, v := range other.Named {
			a.Named[k] = v
		}
	}
	a.Positional = append(a.Positional, other.Positional...)
	return a
}

// Render interpolates the message without plural selection. Multi-branch
// messages render branch 0.
func (m *Message) Render(args Args, logger *slog.Logger) string {
	return m.renderBranch(0, args, logger)
}

// RenderPlural selects a branch for count using rule, binds count as the
// implicit argument "n", and interpolates. The selected index is clamped to
// the available branches.
func (m *Message) RenderPlural(count int, rule plural.Rule, args Args, logger *slog.Logger) string {
	if rule == nil {
		rule = plural.Default
	}

	branch := rule(count, len(m.branches))
	if branch < 0 {
		branch = 0
	}
	if branch > len(m.branches)-1 {
		branch = len(m.branches) - 1
	}

	if args.Named == nil {
		args.Named = map[string]any{"n": count}
	} else if _, ok := args.Named["n"]; !ok {
		args.Named["n"] = count
	}

	return m.renderBranch(branch, args, logger)
}

func (m *Message) renderBranch(branch int, args Args, logger *slog.Logger) string {
	if branch >= len(m.branches) {
		return ""
	}

	var b strings.Builder
	for _, tok := range m.branches[branch] {
		switch tok.kind {
		case tokenText:
			b.WriteString(tok.text)
		case tokenNamed:
			value, ok := args.Named[tok.text]
			if !ok {
				warnMissingArg(logger, tok.text)
				continue
			}
			b.WriteString(stringify(value))
		case tokenPositional:
			if tok.index >= len(args.Positional) {
				warnMissingArg(logger, tok.text)
				continue
			}
			b.WriteString(stringify(args.Positional[tok.index]))
		case tokenLiteral:
			b.WriteString(tok.text)
		}
	}
	return b.String()
}

// Missing arguments render empty rather than failing so partial resource
// availability never breaks text rendering.
func warnMissingArg(logger *slog.Logger, name string) {
	if logger == nil {
		return
	}
	logger.Warn("missing interpolation argument", slog.String("placeholder", name))
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
