package backend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rrrsynth/rrr/aig"
)

// ErrUnknownCommand is returned when a command string does not match
// any entry in the fixed grammar a RewriteBackend accepts.
var ErrUnknownCommand = errors.New("backend: unknown command")

// RewriteBackend performs a named, Boolean-equivalence-preserving
// rewrite of net and returns the result. Implementations are treated
// as a pure transformation oracle; callers make no assumption about
// how a command is carried out beyond that guarantee.
type RewriteBackend interface {
	Execute(ctx context.Context, net *aig.Network, command string) (*aig.Network, error)
}

// ValidateCommand checks command against the fixed grammar:
//
//	balance, balance -l,
//	rewrite -z, rewrite -zl,
//	refactor -z, refactor -zl,
//	resub -N {0..3} -K {4..16} {-z | -zl}
//
// It returns ErrUnknownCommand, wrapped with the offending string, for
// anything outside that grammar.
func ValidateCommand(command string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return fmt.Errorf("%s: %w", command, ErrUnknownCommand)
	}

	switch fields[0] {
	case "balance":
		switch len(fields) {
		case 1:
			return nil
		case 2:
			if fields[1] == "-l" {
				return nil
			}
		}
	case "rewrite":
		if len(fields) == 2 && (fields[1] == "-z" || fields[1] == "-zl") {
			return nil
		}
	case "refactor":
		if len(fields) == 2 && (fields[1] == "-z" || fields[1] == "-zl") {
			return nil
		}
	case "resub":
		if validateResub(fields[1:]) {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", command, ErrUnknownCommand)
}

// validateResub checks the flags that follow "resub": -N {0..3} -K
// {4..16}, in either order, followed by -z or -zl.
func validateResub(flags []string) bool {
	if len(flags) != 5 {
		return false
	}
	var sawN, sawK bool
	var mode string
	for i := 0; i < 4; i += 2 {
		switch flags[i] {
		case "-N":
			n, err := strconv.Atoi(flags[i+1])
			if err != nil || n < 0 || n > 3 {
				return false
			}
			sawN = true
		case "-K":
			k, err := strconv.Atoi(flags[i+1])
			if err != nil || k < 4 || k > 16 {
				return false
			}
			sawK = true
		default:
			return false
		}
	}
	mode = flags[4]
	return sawN && sawK && (mode == "-z" || mode == "-zl")
}

// Identity is the reference RewriteBackend: it validates the command
// string against the fixed grammar and returns net unchanged. It
// stands in for the external ABC-style rewriting process, whose
// algorithms are out of scope here.
type Identity struct{}

// Execute validates command and returns net unchanged.
func (Identity) Execute(_ context.Context, net *aig.Network, command string) (*aig.Network, error) {
	if err := ValidateCommand(command); err != nil {
		return nil, err
	}
	return net, nil
}
