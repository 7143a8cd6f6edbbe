// SPDX-License-Identifier: MPL-2.0

package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidRange is returned when a range expression cannot be parsed.
	ErrInvalidRange = errors.New("invalid version range")
)

type (
	// Version is a possibly partial semantic version. Trailing components may
	// be omitted ("14") or wildcards ("14.x", "14.*", "*").
	Version struct {
		Major      int
		Minor      int
		Patch      int
		Prerelease string
		// Precision is the number of concrete leading components: 3 for
		// "12.4.0", 1 for "12" and "12.x", 0 for "*".
		Precision int
		Original  string
	}

	// Constraint is a single comparator such as ">=12.4.0", "^14" or "12.x".
	Constraint struct {
		// Op is the comparison operator (=, ^, ~, >, >=, <, <=).
		Op string
		// Version is the version to compare against.
		Version *Version
		// Original is the original constraint string.
		Original string
	}

	// Range is a disjunction of comparator sets, in the form used by
	// package manifests' engines field: ">=12.4.0", ">=14 <20", "^14 || >=16",
	// "12 - 14". Comparators inside a set are ANDed; sets are ORed.
	Range struct {
		Sets     [][]*Constraint
		Original string
	}
)

var (
	versionRegex    = regexp.MustCompile(`^v?(\d+|[xX*])(?:\.(\d+|[xX*]))?(?:\.(\d+|[xX*]))?(?:-([0-9A-Za-z\-\.]+))?(?:\+([0-9A-Za-z\-\.]+))?$`)
	constraintRegex = regexp.MustCompile(`^([~^]|>=|<=|>|<|=)?\s*(\S+)$`)
)

// ParseVersion parses a full, partial or wildcard version.
func ParseVersion(s string) (*Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	v := &Version{Original: s, Prerelease: matches[4]}
	fields := []*int{&v.Major, &v.Minor, &v.Patch}
	wildcard := false
	for i, part := range matches[1:4] {
		if part == "" || isWildcard(part) {
			wildcard = true
			continue
		}
		if wildcard {
			return nil, fmt.Errorf("%w: %q has a number after a wildcard", ErrInvalidVersion, s)
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: component %d of %q: %w", ErrInvalidVersion, i+1, s, err)
		}
		*fields[i] = n
		v.Precision++
	}

	if v.Prerelease != "" && v.Precision < 3 {
		return nil, fmt.Errorf("%w: prerelease on partial version %q", ErrInvalidVersion, s)
	}
	return v, nil
}

func isWildcard(part string) bool {
	return part == "x" || part == "X" || part == "*"
}

// String returns the version as originally written.
func (v *Version) String() string {
	return v.Original
}

// ParseConstraint parses a single comparator.
func ParseConstraint(s string) (*Constraint, error) {
	s = strings.TrimSpace(s)

	matches := constraintRegex.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("%w: comparator %q", ErrInvalidRange, s)
	}

	op := matches[1]
	if op == "" {
		op = "="
	}

	version, err := ParseVersion(matches[2])
	if err != nil {
		return nil, err
	}

	return &Constraint{Op: op, Version: version, Original: s}, nil
}

// ParseRange parses an engines-style range expression.
func ParseRange(s string) (*Range, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidRange)
	}

	r := &Range{Original: s}
	for alt := range strings.SplitSeq(s, "||") {
		fields := joinOperators(strings.Fields(alt))
		if len(fields) == 0 {
			return nil, fmt.Errorf("%w: empty alternative in %q", ErrInvalidRange, s)
		}

		var (
			set []*Constraint
			err error
		)
		if len(fields) == 3 && fields[1] == "-" {
			set, err = parseHyphen(fields[0], fields[2])
		} else {
			set, err = parseSet(fields)
		}
		if err != nil {
			return nil, fmt.Errorf("%w (in %q)", err, s)
		}
		r.Sets = append(r.Sets, set)
	}
	return r, nil
}

func parseSet(fields []string) ([]*Constraint, error) {
	set := make([]*Constraint, 0, len(fields))
	for _, f := range fields {
		c, err := ParseConstraint(f)
		if err != nil {
			return nil, err
		}
		set = append(set, c)
	}
	return set, nil
}

// parseHyphen reads "lo - hi" as the pair ">=lo <=hi". Both ends must be
// bare versions.
func parseHyphen(lo, hi string) ([]*Constraint, error) {
	set := make([]*Constraint, 0, 2)
	for _, end := range []struct{ op, text string }{{">=", lo}, {"<=", hi}} {
		v, err := ParseVersion(end.text)
		if err != nil {
			return nil, fmt.Errorf("%w: hyphen range bound: %w", ErrInvalidRange, err)
		}
		set = append(set, &Constraint{Op: end.op, Version: v, Original: end.text})
	}
	return set, nil
}

// joinOperators glues a dangling operator to the version that follows it,
// so ">= 12.4.0" is read as one comparator. The hyphen of "12 - 14" is not
// an operator and stays a field of its own.
func joinOperators(fields []string) []string {
	out := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		if strings.Trim(f, "<>=~^") == "" && i+1 < len(fields) {
			f += fields[i+1]
			i++
		}
		out = append(out, f)
	}
	return out
}

// String returns the range as originally written.
func (r *Range) String() string {
	return r.Original
}
