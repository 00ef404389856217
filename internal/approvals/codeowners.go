package approvals

import (
	"fmt"
	"strings"

	"github.com/google/shlex"
)

// Rules maps a path glob to the set of owners registered for it. The glob
// "*" applies to every changed file.
type Rules map[string]map[string]struct{}

// ParseOwnerRules parses the text of an owner-declaration file into Rules.
//
// A line is significant iff it is non-empty, does not start with a space
// and does not start with '#'. Everything else (comments, indented
// continuations) is skipped. Significant lines are split with shell-word
// rules so quoted globs and owner names survive; the first word is the
// glob, the rest are owners with one leading '@' stripped. The same glob
// on several lines unions into one owner set.
func ParseOwnerRules(content string) (Rules, error) {
	rules := Rules{}

	for _, line := range strings.Split(content, "\n") {
		if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "#") {
			continue
		}

		words, err := shlex.Split(line)
		if err != nil {
			return nil, fmt.Errorf("parsing owners line %q: %w", line, err)
		}
		if len(words) == 0 {
			continue
		}

		glob := words[0]
		owners, ok := rules[glob]
		if !ok {
			owners = map[string]struct{}{}
			rules[glob] = owners
		}
		for _, owner := range words[1:] {
			owners[strings.TrimPrefix(owner, "@")] = struct{}{}
		}
	}

	return rules, nil
}
