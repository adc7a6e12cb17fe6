package agent

import (
	"regexp"
	"strings"
)

// actionRe matches an action directive at the start of a line:
//
//	Action: <tool_name>: <input>
var actionRe = regexp.MustCompile(`(?m)^Action:\s*([\w-]+):\s*(.*)$`)

// parseAction returns the first action directive in the model reply.
// At most one action is executed per turn; later matches are ignored.
func parseAction(content string) (name, input string, ok bool) {
	m := actionRe.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}
