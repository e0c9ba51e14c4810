package parse

import (
	"strconv"
	"strings"
)

// applyDirectiveLine parses the body of a "%..." directive-line token
// (without the leading '%') and folds it into dirs. Unknown directives are
// recorded as warnings by the caller, not here.
func applyDirectiveLine(dirs *Directives, line string) (ok bool, warn string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, "empty directive"
	}
	switch fields[0] {
	case "YAML":
		if len(fields) < 2 {
			return false, "%YAML directive missing version"
		}
		parts := strings.SplitN(fields[1], ".", 2)
		if len(parts) != 2 {
			return false, "%YAML directive has malformed version " + fields[1]
		}
		major, err1 := strconv.Atoi(parts[0])
		minor, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return false, "%YAML directive has malformed version " + fields[1]
		}
		dirs.VersionMajor = major
		dirs.VersionMinor = minor
		dirs.HasVersion = true
		return true, ""
	case "TAG":
		if len(fields) < 3 {
			return false, "%TAG directive requires a handle and a prefix"
		}
		dirs.Tags[fields[1]] = fields[2]
		return true, ""
	default:
		return false, "unknown directive %" + fields[0]
	}
}
