package bordertax

import (
	"fmt"

	"github.com/reoring/bordertax/i18n"
)

// IssueAt creates an Issue at the given path. The translator renders the
// message from code, the key/value params and detail.
func IssueAt(p PathRef, code, detail string, kv ...any) Issue {
	data := make(map[string]string, len(kv)/2+1)
	for i := 0; i+1 < len(kv); i += 2 {
		data[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
	}
	if detail != "" {
		data["detail"] = detail
	}
	return p.Issue(code, i18n.T(code, data), kv...)
}

func singleIssue(p PathRef, code, detail string, cause error, kv ...any) Issues {
	it := IssueAt(p, code, detail, kv...)
	it.Cause = cause
	return Issues{it}
}
