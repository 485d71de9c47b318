// Package pruner removes catalog containers left without thread entries.
package pruner

import "git.home.luguber.info/inful/threadtable/internal/threaddoc"

// Stats counts what Prune removed.
type Stats struct {
	Designations int
	Sizes        int
}

// Prune drops every Designation without Thread entries, then every ThreadSize
// without Designations. Afterwards each retained ThreadSize has at least one
// Designation and each retained Designation has at least one Thread.
func Prune(tt *threaddoc.ThreadType) Stats {
	var st Stats
	st.Sizes = tt.RetainSizes(func(size *threaddoc.ThreadSize) bool {
		st.Designations += size.RetainDesignations(func(d *threaddoc.Designation) bool {
			return d.ThreadCount() > 0
		})
		return len(size.Designations()) > 0
	})
	return st
}
