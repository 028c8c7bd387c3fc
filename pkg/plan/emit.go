package plan

import (
	"github.com/codesync/codesync/pkg/match"
)

// Section header texts. They're part of the plan's observable surface: users
// navigate a plan by these comments, so the wording stays stable.
const (
	HeaderMatches = "Source files matched to a single destination file. " +
		"Edit a Destination if a file should go elsewhere."
	HeaderOneLeft = "These matches may be incorrect: other files claimed the " +
		"better candidates. Review each Destination before syncing."
	HeaderAmbiguous = "Source files that matched several destination files. " +
		"To resolve one, change Ignore to Copy and uncomment the right Destination."
	HeaderSourceOrphans = "Source files with no counterpart in the destination " +
		"tree. To copy one, change Ignore to Copy and add a Destination."
	HeaderDestOrphans = "Destination files with no counterpart in the source " +
		"tree. They are listed for reference and have no effect while commented out."

	HeaderPreviousMatches = "Matches carried forward from the previous plan."
	HeaderPreviousPartial = "Entries from the previous plan whose files no " +
		"longer exist. Fix the paths or delete the entries."
	HeaderPreviousIgnores = "Ignore entries carried forward from the previous plan."
)

// WriteResult appends a matcher result to the plan, one section per
// classification. Sections that produced nothing are omitted entirely,
// header included.
func WriteResult(w *Writer, result *match.Result) {
	if len(result.Matches) > 0 {
		w.SectionHeader(HeaderMatches)
		for _, m := range result.Matches {
			w.Copy(Entry{Source: m.Source, Destination: m.Dest})
		}
	}

	if len(result.OneLeft) > 0 {
		w.SectionHeader(HeaderOneLeft)
		for _, m := range result.OneLeft {
			w.Copy(Entry{Source: m.Source, Destination: m.Dest})
		}
	}

	if len(result.Ambiguous) > 0 {
		w.SectionHeader(HeaderAmbiguous)
		for _, amb := range result.Ambiguous {
			w.Ambiguous(amb.Source, amb.Candidates)
		}
	}

	if len(result.SourceOrphans) > 0 {
		w.SectionHeader(HeaderSourceOrphans)
		for _, path := range result.SourceOrphans {
			w.IgnoreSource(path)
		}
	}

	if len(result.DestOrphans) > 0 {
		w.SectionHeader(HeaderDestOrphans)
		for _, path := range result.DestOrphans {
			w.CommentedIgnoreDest(path)
		}
	}
}
