package leads

// ShouldCommit decides, after a contact merge, whether a lead should be
// persisted for this turn. A lead is written only on the first turn where
// phone and email are both known: later turns that change another field
// while both remain present must not re-emit the same contact.
func ShouldCommit(after ContactInfo, changed, alreadyCommitted bool) bool {
	return changed && !alreadyCommitted && after.Reachable()
}
