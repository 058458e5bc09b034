package spirit

// Trace counts the pseudonyms of table that were confirmed as exposed, and raises
// an alarm when at least limit of them were.
func Trace(confirmed *ConfirmedSnapshot, table *ExposureTable, limit int) (int, bool) {
	count := 0
	if confirmed == nil || table == nil {
		return count, count >= limit
	}
	for _, elid := range confirmed.elids {
		if table.Contains(elid) {
			count++
		}
	}
	return count, count >= limit
}
