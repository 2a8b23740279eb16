package repositories

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns an ILIKE pattern that matches any text containing query.
// LIKE wildcards in query are escaped so they match literally. Surrounding blanks are ignored.
func containsPattern(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(query) + "%"
}
