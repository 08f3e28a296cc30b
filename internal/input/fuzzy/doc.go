// Package fuzzy ranks action names and key bindings against a short query.
//
// A candidate matches when every query rune appears in it in order. Matches
// are scored by how tightly and where the runes land: consecutive runes,
// runes at word starts (after '.', space or a camelCase hump) and a shared
// prefix all score higher, gaps and long candidates score lower.
//
//	m := fuzzy.NewMatcher(fuzzy.DefaultOptions())
//	for _, r := range m.Match("selnext", actions, 3) {
//	    fmt.Println(r.Text, r.Score)
//	}
//
// Suggest is the shortcut used for "did you mean" messages.
package fuzzy
