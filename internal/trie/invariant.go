package trie

import "fmt"

// fatalf reports a condition spec.md §7 calls out as impossible under the
// structure's invariants (a condemned root, a null or data node handed to
// prune, ...). These are programming errors, not recoverable runtime
// conditions, so — matching both the teacher (ctrie.go's
// panic("Map is in an invalid state")) and the original Rust source's
// .expect(...) calls — they abort via panic rather than an error return.
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
