// Package completion computes completion candidates for the command entry.
//
// A View holds named completers. The default completer proposes command
// names; when the typed text already contains a space, the completer
// registered under the first word takes over ("set" completes setting
// names). Candidates are ranked by a fuzzy Filter.
//
// Moving the selection past either end returns to the text the user typed.
package completion
