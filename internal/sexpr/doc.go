// Package sexpr reads the S-expression surface syntax of CLIF. It knows
// nothing about logic: it only turns text into a tree of atoms and lists,
// remembering where each element started so later stages can report
// errors against the source.
package sexpr
