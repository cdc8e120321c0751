// Package clif translates Common Logic Interchange Format sentences into
// Existential Graphs and renders graphs back into CLIF.
//
// Translation follows Peirce's alpha and beta encodings:
//
//	(not P)           cut[ P ]
//	(or P Q)          cut[ cut[ P ] cut[ Q ] ]
//	(if P Q)          cut[ P cut[ Q ] ]
//	(exists (x) P)    x P
//	(forall (x) P)    cut[ x cut[ P ] ]
//
// Outer cuts produced by or, if and forall carry a clif_construct property
// so that Render can rebuild the original connective.
package clif
