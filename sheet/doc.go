// Package sheet walks the declarations of a CSS stylesheet and renders it
// back as compact text.
//
// Walk tokenizes the source with the tdewolff CSS lexer, hands every
// declaration to a hook in document order (nested blocks such as @media
// included), lets a second hook see all declarations once the document is
// complete, and renders the result:
//
//	.foo {
//	  color: red;  /* note */
//	  margin:0   auto
//	}
//
// becomes
//
//	.foo{color: red;margin: 0 auto}
//
// Comments are dropped, whitespace runs collapse to one space, and a
// semicolon closes the last declaration of a block only when the source
// had one.
package sheet
