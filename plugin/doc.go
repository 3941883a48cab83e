// Package plugin loads user functions and declaration replacers written as
// expr-lang expressions.
//
// A plugin file is YAML:
//
//	functions:
//	  increment: args[0] + 1
//	  brand: colors["color-8"] ?? "black"
//	replacers:
//	  - key: key == "colour" ? "color" : key
//	  - value: replace(value, "!important", "")
//
// A function sees its arguments as args (numbers as float64, unresolved as
// nil, anything else as its CSS text) and the context maps colors,
// numbers and strings. A replacer sees key and value; an omitted key or
// value expression keeps the input.
package plugin
