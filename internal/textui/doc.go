// Package textui is a line-oriented inspector surface.
//
// Rows are written as an indented tree. Interaction comes from a Script of
// steps, each naming a field path and what to do with it: pick a variant,
// set a value (a YAML scalar decoded into the field's type) or fold a group
// open or closed.
//
//	steps:
//	  - path: Person
//	    select: Student
//	  - path: Person
//	    expand: true
//	  - path: HP
//	    value: "150"
package textui
