// Package term is the interactive terminal front end. It draws one document
// with tcell and maps Emacs-style key sequences onto the command registry,
// the register prompts and basic cursor motion.
//
// Register and rectangle keys:
//
//	C-space   set mark
//	C-x r s   copy selection to register
//	C-x r i   insert register
//	C-x r d   delete rectangle
//	C-x r t   replace rectangle with text
//	C-o       open line
//	C-l       recenter
//	C-g       cancel mark or prompt
package term
