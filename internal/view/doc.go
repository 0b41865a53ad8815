// Package view provides the input panel that stands in for an editor's
// modal prompt.
//
// A Panel shows at most one prompt. Opening a prompt while another is open
// cancels the old one first. Handlers always run after the panel state has
// been updated and without any lock held, so a handler may close the
// prompt or open a new one.
package view
