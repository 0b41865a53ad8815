// Package command provides the named command registry through which key
// bindings, scripts and the command line drive the register and rectangle
// features.
//
// Commands are identified by stable IDs such as "sbp_rectangle_delete".
// Each receives the registry's Env, which carries the surface and the
// engines bound to it, plus a map of validated arguments:
//
//	r := command.NewRegistry(env)
//	if err := command.RegisterBuiltins(r); err != nil {
//	    return err
//	}
//	r.Run("sbp_rectangle_insert", command.Args{"content": "Z"})
//
// Search ranks commands with a fuzzy matcher and boosts recently run
// ones, for use by interactive pickers.
package command
