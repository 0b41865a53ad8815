// Package lua runs user scripts against an editing surface.
//
// Scripts see a single global table, sbp, and a reduced standard library
// (base, string, table and math). Offsets are 0-based byte offsets and rows
// and columns are 0-based, matching the host surface.
//
//	sbp.text()                     -- full buffer text
//	sbp.selection()                -- primary selection as anchor, head
//	sbp.select(a, b)               -- replace the selections with (a, b)
//	sbp.rowcol(offset)             -- row, col
//	sbp.text_point(row, col)       -- offset, col clipped to the row
//	sbp.registers.get(name)        -- content or ""
//	sbp.registers.store(name, s)
//	sbp.registers.contains(name)
//	sbp.registers.keys()           -- sorted names
//	sbp.registers.capture(name)    -- store the selection, as the prompt would
//	sbp.registers.insert(name)     -- insert a register over the selection
//	sbp.rect.delete()
//	sbp.rect.insert(content)
//	sbp.rect.text()                -- rows of the selection's rectangle
//	sbp.run(id [, args])           -- run a registered command
//	sbp.log(...)                   -- write to the sbp log
//
// Execution is bounded by a timeout through the Lua state's context.
package lua
