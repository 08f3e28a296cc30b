// Package lua runs plugin scripts on gopher-lua.
//
// A State is a sandboxed interpreter: only the base, table, string and math
// libraries are opened, dofile/loadfile/load are removed, and require only
// resolves preloaded modules. Every call into Lua runs under a deadline, so
// a runaway script fails with ErrExecutionTimeout instead of hanging the
// editor.
//
// The sentence module gives scripts the same commands the editor binds to
// keys:
//
//	local sentence = require("sentence")
//	for _, s in ipairs(sentence.spans(sentence.line(0))) do
//	    print(s.start, s["end"], s.text)
//	end
//	sentence.delete_to_start()
//
// Lines and columns are zero-based and columns count code points, matching
// the engine.
package lua
