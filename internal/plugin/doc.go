// Package plugin loads the editor's plugins.
//
// A Plugin registers commands with the dispatcher and keys with the keymap
// when loaded and removes them when unloaded. The sentence commands are
// themselves a plugin, the built-in Navigator. Everything else is a Lua
// script run by a Host.
//
// # Plugin Structure
//
// Lua plugins live in the configured plugins directory, either as a single
// file or as a directory:
//
//	plugins/wordcount.lua
//	plugins/sentence-tools/
//	├── plugin.json      # Manifest (optional)
//	└── init.lua         # Entry point
//
// # Manifest
//
//	{
//	  "name": "sentence-tools",
//	  "version": "1.0.0",
//	  "main": "init.lua",
//	  "commands": [
//	    {"id": "show", "title": "Show sentence", "keys": "Ctrl+Alt+U"}
//	  ]
//	}
//
// Command ids without a dot are placed under the plugin name, so the
// command above dispatches as "sentence-tools.show".
//
// # Lua API
//
//	local nav = require("sentencenav")
//	local sentence = require("sentence")
//
//	nav.command("show", function(args)
//	    sentence.select()
//	    return "selected " .. sentence.selected_text()
//	end)
//
//	function deactivate() nav.log("bye") end
//
// A command returns nothing, a status message, or false plus an optional
// message when it did nothing. See package lua for the sentence module.
package plugin
