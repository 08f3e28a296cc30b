// Package dispatcher routes actions to handlers and coordinates execution.
//
// An action such as "sentence.deleteToStart" is resolved first through the
// Router, which maps the namespace before the first dot to a
// handler.NamespaceHandler, and then through the Registry, which holds
// handlers registered under an exact name (plugin commands use this).
//
// Every dispatch builds an execctx.ExecutionContext carrying the engine, the
// sentence pattern config, the clipboard, the open document and a logger.
// Pre-dispatch hooks may rewrite or cancel the action; post-dispatch hooks
// see the result.
//
// Basic usage:
//
//	d := dispatcher.NewWithDefaults()
//	d.SetEngine(eng)
//	d.SetSentences(cfg)
//	d.RegisterNamespace("sentence", sentencehandler.NewHandler())
//
//	result := d.Dispatch(input.NewAction("sentence.select", input.SourceKeyboard))
//	if result.IsError() {
//	    // report result.Error
//	}
//
// Handler panics are recovered into a StatusError result when
// Config.RecoverFromPanic is set, which is the default.
package dispatcher
