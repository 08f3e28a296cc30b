package plugin

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/sentencenav/internal/config/notify"
	"github.com/dshills/sentencenav/internal/dispatcher"
	"github.com/dshills/sentencenav/internal/dispatcher/execctx"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	sentencecmd "github.com/dshills/sentencenav/internal/dispatcher/handlers/sentence"
	"github.com/dshills/sentencenav/internal/input"
	"github.com/dshills/sentencenav/internal/input/keymap"
)

// NavigatorName is the name of the built-in sentence plugin.
const NavigatorName = "sentence-navigator"

// Navigator is the built-in plugin that provides the sentence commands.
//
// Loading it registers the sentence namespace, binds the default sentence
// keys that are not already taken, makes the shared sentence pattern follow
// the sentence.pattern setting, and saves pattern changes made through
// sentence.setPattern and sentence.resetPattern to the data file.
type Navigator struct {
	mu     sync.Mutex
	env    Env
	loaded bool
	hooked bool
	sub    *notify.Subscription
	bound  []string
}

// NewNavigator creates the sentence plugin.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Name implements Plugin.
func (n *Navigator) Name() string {
	return NavigatorName
}

// Load implements Plugin. An invalid configured pattern is logged and the
// current pattern kept; it does not fail the load.
func (n *Navigator) Load(_ context.Context, env Env) error {
	if env.Dispatcher == nil {
		return ErrNoDispatcher
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.loaded {
		return fmt.Errorf("%s: %w", NavigatorName, ErrAlreadyLoaded)
	}

	if env.Config != nil && env.Sentences != nil {
		sub, err := env.Config.BindSentence(env.Sentences)
		if err != nil {
			env.warnf("%s: %v", NavigatorName, err)
		}
		n.sub = sub
	}

	h := sentencecmd.NewHandler()
	env.Dispatcher.RegisterNamespace(h.Namespace(), h)
	if !n.hooked {
		env.Dispatcher.RegisterPostHook(dispatcher.PostDispatchFunc(n.persist))
		n.hooked = true
	}

	n.bound = n.bound[:0]
	if env.Keymap != nil {
		for _, b := range keymap.DefaultBindings() {
			if b.Category != keymap.CategorySentence {
				continue
			}
			if _, ok := env.Keymap.ForAction(b.Action); ok {
				continue
			}
			if err := env.Keymap.Add(b); err != nil {
				env.warnf("%s: %v", NavigatorName, err)
				continue
			}
			n.bound = append(n.bound, b.Action)
		}
	}

	n.env = env
	n.loaded = true
	env.debugf("%s loaded", NavigatorName)
	return nil
}

// Unload implements Plugin. Bindings the user configured are kept.
func (n *Navigator) Unload(_ context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.loaded {
		return nil
	}
	n.env.Dispatcher.UnregisterNamespace(sentencecmd.NewHandler().Namespace())
	if n.sub != nil {
		n.sub.Unsubscribe()
		n.sub = nil
	}
	if n.env.Keymap != nil {
		for _, action := range n.bound {
			n.env.Keymap.Unbind(action)
		}
	}
	n.bound = nil
	n.loaded = false
	return nil
}

// Bound returns the actions whose default bindings Load added.
func (n *Navigator) Bound() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.bound...)
}

func (n *Navigator) persist(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if action.Name != sentencecmd.ActionSetPattern && action.Name != sentencecmd.ActionResetPattern {
		return
	}
	n.mu.Lock()
	env, loaded := n.env, n.loaded
	n.mu.Unlock()

	if !loaded || ctx.DryRun || result.Status != handler.StatusOK || ctx.Sentences == nil {
		return
	}
	if err := env.savePattern(ctx.Sentences.Source()); err != nil {
		env.warnf("%s: saving pattern: %v", NavigatorName, err)
		result.Message = fmt.Sprintf("%s (not saved: %v)", result.Message, err)
	}
}
