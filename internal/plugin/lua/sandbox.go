package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// safeModules are the built-in modules require may return.
var safeModules = map[string]bool{
	lua.BaseLibName:   true,
	lua.TabLibName:    true,
	lua.StringLibName: true,
	lua.MathLibName:   true,
}

// installSandbox removes the functions that read or run code from disk and
// replaces require so it only resolves safe built-ins and preloaded
// modules.
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	pkg, ok := L.GetGlobal("package").(*lua.LTable)
	if !ok {
		return
	}
	L.SetField(pkg, "path", lua.LString(""))
	L.SetField(pkg, "cpath", lua.LString(""))
	preload, _ := L.GetField(pkg, "preload").(*lua.LTable)
	loaded, _ := L.GetField(pkg, "loaded").(*lua.LTable)

	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)

		if loaded != nil {
			if mod := loaded.RawGetString(name); mod != lua.LNil && (safeModules[name] || preloaded(preload, name)) {
				L.Push(mod)
				return 1
			}
		}
		if !preloaded(preload, name) {
			L.RaiseError("module %q is not available", name)
			return 0
		}

		L.Push(preload.RawGetString(name))
		L.Push(lua.LString(name))
		L.Call(1, 1)
		mod := L.Get(-1)
		if loaded != nil {
			loaded.RawSetString(name, mod)
		}
		return 1
	}))
}

func preloaded(preload *lua.LTable, name string) bool {
	if preload == nil {
		return false
	}
	_, ok := preload.RawGetString(name).(*lua.LFunction)
	return ok
}
