package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// scriptEntryPoint is the global function a strategy script must define. It
// receives the state table built by stateTable and returns a direction name
// ("up", "right", "down" or "left").
const scriptEntryPoint = "nextDirection"

// ScriptStrategy runs a Lua autopilot. The script is compiled once and a
// fresh interpreter executes it for every decision.
type ScriptStrategy struct {
	Name  string
	proto *lua.FunctionProto
}

func CompileScriptStrategy(name, source string) (*ScriptStrategy, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("parse strategy %s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile strategy %s: %w", name, err)
	}
	return &ScriptStrategy{Name: name, proto: proto}, nil
}

func LoadScriptStrategy(path string) (*ScriptStrategy, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy: %w", err)
	}
	return CompileScriptStrategy(filepath.Base(path), string(source))
}

func (s *ScriptStrategy) NextDirection(state Snapshot, cfg Config) (Direction, error) {
	luaState := lua.NewState()
	defer luaState.Close()

	luaState.Push(luaState.NewFunctionFromProto(s.proto))
	if err := luaState.PCall(0, 0, nil); err != nil {
		return state.HeadDirection, fmt.Errorf("load strategy %s: %w", s.Name, err)
	}

	fn := luaState.GetGlobal(scriptEntryPoint)
	if fn.Type() != lua.LTFunction {
		return state.HeadDirection, fmt.Errorf("strategy %s does not define %s", s.Name, scriptEntryPoint)
	}

	luaState.Push(fn)
	luaState.Push(stateTable(luaState, state, cfg))
	if err := luaState.PCall(1, 1, nil); err != nil {
		return state.HeadDirection, fmt.Errorf("run strategy %s: %w", s.Name, err)
	}

	ret := luaState.Get(-1)
	luaState.Pop(1)
	name, ok := ret.(lua.LString)
	if !ok {
		return state.HeadDirection, fmt.Errorf("strategy %s returned %s, expected string", s.Name, ret.Type())
	}
	return ParseDirection(string(name))
}

// stateTable exposes a snapshot to Lua:
//
//	{ width, height, wrap, direction, head = {x, y}, body = {{x, y}, ...}, food = {{x, y}, ...} }
func stateTable(luaState *lua.LState, state Snapshot, cfg Config) *lua.LTable {
	points := func(ps []Point) *lua.LTable {
		tbl := luaState.NewTable()
		for _, p := range ps {
			tbl.Append(pointTable(luaState, p))
		}
		return tbl
	}

	tbl := luaState.NewTable()
	luaState.SetField(tbl, "width", lua.LNumber(cfg.Width))
	luaState.SetField(tbl, "height", lua.LNumber(cfg.Height))
	luaState.SetField(tbl, "wrap", lua.LBool(cfg.WrapAround))
	luaState.SetField(tbl, "direction", lua.LString(state.HeadDirection.String()))
	if len(state.Body) > 0 {
		luaState.SetField(tbl, "head", pointTable(luaState, state.Head()))
	}
	luaState.SetField(tbl, "body", points(state.Body))
	luaState.SetField(tbl, "food", points(state.Food))
	return tbl
}

func pointTable(luaState *lua.LState, p Point) *lua.LTable {
	tbl := luaState.NewTable()
	luaState.SetField(tbl, "x", lua.LNumber(p.X))
	luaState.SetField(tbl, "y", lua.LNumber(p.Y))
	return tbl
}
