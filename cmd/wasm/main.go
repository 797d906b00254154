//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/overlaydeck/overlaydeck/internal/editor"
	"github.com/overlaydeck/overlaydeck/internal/engine"
)

var (
	session *editor.Session

	commitCallback    js.Value
	selectionCallback js.Value
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// The frontend calls frame() from requestAnimationFrame.
	settings := engine.DefaultSettings()
	settings.BatchMoves = true

	session = editor.New(settings, 0, 0, editor.Hooks{
		OnCommit:          notifyCommit,
		OnSelectionChange: notifySelection,
	})

	overlayEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → editor) ---
	overlayEditor.Set("loadLayout", js.FuncOf(loadLayout))
	overlayEditor.Set("loadSampleLayout", js.FuncOf(loadSampleLayout))
	overlayEditor.Set("resize", js.FuncOf(resize))
	overlayEditor.Set("pointerDown", js.FuncOf(pointerDown))
	overlayEditor.Set("pointerMove", js.FuncOf(pointerMove))
	overlayEditor.Set("pointerUp", js.FuncOf(pointerUp))
	overlayEditor.Set("pointerLeave", js.FuncOf(pointerLeave))
	overlayEditor.Set("wheel", js.FuncOf(wheel))
	overlayEditor.Set("setSelection", js.FuncOf(setSelection))
	overlayEditor.Set("setSnapEnabled", js.FuncOf(setSnapEnabled))
	overlayEditor.Set("setShowGuides", js.FuncOf(setShowGuides))
	overlayEditor.Set("setGeometry", js.FuncOf(setGeometry))
	overlayEditor.Set("nudge", js.FuncOf(nudge))
	overlayEditor.Set("removeSelected", js.FuncOf(removeSelected))
	overlayEditor.Set("onCommit", js.FuncOf(onCommit))
	overlayEditor.Set("onSelectionChange", js.FuncOf(onSelectionChange))
	overlayEditor.Set("frame", js.FuncOf(frame))

	// --- Queries (frontend ← editor) ---
	overlayEditor.Set("render", js.FuncOf(render))
	overlayEditor.Set("hitTest", js.FuncOf(hitTest))
	overlayEditor.Set("getSelection", js.FuncOf(getSelection))
	overlayEditor.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	overlayEditor.Set("getLayout", js.FuncOf(getLayout))
	overlayEditor.Set("getView", js.FuncOf(getView))

	js.Global().Set("overlayEditor", overlayEditor)
	js.Global().Set("overlayWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadLayout(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing layout"})
	}
	if err := session.LoadData([]byte(args[0].String())); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleLayout(this js.Value, args []js.Value) interface{} {
	session.LoadSample()
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// resize(left, top, width, height) places the viewport on screen.
func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		return nil
	}
	session.Resize(args[0].Float(), args[1].Float(), args[2].Float(), args[3].Float())
	return nil
}

// pointerDown(x, y, button, modifiers) takes a DOM button number and an
// object with shift/ctrl/alt/meta flags.
func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	button := engine.MouseButtonLeft
	if len(args) > 2 {
		button = domButton(args[2].Int())
	}
	var mods engine.Modifiers
	if len(args) > 3 {
		mods = modifiers(args[3])
	}
	session.PointerDown(args[0].Float(), args[1].Float(), button, mods)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	session.PointerMove(args[0].Float(), args[1].Float())
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	session.PointerUp(args[0].Float(), args[1].Float())
	return nil
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	session.PointerLeave()
	return nil
}

// wheel(deltaY, modifiers) reports whether the zoom changed.
func wheel(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	var mods engine.Modifiers
	if len(args) > 1 {
		mods = modifiers(args[1])
	}
	return js.ValueOf(session.Wheel(args[0].Float(), mods))
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		session.SetSelection(nil)
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	session.SetSelection(ids)
	return nil
}

func setSnapEnabled(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	session.SetSnapEnabled(args[0].Bool())
	return nil
}

func setShowGuides(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	session.SetShowGuides(args[0].Bool())
	return nil
}

// setGeometry(id, rectJSON) places a component from a property panel.
func setGeometry(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"error": "missing id or rect"})
	}
	var r engine.Rect
	if err := json.Unmarshal([]byte(args[1].String()), &r); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	if err := session.SetGeometry(args[0].String(), r); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func nudge(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	session.Nudge(args[0].Float(), args[1].Float())
	return nil
}

func removeSelected(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.RemoveSelected())
}

func onCommit(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 && args[0].Type() == js.TypeFunction {
		commitCallback = args[0]
	}
	return nil
}

func onSelectionChange(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 && args[0].Type() == js.TypeFunction {
		selectionCallback = args[0]
	}
	return nil
}

// frame runs batched gesture work and returns the draw commands.
func frame(this js.Value, args []js.Value) interface{} {
	session.Frame()
	return js.ValueOf(session.Render())
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.Render())
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	return js.ValueOf(session.HitTest(args[0].Float(), args[1].Float()))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(session.Selection())
	return js.ValueOf(string(data))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	r, _ := session.SelectionBounds()
	return js.ValueOf(editor.RectToJSON(r))
}

func getLayout(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(session.LayoutJSON())
}

func getView(this js.Value, args []js.Value) interface{} {
	data, _ := json.Marshal(session.View())
	return js.ValueOf(string(data))
}

// --- Callbacks (editor → frontend) ---

func notifyCommit(changes []engine.Geometry) {
	if commitCallback.Type() != js.TypeFunction {
		return
	}
	data, err := json.Marshal(changes)
	if err != nil {
		slog.Error("marshal commit", "error", err)
		return
	}
	commitCallback.Invoke(string(data))
}

func notifySelection(ids []string) {
	if selectionCallback.Type() != js.TypeFunction {
		return
	}
	data, _ := json.Marshal(ids)
	selectionCallback.Invoke(string(data))
}

func domButton(b int) engine.MouseButton {
	switch b {
	case 1:
		return engine.MouseButtonMiddle
	case 2:
		return engine.MouseButtonRight
	}
	return engine.MouseButtonLeft
}

func modifiers(v js.Value) engine.Modifiers {
	if v.Type() != js.TypeObject {
		return 0
	}
	var m engine.Modifiers
	flags := []struct {
		key string
		mod engine.Modifiers
	}{
		{"shift", engine.ModShift},
		{"ctrl", engine.ModCtrl},
		{"alt", engine.ModAlt},
		{"meta", engine.ModMeta},
	}
	for _, f := range flags {
		if v.Get(f.key).Truthy() {
			m |= f.mod
		}
	}
	return m
}
