package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"script-shelf/internal/catalog"
)

// ScriptTimeout bounds one launched script.
const ScriptTimeout = 60 * time.Second

// ScriptHost is the host side of the evaluation bridge: a single script
// runtime with file functions installed as globals. Commands arrive as
// source strings and results leave as strings, one evaluation at a time.
type ScriptHost struct {
	mu      sync.Mutex
	vm      *goja.Runtime
	files   *LocalExecutor
	scanner *catalog.Scanner
	logger  *slog.Logger
	timeout time.Duration
}

// NewScriptHost installs the host functions backed by files.
func NewScriptHost(files *LocalExecutor, logger *slog.Logger) *ScriptHost {
	if logger == nil {
		logger = slog.Default()
	}

	h := &ScriptHost{
		vm:      goja.New(),
		files:   files,
		scanner: catalog.NewScanner(),
		logger:  logger,
		timeout: ScriptTimeout,
	}
	h.install()
	return h
}

// Eval runs one command and returns its result as a string. Undefined and
// null results come back as "undefined" and "null".
func (h *ScriptHost) Eval(ctx context.Context, script string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	value, err := h.vm.RunString(script)
	if err != nil {
		var exc *goja.Exception
		if errors.As(err, &exc) {
			return "", &Error{Op: "eval", Reason: exc.Value().String(), Err: err}
		}
		return "", fmt.Errorf("evaluate host command: %w", err)
	}
	if value == nil || goja.IsUndefined(value) {
		return "undefined", nil
	}
	if goja.IsNull(value) {
		return "null", nil
	}
	return value.String(), nil
}

func (h *ScriptHost) install() {
	ctx := context.Background()

	h.vm.Set("getExtensionDataPath", func() string {
		dir, err := h.files.ResolveDataDirectory(ctx)
		if err != nil {
			h.logger.Warn("resolve data directory", "err", err)
			return "null"
		}
		return dir
	})

	// Read failures are thrown rather than returned so that no file content
	// can be mistaken for a failure.
	h.vm.Set("loadDataFromFile", func(path string) string {
		content, found, err := h.files.ReadFile(ctx, path)
		if err != nil {
			panic(h.vm.ToValue(reason(err)))
		}
		if !found {
			return "null"
		}
		return content
	})

	h.vm.Set("saveDataToFile", func(path, content string) string {
		if err := h.files.WriteFile(ctx, path, content); err != nil {
			return "Error: " + reason(err)
		}
		return resultSuccess
	})

	h.vm.Set("createDataBackup", func(src, dst string) string {
		if err := h.files.CopyFile(ctx, src, dst); err != nil {
			return "Error: " + reason(err)
		}
		return resultSuccess
	})

	h.vm.Set("getScriptFiles", func(folder string) string {
		scripts, err := h.scanner.Scan(folder)
		if err != nil {
			h.logger.Warn("scan scripts folder", "folder", folder, "err", err)
			return "null"
		}
		data, err := json.Marshal(scripts)
		if err != nil {
			return "null"
		}
		return string(data)
	})

	h.vm.Set("runScript", func(path string) string {
		result, err := h.runScript(path)
		if err != nil {
			h.logger.Warn("run script", "path", path, "err", err)
			return "Error: " + reason(err)
		}
		return result
	})
}

// runScript evaluates the script file at path in a fresh runtime, bounded by
// h.timeout. Undefined and null results report "success".
func (h *ScriptHost) runScript(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx":
	case ".jsxbin":
		return "", &Error{Op: "run", Path: path, Reason: "compiled jsxbin scripts cannot be evaluated"}
	default:
		return "", &Error{Op: "run", Path: path, Reason: "not a script file"}
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Op: "run", Path: path, Reason: err.Error(), Err: err}
	}

	vm := goja.New()
	done := make(chan struct {
		val goja.Value
		err error
	}, 1)
	go func() {
		val, err := vm.RunScript(filepath.Base(path), string(src))
		done <- struct {
			val goja.Value
			err error
		}{val, err}
	}()

	timer := time.NewTimer(h.timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		vm.Interrupt("timeout")
		return "", &Error{Op: "run", Path: path, Reason: "script timed out"}
	case res := <-done:
		if res.err != nil {
			var exc *goja.Exception
			if errors.As(res.err, &exc) {
				return "", &Error{Op: "run", Path: path, Reason: exc.Value().String(), Err: res.err}
			}
			return "", &Error{Op: "run", Path: path, Reason: res.err.Error(), Err: res.err}
		}
		if res.val == nil || goja.IsUndefined(res.val) || goja.IsNull(res.val) {
			return resultSuccess, nil
		}
		return res.val.String(), nil
	}
}

func reason(err error) string {
	var hostErr *Error
	if errors.As(err, &hostErr) {
		return hostErr.Reason
	}
	return err.Error()
}
