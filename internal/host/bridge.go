package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"script-shelf/internal/domain"
)

// Evaluator sends a command string across the bridge and returns the raw
// result string.
type Evaluator interface {
	Eval(ctx context.Context, script string) (string, error)
}

// BridgeExecutor implements Executor by sending commands to an Evaluator.
// Arguments are percent-encoded for the channel and decoded by the command
// itself, so stored files stay plain JSON.
type BridgeExecutor struct {
	eval   Evaluator
	logger *slog.Logger
}

// NewBridgeExecutor wraps eval.
func NewBridgeExecutor(eval Evaluator, logger *slog.Logger) *BridgeExecutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &BridgeExecutor{eval: eval, logger: logger}
}

// ResolveDataDirectory asks the host for its writable extension data path.
func (b *BridgeExecutor) ResolveDataDirectory(ctx context.Context) (string, error) {
	result, id, err := b.call(ctx, "resolve", "getExtensionDataPath()")
	if err != nil {
		return "", err
	}
	if IsAbsent(result) || isErrorResult(result) {
		return "", b.fail(&Error{Op: "resolve", Reason: "data directory unavailable", CallID: id})
	}
	return strings.TrimSpace(result), nil
}

// ReadFile loads path through the host, collapsing the no-data sentinels.
// Host read failures arrive as evaluation errors, so any returned string is
// file content, even one that starts with "Error:".
func (b *BridgeExecutor) ReadFile(ctx context.Context, path string) (string, bool, error) {
	result, _, err := b.call(ctx, "read", command("loadDataFromFile", path))
	if err != nil {
		return "", false, err
	}
	if IsAbsent(result) {
		return "", false, nil
	}
	return result, true, nil
}

// WriteFile stores content at path; any result other than "success" fails.
func (b *BridgeExecutor) WriteFile(ctx context.Context, path, content string) error {
	result, id, err := b.call(ctx, "write", command("saveDataToFile", path, content))
	if err != nil {
		return err
	}
	if result != resultSuccess {
		return b.fail(&Error{Op: "write", Path: path, Reason: errorReason(result), CallID: id})
	}
	return nil
}

// CopyFile asks the host to copy src to dst.
func (b *BridgeExecutor) CopyFile(ctx context.Context, src, dst string) error {
	result, id, err := b.call(ctx, "copy", command("createDataBackup", src, dst))
	if err != nil {
		return err
	}
	if result != resultSuccess {
		return b.fail(&Error{Op: "copy", Path: src, Reason: errorReason(result), CallID: id})
	}
	return nil
}

// ListScripts asks the host to scan folder for script files.
func (b *BridgeExecutor) ListScripts(ctx context.Context, folder string) ([]domain.Script, error) {
	result, id, err := b.call(ctx, "scan", command("getScriptFiles", folder))
	if err != nil {
		return nil, err
	}
	if IsAbsent(result) {
		return nil, b.fail(&Error{Op: "scan", Path: folder, Reason: "no script files found", CallID: id})
	}

	var scripts []domain.Script
	if err := json.Unmarshal([]byte(result), &scripts); err != nil {
		return nil, b.fail(&Error{Op: "scan", Path: folder, Reason: "invalid script list", Err: err, CallID: id})
	}
	return scripts, nil
}

// RunScript asks the host to launch the script at path and returns its
// result. Results that report an error in either language fail.
func (b *BridgeExecutor) RunScript(ctx context.Context, path string) (string, error) {
	result, id, err := b.call(ctx, "run", command("runScript", path))
	if err != nil {
		return "", err
	}
	if isErrorResult(result) || strings.Contains(result, "错误") || strings.Contains(result, "失败") {
		return "", b.fail(&Error{Op: "run", Path: path, Reason: errorReason(result), CallID: id})
	}
	return result, nil
}

// call evaluates script and returns the raw result with the call id used in
// logs and errors.
func (b *BridgeExecutor) call(ctx context.Context, op, script string) (string, string, error) {
	id := uuid.NewString()
	b.logger.Debug("host call", "id", id, "op", op)

	result, err := b.eval.Eval(ctx, script)
	if err != nil {
		reason := err.Error()
		var hostErr *Error
		if errors.As(err, &hostErr) {
			reason = hostErr.Reason
		}
		return "", id, b.fail(&Error{Op: op, Reason: reason, Err: err, CallID: id})
	}

	b.logger.Debug("host call done", "id", id, "op", op, "bytes", len(result))
	return result, id, nil
}

func (b *BridgeExecutor) fail(err *Error) *Error {
	b.logger.Warn("host call failed", "id", err.CallID, "op", err.Op, "path", err.Path, "reason", err.Reason)
	return err
}

// command renders fn(arg1, arg2, ...) with every argument percent-encoded
// and wrapped in decodeURIComponent.
func command(fn string, args ...string) string {
	encoded := make([]string, len(args))
	for i, arg := range args {
		encoded[i] = fmt.Sprintf("decodeURIComponent(%q)", url.PathEscape(arg))
	}
	return fn + "(" + strings.Join(encoded, ", ") + ")"
}

func isErrorResult(result string) bool {
	return strings.HasPrefix(result, "Error:")
}

func errorReason(result string) string {
	r := strings.TrimSpace(strings.TrimPrefix(result, "Error:"))
	if r == "" {
		return "unknown host error"
	}
	return r
}
