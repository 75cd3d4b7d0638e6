package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/mgomes/arith/arith"
)

func TestRunCLIStartsLSPAndExitsOnEOF(t *testing.T) {
	origStdin := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close write pipe: %v", err)
	}
	os.Stdin = r
	defer func() {
		os.Stdin = origStdin
		_ = r.Close()
	}()

	if err := runCLI([]string{"arith", "lsp"}); err != nil {
		t.Fatalf("runCLI lsp failed: %v", err)
	}
}

func TestDiagnosticsForSourceWithoutErrors(t *testing.T) {
	engine := arith.MustNewEngine(arith.Config{})
	diags := diagnosticsForSource(engine, "1 + 2\n\n(3 * 4) - 5\n")
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %d", len(diags))
	}
}

func TestDiagnosticsForSourceWithParseError(t *testing.T) {
	engine := arith.MustNewEngine(arith.Config{})
	diags := diagnosticsForSource(engine, "1 + 2\n3 * (4\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	first := diags[0]
	if first["severity"] != 1 {
		t.Fatalf("expected severity 1, got %#v", first["severity"])
	}
	start := first["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 || start["character"] != 6 {
		t.Fatalf("unexpected start: %#v", start)
	}
	message, ok := first["message"].(string)
	if !ok || !strings.HasPrefix(message, "parse error:") {
		t.Fatalf("unexpected diagnostic message: %#v", first["message"])
	}
}

func TestDiagnosticsForSourceDivisionByZeroIsWarning(t *testing.T) {
	engine := arith.MustNewEngine(arith.Config{})
	diags := diagnosticsForSource(engine, "4 / (2 - 2)")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(diags))
	}
	if diags[0]["severity"] != 2 {
		t.Fatalf("expected severity 2, got %#v", diags[0]["severity"])
	}
}

func TestHandleMessageInitializeAdvertisesCapabilities(t *testing.T) {
	server := &lspServer{engine: arith.MustNewEngine(arith.Config{}), docs: make(map[string]string)}
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: rawID("1"), Method: "initialize"})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	result := messages[0].Result.(map[string]any)
	caps := result["capabilities"].(map[string]any)
	if caps["hoverProvider"] != true || caps["textDocumentSync"] != 1 {
		t.Fatalf("unexpected capabilities: %#v", caps)
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := &lspServer{
		engine: arith.MustNewEngine(arith.Config{}),
		docs:   make(map[string]string),
	}
	payload := mustMarshal(t, map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.arith",
			"text": "1 +\n2 ^ 3\n",
		},
	})

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one publishDiagnostics notification, got %d", len(messages))
	}
	if messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("unexpected method: %q", messages[0].Method)
	}
	paramsMap, ok := messages[0].Params.(map[string]any)
	if !ok {
		t.Fatalf("unexpected params payload: %#v", messages[0].Params)
	}
	diags, ok := paramsMap["diagnostics"].([]map[string]any)
	if !ok {
		t.Fatalf("unexpected diagnostics payload: %#v", paramsMap["diagnostics"])
	}
	if len(diags) != 2 {
		t.Fatalf("expected two diagnostics, got %d", len(diags))
	}
	if server.docs["file:///tmp/test.arith"] != "1 +\n2 ^ 3\n" {
		t.Fatalf("document not stored")
	}
}

func TestHandleMessageDidCloseClearsDiagnostics(t *testing.T) {
	server := &lspServer{
		engine: arith.MustNewEngine(arith.Config{}),
		docs:   map[string]string{"file:///tmp/test.arith": "1 +"},
	}
	payload := mustMarshal(t, map[string]any{
		"textDocument": map[string]any{"uri": "file:///tmp/test.arith"},
	})
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", Method: "textDocument/didClose", Params: payload})
	if len(messages) != 1 {
		t.Fatalf("expected one notification, got %d", len(messages))
	}
	diags := messages[0].Params.(map[string]any)["diagnostics"].([]map[string]any)
	if len(diags) != 0 {
		t.Fatalf("expected cleared diagnostics, got %d", len(diags))
	}
	if _, ok := server.docs["file:///tmp/test.arith"]; ok {
		t.Fatalf("document not removed")
	}
}

func TestHandleMessageHoverShowsValue(t *testing.T) {
	server := &lspServer{
		engine: arith.MustNewEngine(arith.Config{}),
		docs: map[string]string{
			"file:///tmp/test.arith": "1 + 1\n7/2\n",
		},
	}
	payload := mustMarshal(t, map[string]any{
		"textDocument": map[string]any{"uri": "file:///tmp/test.arith"},
		"position":     map[string]any{"line": 1, "character": 1},
	})

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		ID:      rawID("1"),
		Method:  "textDocument/hover",
		Params:  payload,
	})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	result, ok := messages[0].Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected hover result: %#v", messages[0].Result)
	}
	contents := result["contents"].(map[string]any)
	if contents["value"] != "`7 / 2` = 3.5" {
		t.Fatalf("unexpected hover value: %#v", contents["value"])
	}
}

func TestHoverContents(t *testing.T) {
	engine := arith.MustNewEngine(arith.Config{})
	source := "1 / 0\n\n1 +\n"
	if got := hoverContents(engine, source, 0); got != "`1 / 0`\n\ndivision by zero" {
		t.Fatalf("unexpected hover: %q", got)
	}
	if got := hoverContents(engine, source, 1); got != "" {
		t.Fatalf("expected empty hover on blank line, got %q", got)
	}
	if got := hoverContents(engine, source, 2); !strings.Contains(got, "parse error: expected") {
		t.Fatalf("unexpected hover: %q", got)
	}
	if got := hoverContents(engine, source, 10); got != "" {
		t.Fatalf("expected empty hover past end, got %q", got)
	}
}

func TestHandleMessageUnknownMethod(t *testing.T) {
	server := &lspServer{engine: arith.MustNewEngine(arith.Config{}), docs: make(map[string]string)}
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: rawID("7"), Method: "textDocument/completion"})
	if len(messages) != 1 || messages[0].Error == nil || messages[0].Error.Code != -32601 {
		t.Fatalf("expected method not found, got %#v", messages)
	}
	if got := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", Method: "$/cancelRequest"}); got != nil {
		t.Fatalf("notifications get no reply, got %#v", got)
	}
}

func TestServeFramesMessages(t *testing.T) {
	var in bytes.Buffer
	for _, body := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"textDocument/didOpen","params":{"textDocument":{"uri":"file:///x.arith","text":"1 / 0"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	} {
		fmt.Fprintf(&in, "Content-Length: %d\r\n\r\n%s", len(body), body)
	}
	var out bytes.Buffer

	if err := newLSPServer(&in, &out, testEnv(t)).serve(); err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	got := out.String()
	if strings.Count(got, "Content-Length: ") != 3 {
		t.Fatalf("expected three framed messages, got %q", got)
	}
	if !strings.Contains(got, `"name":"arith-lsp"`) {
		t.Fatalf("missing initialize result: %q", got)
	}
	if !strings.Contains(got, `"message":"division by zero"`) {
		t.Fatalf("missing diagnostic: %q", got)
	}
	if !strings.Contains(got, `{"jsonrpc":"2.0","id":2,"result":null}`) {
		t.Fatalf("shutdown response must carry a null result: %q", got)
	}
}

func TestHoverOnBlankLineReturnsNullResult(t *testing.T) {
	server := &lspServer{
		engine: arith.MustNewEngine(arith.Config{}),
		docs:   map[string]string{"file:///tmp/test.arith": "\n"},
	}
	payload := mustMarshal(t, map[string]any{
		"textDocument": map[string]any{"uri": "file:///tmp/test.arith"},
		"position":     map[string]any{"line": 0, "character": 0},
	})
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: rawID("3"), Method: "textDocument/hover", Params: payload})
	if len(messages) != 1 {
		t.Fatalf("expected one response, got %d", len(messages))
	}
	data, err := json.Marshal(messages[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"jsonrpc":"2.0","id":3,"result":null}` {
		t.Fatalf("unexpected response %s", data)
	}
}

func TestReadPayloadRequiresContentLength(t *testing.T) {
	server := newLSPServer(strings.NewReader("X-Other: 1\r\n\r\n{}"), &bytes.Buffer{}, testEnv(t))
	if _, err := server.readPayload(); err == nil || !strings.Contains(err.Error(), "missing Content-Length") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}
	return payload
}

func rawID(value string) *json.RawMessage {
	raw := json.RawMessage(value)
	return &raw
}
