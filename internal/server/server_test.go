package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/poko950615-bit/mnist-app/internal/classify"
	"github.com/poko950615-bit/mnist-app/internal/pipeline"
	"github.com/poko950615-bit/mnist-app/internal/raster"
	"github.com/poko950615-bit/mnist-app/internal/render"
	"github.com/poko950615-bit/mnist-app/internal/segment"
)

// newTestServer builds a server whose pipeline answers every region with a
// fixed digit, so tool tests need no recognition backend.
func newTestServer(digit int) *Server {
	return New(pipeline.New(segment.SingleShot(), classify.NewStub(digit)))
}

// writeDigitPNG writes a 60x60 dark frame with one bright vertical stroke and
// returns its path. The stroke segments as exactly one digit region.
func writeDigitPNG(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 60, 60))
	for y := 12; y < 44; y++ {
		for x := 20; x < 30; x++ {
			img.SetGray(x, y, color.Gray{Y: 220})
		}
	}
	path := filepath.Join(t.TempDir(), "digit.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode temp png: %v", err)
	}
	return path
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer(0)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})

	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result has unexpected type %T", resp.Result)
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok || info["name"] != "digit-mcp" {
		t.Errorf("serverInfo: got %v", result["serverInfo"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(0)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 2, Method: "ping"})
	if resp == nil || resp.Error != nil {
		t.Errorf("ping must succeed, got %+v", resp)
	}
}

func TestHandleRequest_NotificationSilent(t *testing.T) {
	s := newTestServer(0)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Errorf("notification must produce no response, got %+v", resp)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	s := newTestServer(0)
	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 3, Method: "bogus/method"})
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Errorf("unknown method: got %+v, want error -32601", resp.Error)
	}
}

func TestToolsList(t *testing.T) {
	s := newTestServer(0)
	resp := s.handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 4, Method: "tools/list"})

	result := resp.Result.(map[string]interface{})
	tools := result["tools"].([]Tool)

	want := map[string]bool{
		"digits_recognize": false,
		"digits_regions":   false,
		"digits_annotate":  false,
		"image_info":       false,
	}
	for _, tool := range tools {
		if _, known := want[tool.Name]; !known {
			t.Errorf("unexpected tool %q", tool.Name)
			continue
		}
		want[tool.Name] = true
		if tool.Description == "" || tool.InputSchema == nil {
			t.Errorf("tool %q missing description or schema", tool.Name)
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("tool %q not listed", name)
		}
	}
}

func TestServe_RoundTrip(t *testing.T) {
	s := newTestServer(0)

	var in bytes.Buffer
	in.WriteString(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n")
	in.WriteString(`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n")
	in.WriteString(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}` + "\n")

	var out bytes.Buffer
	if err := s.serve(&in, &out); err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response line: %v", err)
		}
		responses = append(responses, resp)
	}

	// The notification gets no response: two requests in, two responses out.
	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}
	for _, resp := range responses {
		if resp.JSONRPC != "2.0" || resp.Error != nil {
			t.Errorf("bad response: %+v", resp)
		}
	}
}

func TestExecuteTool_DigitsRecognize(t *testing.T) {
	s := newTestServer(7)
	path := writeDigitPNG(t)

	args, _ := json.Marshal(map[string]string{"path": path})
	result, err := s.executeTool("digits_recognize", args)
	if err != nil {
		t.Fatalf("digits_recognize failed: %v", err)
	}

	res, ok := result.(*pipeline.Result)
	if !ok {
		t.Fatalf("result has unexpected type %T", result)
	}
	if res.Text != "7" || res.Count != 1 {
		t.Errorf("got text %q count %d, want \"7\" and 1", res.Text, res.Count)
	}
}

func TestExecuteTool_ProfileOverride(t *testing.T) {
	s := newTestServer(7)
	path := writeDigitPNG(t)

	args, _ := json.Marshal(map[string]string{"path": path, "profile": "interactive"})
	result, err := s.executeTool("digits_recognize", args)
	if err != nil {
		t.Fatalf("digits_recognize failed: %v", err)
	}
	res := result.(*pipeline.Result)
	if res.Text != "7" {
		t.Errorf("got text %q, want \"7\"", res.Text)
	}

	// The override must not stick to the shared pipeline.
	if s.pipe.Profile.Name != "single-shot" {
		t.Errorf("shared pipeline profile mutated to %q", s.pipe.Profile.Name)
	}
}

func TestExecuteTool_DigitsRegions(t *testing.T) {
	s := newTestServer(0)
	path := writeDigitPNG(t)

	args, _ := json.Marshal(map[string]string{"path": path})
	result, err := s.executeTool("digits_regions", args)
	if err != nil {
		t.Fatalf("digits_regions failed: %v", err)
	}

	res, ok := result.(*regionsResult)
	if !ok {
		t.Fatalf("result has unexpected type %T", result)
	}
	if res.Count != 1 || len(res.Regions) != 1 {
		t.Fatalf("got %d regions, want 1", res.Count)
	}

	r := res.Regions[0]
	if r.W <= 0 || r.H <= 0 || r.Area <= 0 {
		t.Errorf("degenerate region stats: %+v", r)
	}
	if r.AspectRatio <= 0 || r.Solidity <= 0 || r.Solidity > 1 {
		t.Errorf("implausible shape stats: %+v", r)
	}
}

func TestExecuteTool_DigitsAnnotate(t *testing.T) {
	s := newTestServer(5)
	path := writeDigitPNG(t)

	args, _ := json.Marshal(map[string]string{"path": path})
	result, err := s.executeTool("digits_annotate", args)
	if err != nil {
		t.Fatalf("digits_annotate failed: %v", err)
	}

	res, ok := result.(*render.OverlayResult)
	if !ok {
		t.Fatalf("result has unexpected type %T", result)
	}
	if res.Width != 60 || res.Height != 60 {
		t.Errorf("dimensions: got %dx%d, want 60x60", res.Width, res.Height)
	}
	if res.MimeType != "image/png" || res.ImageBase64 == "" {
		t.Errorf("missing image payload: mime %q", res.MimeType)
	}
}

func TestExecuteTool_ImageInfo(t *testing.T) {
	s := newTestServer(0)
	path := writeDigitPNG(t)

	args, _ := json.Marshal(map[string]string{"path": path})
	result, err := s.executeTool("image_info", args)
	if err != nil {
		t.Fatalf("image_info failed: %v", err)
	}

	info, ok := result.(*raster.FileInfo)
	if !ok {
		t.Fatalf("result has unexpected type %T", result)
	}
	if info.Width != 60 || info.Height != 60 || info.Format != "png" {
		t.Errorf("unexpected file info: %+v", info)
	}
}

func TestExecuteTool_Failures(t *testing.T) {
	s := newTestServer(0)
	path := writeDigitPNG(t)

	if _, err := s.executeTool("no_such_tool", nil); err == nil {
		t.Error("unknown tool must fail")
	}

	args, _ := json.Marshal(map[string]string{"path": filepath.Join(t.TempDir(), "missing.png")})
	if _, err := s.executeTool("digits_recognize", args); err == nil {
		t.Error("missing file must fail")
	}

	args, _ = json.Marshal(map[string]string{"path": path, "profile": "turbo"})
	if _, err := s.executeTool("digits_recognize", args); err == nil {
		t.Error("unknown profile must fail")
	}
}

func TestHandleToolsCall_ErrorCodes(t *testing.T) {
	s := newTestServer(0)

	resp := s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0", ID: 5, Method: "tools/call",
		Params: json.RawMessage(`{invalid json`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Errorf("invalid params: got %+v, want -32602", resp.Error)
	}

	resp = s.handleToolsCall(&MCPRequest{
		JSONRPC: "2.0", ID: 6, Method: "tools/call",
		Params: json.RawMessage(`{"name":"no_such_tool","arguments":{}}`),
	})
	if resp.Error == nil || resp.Error.Code != -32000 {
		t.Errorf("tool failure: got %+v, want -32000", resp.Error)
	}
}
