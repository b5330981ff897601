package server

import (
	"encoding/json"
	"fmt"

	"github.com/poko950615-bit/mnist-app/internal/pipeline"
	"github.com/poko950615-bit/mnist-app/internal/raster"
	"github.com/poko950615-bit/mnist-app/internal/render"
	"github.com/poko950615-bit/mnist-app/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "digits_recognize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified
// tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "digits_recognize":
		return s.handleDigitsRecognize(args)
	case "digits_regions":
		return s.handleDigitsRegions(args)
	case "digits_annotate":
		return s.handleDigitsAnnotate(args)
	case "image_info":
		return s.handleImageInfo(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// recognizeArgs covers every digit tool: a path plus an optional profile
// override.
type recognizeArgs struct {
	Path    string `json:"path"`
	Profile string `json:"profile"`
}

// pipelineFor clones the server pipeline with the requested profile, leaving
// the shared pipeline untouched.
func (s *Server) pipelineFor(name string) (*pipeline.Pipeline, error) {
	p := *s.pipe
	if name == "" {
		return &p, nil
	}
	profile, ok := segment.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown profile %q (want interactive or single-shot)", name)
	}
	p.Profile = profile
	return &p, nil
}

func (s *Server) handleDigitsRecognize(args json.RawMessage) (interface{}, error) {
	var a recognizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	pipe, err := s.pipelineFor(a.Profile)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	frame, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	return pipe.Recognize(frame)
}

// regionInfo is one segmentation candidate with its shape statistics.
type regionInfo struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	W           int     `json:"w"`
	H           int     `json:"h"`
	Area        int     `json:"area"`
	AspectRatio float64 `json:"aspect_ratio"`
	Solidity    float64 `json:"solidity"`
}

// regionsResult contains the filtered candidate regions, sorted left to
// right.
type regionsResult struct {
	Regions []regionInfo `json:"regions"`
	Count   int          `json:"count"`
}

func (s *Server) handleDigitsRegions(args json.RawMessage) (interface{}, error) {
	var a recognizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	pipe, err := s.pipelineFor(a.Profile)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	frame, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	_, regions, err := pipe.Segment(frame)
	if err != nil {
		return nil, err
	}

	out := &regionsResult{Regions: make([]regionInfo, 0, len(regions)), Count: len(regions)}
	for _, r := range regions {
		out.Regions = append(out.Regions, regionInfo{
			X:           r.X,
			Y:           r.Y,
			W:           r.W,
			H:           r.H,
			Area:        r.Area,
			AspectRatio: r.AspectRatio(),
			Solidity:    r.Solidity(),
		})
	}
	return out, nil
}

func (s *Server) handleDigitsAnnotate(args json.RawMessage) (interface{}, error) {
	var a recognizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	pipe, err := s.pipelineFor(a.Profile)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	frame, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	result, err := pipe.Recognize(frame)
	if err != nil {
		return nil, err
	}
	return render.Annotate(img, result.Regions)
}

type imageInfoArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return raster.LoadFileInfo(s.cache, a.Path)
}
