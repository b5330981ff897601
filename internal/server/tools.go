package server

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// profileProperty is the shared schema for the optional per-call profile
// override.
func profileProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"interactive", "single-shot"},
		"description": "Processing profile override. 'interactive' suits noisy camera/live input, 'single-shot' suits clean canvas strokes or scans. Defaults to the server profile.",
	}
}

// GetToolDefinitions returns all available tools.
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "digits_recognize",
			Description: "Recognize handwritten digits in an image. Returns each digit's bounding box and confidence plus the concatenated digit string in left-to-right order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"profile": profileProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "digits_regions",
			Description: "Segment an image into digit candidate regions without classifying them. Returns filtered bounding boxes with area, aspect ratio, and solidity, sorted left to right.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"profile": profileProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "digits_annotate",
			Description: "Recognize digits and return the image with each region boxed in a distinct color and labeled with its digit, as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"profile": profileProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_info",
			Description: "Get dimensions, format, and file size of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
