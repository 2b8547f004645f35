package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func rectProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x":      map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
			"y":      map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
			"width":  map[string]interface{}{"type": "integer", "description": "Width in pixels"},
			"height": map[string]interface{}{"type": "integer", "description": "Height in pixels"},
		},
		"required": []string{"x", "y", "width", "height"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Pipeline Stages
		{
			Name:        "image_greyscale",
			Description: "Convert an image to greyscale using 0.299R + 0.587G + 0.114B and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_sobel",
			Description: "Compute absolute Sobel edge responses of the greyscale image, rescaled to 0-255 for display. The one-pixel border is always 0.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"vertical", "horizontal", "magnitude"},
						"description": "Which response to return. magnitude is |vertical| + |horizontal|. Default magnitude",
						"default":     "magnitude",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_locate_qr",
			Description: "Run the QR locator pipeline (greyscale, Sobel edge magnitude, repeated 3x3 box smoothing, 0-255 normalization, threshold) and return the binary image with the overlay rectangle drawn on top.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"smoothing_passes": map[string]interface{}{
						"type":        "integer",
						"description": "Number of 3x3 box-average passes (>= 0). Default 8",
						"default":     8,
					},
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Cells at or above this normalized value become foreground. Default 70",
						"default":     70,
					},
					"overlay": rectProperty("Rectangle to draw over the result. Default x=10, y=30, width=70, height=50"),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Overlay colour in hex format. Default #00FF00",
						"default":     "#00FF00",
					},
				},
				"required": []string{"path"},
			},
		},

		// Region Operations
		{
			Name:        "image_crop_region",
			Description: "Crop a rectangular region (such as the overlay rectangle) from the source image and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"region": rectProperty("Region to extract"),
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor. Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path", "region"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
