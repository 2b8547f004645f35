package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/qr-locate/internal/detection"
	"github.com/ironsheep/qr-locate/internal/grid"
	"github.com/ironsheep/qr-locate/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_locate_qr").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies the server's pipeline defaults for omitted parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Pipeline Stages
	case "image_greyscale":
		return s.handleImageGreyscale(args)
	case "image_sobel":
		return s.handleImageSobel(args)
	case "image_locate_qr":
		return s.handleImageLocateQR(args)

	// Region Operations
	case "image_crop_region":
		return s.handleImageCropRegion(args)

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

// greyscaleFor loads path and converts it to a greyscale grid.
func (s *Server) greyscaleFor(path string) (*grid.Grid, error) {
	ch, err := imaging.LoadChannels(s.cache, path)
	if err != nil {
		return nil, err
	}
	return detection.Greyscale(ch.R, ch.G, ch.B)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Pipeline Stage Handlers ===

func (s *Server) handleImageGreyscale(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	grey, err := s.greyscaleFor(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodeBase64PNG(imaging.ToGray(grey))
}

type imageSobelArgs struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
}

func (s *Server) handleImageSobel(args json.RawMessage) (interface{}, error) {
	var a imageSobelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = "magnitude"
	}

	var op func(*grid.Grid) *grid.Grid
	switch a.Mode {
	case "vertical":
		op = detection.VerticalEdges
	case "horizontal":
		op = detection.HorizontalEdges
	case "magnitude":
		op = detection.EdgeMagnitude
	default:
		return nil, fmt.Errorf("unknown sobel mode: %s", a.Mode)
	}

	grey, err := s.greyscaleFor(a.Path)
	if err != nil {
		return nil, err
	}
	edges := detection.ScaleTo0And255(op(grey))
	return imaging.EncodeBase64PNG(imaging.ToGray(edges))
}

type imageLocateQRArgs struct {
	Path            string          `json:"path"`
	SmoothingPasses *int            `json:"smoothing_passes"`
	Threshold       *float64        `json:"threshold"`
	Overlay         *detection.Rect `json:"overlay,omitempty"`
	Color           string          `json:"color"`
}

// LocateResult is the output of the image_locate_qr tool.
type LocateResult struct {
	imaging.EncodedImage
	Overlay detection.Rect  `json:"overlay"`
	Stats   detection.Stats `json:"stats"`
}

// handleImageLocateQR runs the full pipeline on the image at args.path.
//
// Parameters (JSON):
//   - path: Image file to analyse (required).
//   - smoothing_passes: Box-average passes; an explicit 0 disables smoothing.
//   - threshold: Foreground threshold on the 0-255 scale.
//   - overlay: Rectangle drawn on the result.
//   - color: Overlay colour in hex; invalid values fall back to green.
//
// Returns a *LocateResult holding the binary PNG with the overlay drawn on it,
// the overlay used and the run statistics.
//
// # Errors
//
//   - Returns error if the merged parameters are invalid (negative passes or
//     overlay size)
//   - Returns error if the image cannot be loaded
func (s *Server) handleImageLocateQR(args json.RawMessage) (interface{}, error) {
	var a imageLocateQRArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg := s.defaults
	if a.SmoothingPasses != nil {
		cfg.SmoothingPasses = *a.SmoothingPasses
	}
	if a.Threshold != nil {
		cfg.Threshold = *a.Threshold
	}
	if a.Overlay != nil {
		cfg.Overlay = *a.Overlay
	}
	if a.Color == "" {
		a.Color = imaging.DefaultOverlayColor
	}

	p, err := detection.NewPipeline(cfg, s.logger)
	if err != nil {
		return nil, err
	}
	ch, err := imaging.LoadChannels(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	res, err := p.Run(ch)
	if err != nil {
		return nil, err
	}

	img := imaging.RenderOverlay(res.Binary, res.Overlay, a.Color, imaging.DefaultOverlayLineWidth)
	enc, err := imaging.EncodeBase64PNG(img)
	if err != nil {
		return nil, err
	}
	return &LocateResult{
		EncodedImage: *enc,
		Overlay:      res.Overlay,
		Stats:        res.Stats,
	}, nil
}

// === Region Operation Handlers ===

type imageCropRegionArgs struct {
	Path   string         `json:"path"`
	Region detection.Rect `json:"region"`
	Scale  float64        `json:"scale"`
}

func (s *Server) handleImageCropRegion(args json.RawMessage) (interface{}, error) {
	var a imageCropRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.CropRegion(img, a.Region, a.Scale)
}
