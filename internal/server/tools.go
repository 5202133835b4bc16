package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var (
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the source image file",
	}
	shapeProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"rect", "cross", "ellipse"},
		"description": "Structuring element shape. Default rect",
		"default":     "rect",
	}
	sizeProperty = map[string]interface{}{
		"type":        "integer",
		"description": "Kernel side length. Even values are rounded up to the next odd value. Default 3",
		"default":     3,
	}
	iterationsProperty = map[string]interface{}{
		"type":        "integer",
		"description": "Number of erosion passes, each applied to the previous result. Default 1",
		"default":     1,
	}
	maskProperty = map[string]interface{}{
		"type": "array",
		"items": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "integer", "enum": []int{0, 1}},
		},
		"description": "Optional custom kernel as rows of 0/1 cells (odd square). Overrides shape and size; must have at least one active cell",
	}
	grayModeProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"bt601", "lab"},
		"description": "How color sources are reduced to gray. Default bt601",
		"default":     "bt601",
	}
	outputPathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Optional file path for the result. Parent directories are created. Extension selects the format",
	}
	saveProperty = map[string]interface{}{
		"type":        "boolean",
		"description": "Save under the configured results directory when output_path is not given. Default false",
		"default":     false,
	}
	returnImageProperty = map[string]interface{}{
		"type":        "boolean",
		"description": "Include the result as base64-encoded PNG. Default true",
		"default":     true,
	}
	thresholdProperty = map[string]interface{}{
		"type":        "integer",
		"description": "Level (0-255) at or above which samples count as foreground in the reported stats. Default 128",
		"default":     128,
	}
	regionProperty = map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer", "description": "Left edge (inclusive)"},
			"y1": map[string]interface{}{"type": "integer", "description": "Top edge (inclusive)"},
			"x2": map[string]interface{}{"type": "integer", "description": "Right edge (exclusive)"},
			"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge (exclusive)"},
		},
		"description": "Optional region of interest. Only this part of the source is eroded",
	}
	namedRegionProperty = map[string]interface{}{
		"type": "string",
		"enum": []string{
			"top-left", "top-right", "bottom-left", "bottom-right",
			"top-half", "bottom-half", "left-half", "right-half", "center",
		},
		"description": "Optional named region of interest. Ignored when region is given",
	}
)

// erosionProperties returns the argument schema shared by the erosion tools,
// extended with extra.
func erosionProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"path":         pathProperty,
		"shape":        shapeProperty,
		"size":         sizeProperty,
		"iterations":   iterationsProperty,
		"mask":         maskProperty,
		"gray_mode":    grayModeProperty,
		"output_path":  outputPathProperty,
		"save":         saveProperty,
		"return_image": returnImageProperty,
		"threshold":    thresholdProperty,
		"region":       regionProperty,
		"named_region": namedRegionProperty,
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Source Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent erosion calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Kernel Construction
		{
			Name:        "erosion_kernel",
			Description: "Build a structuring element and return its cells as rows of 0/1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"shape": shapeProperty,
					"size":  sizeProperty,
					"mask":  maskProperty,
				},
			},
		},

		// Erosion Operations
		{
			Name:        "erosion_binary",
			Description: "Erode a two-valued image. The source is converted to gray and thresholded to 0/255 unless binarize is false. Erosion shrinks white regions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": erosionProperties(map[string]interface{}{
					"binarize": map[string]interface{}{
						"type":        "boolean",
						"description": "Threshold the source to 0/255 before eroding. Default true",
						"default":     true,
					},
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Binarization level (0-255); samples at or above become white. Default 128",
						"default":     128,
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "erosion_grayscale",
			Description: "Erode a multi-level gray image: every pixel becomes the minimum under the active kernel cells.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": erosionProperties(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "erosion_boundary",
			Description: "Erode a gray image and return the boundary view original - eroded, which highlights where erosion removed intensity.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": erosionProperties(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "erosion_batch",
			Description: "Run erosion for every kernel shape at each requested size and save each result as <output_dir>/<mode>/<mode>_erosion_<K>x<K>_<shape>.png.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"binary", "grayscale"},
						"description": "Erosion mode. Default grayscale",
						"default":     "grayscale",
					},
					"sizes": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Kernel sizes to run. Default [3, 5]",
					},
					"shapes": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string", "enum": []string{"rect", "cross", "ellipse"}},
						"description": "Kernel shapes to run. Default all three",
					},
					"iterations": iterationsProperty,
					"gray_mode":  grayModeProperty,
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Binarization level for binary mode. Default 128",
						"default":     128,
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Root directory for results. Default is the configured results directory",
					},
					"region":       regionProperty,
					"named_region": namedRegionProperty,
				},
				"required": []string{"path"},
			},
		},

		// Result History
		{
			Name:        "erosion_history",
			Description: "List the erosion results produced in this session, oldest first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "erosion_history_get",
			Description: "Return a previous erosion result by its 0-based position in the history as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Position in the history (0 = oldest)",
					},
				},
				"required": []string{"index"},
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
