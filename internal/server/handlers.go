package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/erosion-mcp/internal/imaging"
	"github.com/ironsheep/erosion-mcp/internal/morph"
)

// defaultThreshold is the binarization level used when none is given.
const defaultThreshold = 128

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "erosion_binary").
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

	start := time.Now()
	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Str("tool", params.Name).Err(err).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.Info().Str("tool", params.Name).Dur("elapsed", time.Since(start)).Msg("tool call")

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
//  2. Applies default values for optional parameters
//  3. Loads and converts the source image through the cache
//  4. Calls the morph engine and the imaging collaborators
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "erosion_kernel":
		return s.handleErosionKernel(args)
	case "erosion_binary":
		return s.handleErosion(ctx, modeBinary, args)
	case "erosion_grayscale":
		return s.handleErosion(ctx, modeGrayscale, args)
	case "erosion_boundary":
		return s.handleErosion(ctx, modeBoundary, args)
	case "erosion_batch":
		return s.handleErosionBatch(ctx, args)
	case "erosion_history":
		return s.handleErosionHistory()
	case "erosion_history_get":
		return s.handleErosionHistoryGet(args)
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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Source Image Handlers ===

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

// === Kernel Handlers ===

type kernelArgs struct {
	Shape string  `json:"shape"`
	Size  int     `json:"size"`
	Mask  [][]int `json:"mask,omitempty"`
}

// KernelResult describes a structuring element.
type KernelResult struct {
	Label       string  `json:"label"`
	Shape       string  `json:"shape"`
	Size        int     `json:"size"`
	ActiveCells int     `json:"active_cells"`
	Cells       [][]int `json:"cells"`
}

func (s *Server) handleErosionKernel(args json.RawMessage) (interface{}, error) {
	var a kernelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	k, shape, err := s.kernelFor(a)
	if err != nil {
		return nil, err
	}
	return describeKernel(k, shape), nil
}

// kernelFor builds the kernel named by a. A mask takes precedence over
// shape/size and is validated strictly, since a user-supplied kernel with no
// active cells is a mistake rather than a fallback case.
func (s *Server) kernelFor(a kernelArgs) (*morph.Kernel, string, error) {
	if a.Mask != nil {
		grid := make([][]bool, len(a.Mask))
		for r, row := range a.Mask {
			grid[r] = make([]bool, len(row))
			for c, v := range row {
				grid[r][c] = v != 0
			}
		}
		k, err := morph.NewKernel(grid)
		if err != nil {
			return nil, "", err
		}
		if err := k.Validate(); err != nil {
			return nil, "", err
		}
		return k, "custom", nil
	}

	if a.Shape == "" {
		a.Shape = morph.Rectangle.String()
	}
	if a.Size == 0 {
		a.Size = 3
	}
	if a.Size > s.cfg.MaxKernelSize {
		return nil, "", fmt.Errorf("kernel size %d exceeds maximum %d", a.Size, s.cfg.MaxKernelSize)
	}

	shape, err := morph.ParseShape(a.Shape)
	if err != nil {
		return nil, "", err
	}
	k, err := morph.BuildKernel(shape, a.Size)
	if err != nil {
		return nil, "", err
	}
	return k, shape.String(), nil
}

func describeKernel(k *morph.Kernel, shape string) *KernelResult {
	grid := k.Grid()
	cells := make([][]int, len(grid))
	for r, row := range grid {
		cells[r] = make([]int, len(row))
		for c, on := range row {
			if on {
				cells[r][c] = 1
			}
		}
	}
	return &KernelResult{
		Label:       kernelLabel(k, shape),
		Shape:       shape,
		Size:        k.Size(),
		ActiveCells: k.ActiveCount(),
		Cells:       cells,
	}
}

// kernelLabel formats a kernel as "<K>x<K>_<shape>", the naming used for
// result files and history titles.
func kernelLabel(k *morph.Kernel, shape string) string {
	return fmt.Sprintf("%dx%d_%s", k.Size(), k.Size(), shape)
}

// === Erosion Handlers ===

const (
	modeBinary    = "binary"
	modeGrayscale = "grayscale"
	modeBoundary  = "boundary"
)

type erosionArgs struct {
	Path        string  `json:"path"`
	Shape       string  `json:"shape"`
	Size        int     `json:"size"`
	Mask        [][]int `json:"mask,omitempty"`
	Iterations  int     `json:"iterations"`
	GrayMode    string  `json:"gray_mode"`
	OutputPath  string  `json:"output_path"`
	Save        bool    `json:"save"`
	ReturnImage *bool   `json:"return_image"`
	Binarize    *bool   `json:"binarize"`
	Threshold   *int    `json:"threshold"`

	Region      *imaging.Region `json:"region,omitempty"`
	NamedRegion string          `json:"named_region"`
}

// ErosionStats compares the source with the eroded image.
type ErosionStats struct {
	Before  imaging.Stats        `json:"before"`
	After   imaging.Stats        `json:"after"`
	Changed *imaging.ChangeStats `json:"changed"`
}

// ErosionResult describes a single erosion run.
type ErosionResult struct {
	Mode         string               `json:"mode"`
	Kernel       string               `json:"kernel"`
	KernelSize   int                  `json:"kernel_size"`
	ActiveCells  int                  `json:"active_cells"`
	Iterations   int                  `json:"iterations"`
	Width        int                  `json:"width"`
	Height       int                  `json:"height"`
	BinaryOutput bool                 `json:"binary_output"`
	SavedPath    string               `json:"saved_path,omitempty"`
	HistoryIndex int                  `json:"history_index"`
	Stats        *ErosionStats        `json:"stats"`
	Image        *imaging.ImageResult `json:"image,omitempty"`
}

func (s *Server) handleErosion(ctx context.Context, mode string, args json.RawMessage) (interface{}, error) {
	var a erosionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	iterations, err := s.iterationsFor(a.Iterations)
	if err != nil {
		return nil, err
	}
	k, shape, err := s.kernelFor(kernelArgs{Shape: a.Shape, Size: a.Size, Mask: a.Mask})
	if err != nil {
		return nil, err
	}

	level, err := thresholdFor(a.Threshold)
	if err != nil {
		return nil, err
	}
	src, err := s.loadGray(a.Path, a.GrayMode, a.Region, a.NamedRegion)
	if err != nil {
		return nil, err
	}
	if mode == modeBinary && (a.Binarize == nil || *a.Binarize) {
		src = imaging.Binarize(src, level)
	}

	out, err := s.erode(ctx, mode, src, k, iterations)
	if err != nil {
		return nil, err
	}
	changed, err := imaging.Compare(src, out)
	if err != nil {
		return nil, err
	}
	stats := &ErosionStats{
		Before:  imaging.Measure(src, level),
		After:   imaging.Measure(out, level),
		Changed: changed,
	}
	if mode == modeBoundary {
		if out, err = imaging.Boundary(src, out); err != nil {
			return nil, err
		}
	}

	label := kernelLabel(k, shape)
	savedPath := a.OutputPath
	if savedPath == "" && a.Save {
		savedPath = filepath.Join(s.cfg.ResultsDir, mode, fmt.Sprintf("erosion_%s_iter%d.png", label, iterations))
	}
	if savedPath != "" {
		if err := imaging.Save(out, savedPath); err != nil {
			return nil, err
		}
	}

	idx := s.history.Add(imaging.HistoryEntry{
		Title:      fmt.Sprintf("%s - Erosion %s (iter %d)", strings.ToUpper(mode), label, iterations),
		Source:     a.Path,
		Mode:       mode,
		Kernel:     label,
		Iterations: iterations,
		SavedPath:  savedPath,
		Image:      out,
	})

	result := &ErosionResult{
		Mode:         mode,
		Kernel:       label,
		KernelSize:   k.Size(),
		ActiveCells:  k.ActiveCount(),
		Iterations:   iterations,
		Width:        out.Bounds().Dx(),
		Height:       out.Bounds().Dy(),
		BinaryOutput: imaging.IsBinary(out),
		SavedPath:    savedPath,
		HistoryIndex: idx,
		Stats:        stats,
	}
	if a.ReturnImage == nil || *a.ReturnImage {
		if result.Image, err = imaging.EncodePNGBase64(out); err != nil {
			return nil, err
		}
	}
	return result, nil
}

type erosionBatchArgs struct {
	Path       string   `json:"path"`
	Mode       string   `json:"mode"`
	Sizes      []int    `json:"sizes"`
	Shapes     []string `json:"shapes"`
	Iterations int      `json:"iterations"`
	GrayMode   string   `json:"gray_mode"`
	Threshold  *int     `json:"threshold"`
	OutputDir  string   `json:"output_dir"`

	Region      *imaging.Region `json:"region,omitempty"`
	NamedRegion string          `json:"named_region"`
}

// BatchItem is one kernel of a batch run.
type BatchItem struct {
	Kernel       string `json:"kernel"`
	SavedPath    string `json:"saved_path"`
	HistoryIndex int    `json:"history_index"`
}

// BatchResult lists every result of a batch run in execution order.
type BatchResult struct {
	Mode       string      `json:"mode"`
	Iterations int         `json:"iterations"`
	OutputDir  string      `json:"output_dir"`
	Results    []BatchItem `json:"results"`
}

func (s *Server) handleErosionBatch(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a erosionBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	if a.Mode == "" {
		a.Mode = modeGrayscale
	}
	if a.Mode != modeBinary && a.Mode != modeGrayscale {
		return nil, fmt.Errorf("unknown mode: %s (expected binary or grayscale)", a.Mode)
	}
	if len(a.Sizes) == 0 {
		a.Sizes = []int{3, 5}
	}
	if len(a.Shapes) == 0 {
		for _, sh := range morph.Shapes {
			a.Shapes = append(a.Shapes, sh.String())
		}
	}
	if a.OutputDir == "" {
		a.OutputDir = s.cfg.ResultsDir
	}

	iterations, err := s.iterationsFor(a.Iterations)
	if err != nil {
		return nil, err
	}

	// Validate every kernel before doing any work.
	type job struct {
		k     *morph.Kernel
		shape string
	}
	var jobs []job
	for _, size := range a.Sizes {
		for _, name := range a.Shapes {
			k, shape, err := s.kernelFor(kernelArgs{Shape: name, Size: size})
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job{k: k, shape: shape})
		}
	}

	src, err := s.loadGray(a.Path, a.GrayMode, a.Region, a.NamedRegion)
	if err != nil {
		return nil, err
	}
	if a.Mode == modeBinary {
		level, err := thresholdFor(a.Threshold)
		if err != nil {
			return nil, err
		}
		src = imaging.Binarize(src, level)
	}

	result := &BatchResult{Mode: a.Mode, Iterations: iterations, OutputDir: a.OutputDir}
	for _, j := range jobs {
		out, err := s.erode(ctx, a.Mode, src, j.k, iterations)
		if err != nil {
			return nil, err
		}

		label := kernelLabel(j.k, j.shape)
		path := filepath.Join(a.OutputDir, a.Mode, fmt.Sprintf("%s_erosion_%s.png", a.Mode, label))
		if err := imaging.Save(out, path); err != nil {
			return nil, err
		}

		idx := s.history.Add(imaging.HistoryEntry{
			Title:      fmt.Sprintf("%s - Erosion %s (iter %d)", strings.ToUpper(a.Mode), label, iterations),
			Source:     a.Path,
			Mode:       a.Mode,
			Kernel:     label,
			Iterations: iterations,
			SavedPath:  path,
			Image:      out,
		})
		result.Results = append(result.Results, BatchItem{Kernel: label, SavedPath: path, HistoryIndex: idx})
	}
	return result, nil
}

// === History Handlers ===

// HistoryItem is a history entry with its position.
type HistoryItem struct {
	Index int `json:"index"`
	imaging.HistoryEntry
}

// HistoryResult lists the session's results.
type HistoryResult struct {
	Count   int           `json:"count"`
	Results []HistoryItem `json:"results"`
}

func (s *Server) handleErosionHistory() (interface{}, error) {
	entries := s.history.List()
	result := &HistoryResult{Count: len(entries), Results: make([]HistoryItem, len(entries))}
	for i, e := range entries {
		result.Results[i] = HistoryItem{Index: i, HistoryEntry: e}
	}
	return result, nil
}

type historyGetArgs struct {
	Index *int `json:"index"`
}

// HistoryGetResult is one history entry with its image.
type HistoryGetResult struct {
	HistoryItem
	Total int                  `json:"total"`
	Image *imaging.ImageResult `json:"image"`
}

func (s *Server) handleErosionHistoryGet(args json.RawMessage) (interface{}, error) {
	var a historyGetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Index == nil {
		return nil, fmt.Errorf("index is required")
	}

	e, err := s.history.Get(*a.Index)
	if err != nil {
		return nil, err
	}
	img, err := imaging.EncodePNGBase64(e.Image)
	if err != nil {
		return nil, err
	}
	return &HistoryGetResult{
		HistoryItem: HistoryItem{Index: *a.Index, HistoryEntry: e},
		Total:       s.history.Len(),
		Image:       img,
	}, nil
}

// === Shared Helpers ===

// loadGray decodes path through the cache, crops it to the requested region
// of interest and reduces it to one channel. An explicit region wins over a
// named one.
func (s *Server) loadGray(path, mode string, region *imaging.Region, named string) (*image.Gray, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	gm, err := imaging.ParseGrayMode(mode)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("could not read image %s: %w", path, err)
	}

	if region == nil && named != "" {
		r, err := imaging.NamedRegion(img.Bounds(), named)
		if err != nil {
			return nil, err
		}
		region = &r
	}
	if region != nil {
		if img, err = imaging.Crop(img, *region); err != nil {
			return nil, err
		}
	}
	return imaging.ToGray(img, gm)
}

// erode runs the engine entry point for mode with the configured worker
// count. Boundary views erode the gray source.
func (s *Server) erode(ctx context.Context, mode string, src *image.Gray, k *morph.Kernel, iterations int) (*image.Gray, error) {
	workers := morph.WithWorkers(s.cfg.Workers)
	if mode == modeBinary {
		return morph.ErodeBinaryContext(ctx, src, k, iterations, workers)
	}
	return morph.ErodeGrayscaleContext(ctx, src, k, iterations, workers)
}

// iterationsFor applies the default of 1 and the configured maximum.
func (s *Server) iterationsFor(n int) (int, error) {
	if n == 0 {
		return 1, nil
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: got %d", morph.ErrInvalidIterations, n)
	}
	if n > s.cfg.MaxIterations {
		return 0, fmt.Errorf("iterations %d exceeds maximum %d", n, s.cfg.MaxIterations)
	}
	return n, nil
}

func thresholdFor(t *int) (uint8, error) {
	if t == nil {
		return defaultThreshold, nil
	}
	if *t < 0 || *t > 255 {
		return 0, fmt.Errorf("threshold must be between 0 and 255, got %d", *t)
	}
	return uint8(*t), nil
}
