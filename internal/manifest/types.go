package manifest

// Manifest is the top-level output of a batch build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	Codec       string           `json:"codec"`
	Quality     int              `json:"quality"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers  int `json:"workers"`
	MaxWidth int `json:"max_width,omitempty"`
}

// Asset is one source image and its WebP output.
type Asset struct {
	Source SourceInfo `json:"source"`
	Output OutputInfo `json:"output"`
}

// SourceInfo holds metadata about the source image.
type SourceInfo struct {
	Path   string `json:"path"` // relative to the input dir
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// OutputInfo describes the encoded file.
type OutputInfo struct {
	Path        string `json:"path"` // relative to the manifest
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"`
	Hash        string `json:"hash"`         // 16 hex chars of xxhash64 over the file
	PixelDigest string `json:"pixel_digest"` // xxhash64 over the encoded input pixels
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	Failed           int   `json:"failed,omitempty"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1

// FileName is the manifest's name inside a build output dir.
const FileName = "webprgba.manifest.json"
