package cache

// Keyer derives cache keys. Implementations must produce different keys for
// inputs that can produce different results.
type Keyer interface {
	// SolutionKey identifies a solve of the point set with content hash
	// pointsHash under opts.
	SolutionKey(pointsHash string, opts SolutionKeyOpts) string

	// ArtifactKey identifies a rendering of the solution with content hash
	// solutionHash under opts.
	ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string
}

// SolutionKeyOpts holds every solver input besides the points.
type SolutionKeyOpts struct {
	Threshold      float64 `json:"threshold"`
	Strategy       string  `json:"strategy"`
	Seed           int64   `json:"seed"`
	Temperature    float64 `json:"temperature"`
	CoolingRate    float64 `json:"cooling_rate"`
	MinTemperature float64 `json:"min_temperature"`
	Iterations     int     `json:"iterations"`
	MaxRounds      int     `json:"max_rounds"`
	Restarts       int     `json:"restarts"`
	SkipAnnealing  bool    `json:"skip_annealing"`
}

// ArtifactKeyOpts holds every render input besides the solution.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width"`
	Scale  float64 `json:"scale"`
	Labels bool    `json:"labels"`
	Edges  bool    `json:"edges"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey returns "solution:<sha256>".
func (DefaultKeyer) SolutionKey(pointsHash string, opts SolutionKeyOpts) string {
	return hashKey("solution", pointsHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(solutionHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", solutionHash, opts)
}

var _ Keyer = DefaultKeyer{}
