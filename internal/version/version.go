package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/ismawno/convoy/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/ismawno/convoy/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/ismawno/convoy/internal/version.Date={{.Date}}
)

// Info is the build information printed by `convoy version`
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// Get returns the build information of the running binary
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders the one line form: "convoy dev (commit unknown, built unknown)"
func (i Info) String() string {
	return "convoy " + i.Version + " (commit " + i.Commit + ", built " + i.Date + ")"
}
