package entities

// NotAPackageName names the placeholder package emitted when no component was found
const NotAPackageName = "not_a_pkg"

// SBOMReport is the normalized snapshot persisted for a repository
type SBOMReport struct {
	Repo      string         `json:"repo"`
	Metadata  ReportMetadata `json:"metadata"`
	Languages Languages      `json:"languages"`
	Packages  []Package      `json:"packages"`
}

// ReportMetadata carries repository activity figures
type ReportMetadata struct {
	Age             float64 `json:"age"`         // months
	CommitRate      float64 `json:"commit_rate"` // commits per 30 days over the last 180 days
	CreatedAt       string  `json:"created_at,omitempty"`
	FirstCommitDate string  `json:"first_commit_date,omitempty"`
	LastCommitDate  string  `json:"last_commit_date,omitempty"`
}

// Package is a normalized component. All four fields are always serialized.
type Package struct {
	Name    string  `json:"name"`
	Type    *string `json:"type"`
	Version *string `json:"version"`
	BOMRef  *string `json:"bom-ref"`
}

// PlaceholderPackage returns the package used when a scan found nothing
func PlaceholderPackage() Package {
	return Package{Name: NotAPackageName}
}
