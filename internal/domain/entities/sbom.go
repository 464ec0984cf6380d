package entities

// CycloneDXDocument is the subset of a CycloneDX JSON document emitted by the scanner
type CycloneDXDocument struct {
	BOMFormat   string      `json:"bomFormat"`   // "CycloneDX"
	SpecVersion string      `json:"specVersion"` // "1.4", "1.5", ...
	Components  []Component `json:"components"`
}

// Component represents a software component detected by the scanner.
// Only Name is guaranteed; the other fields are null when the scanner omits them.
type Component struct {
	Type    *string `json:"type"` // "library", "application", "operating-system", ...
	Name    string  `json:"name"`
	Version *string `json:"version"`
	BOMRef  *string `json:"bom-ref"`
}

// TypeOrEmpty returns the component type or "" when absent
func (c Component) TypeOrEmpty() string {
	if c.Type == nil {
		return ""
	}
	return *c.Type
}

// VersionOrEmpty returns the component version or "" when absent
func (c Component) VersionOrEmpty() string {
	if c.Version == nil {
		return ""
	}
	return *c.Version
}
