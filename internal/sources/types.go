package sources

import "time"

// SPDXLicenseList is the SPDX licenses.json document.
type SPDXLicenseList struct {
	LicenseListVersion string        `json:"licenseListVersion"`
	ReleaseDate        string        `json:"releaseDate"`
	Licenses           []SPDXLicense `json:"licenses"`
}

// SPDXLicense is one entry of the SPDX license list.
type SPDXLicense struct {
	LicenseID   string   `json:"licenseId"`
	Name        string   `json:"name"`
	Reference   string   `json:"reference,omitempty"`
	DetailsURL  string   `json:"detailsUrl,omitempty"`
	Deprecated  bool     `json:"isDeprecatedLicenseId"`
	OSIApproved bool     `json:"isOsiApproved"`
	FSFLibre    bool     `json:"isFsfLibre,omitempty"`
	SeeAlso     []string `json:"seeAlso,omitempty"`
}

// SPDXLicenseDetail is the per-license details document, including the
// full license text.
type SPDXLicenseDetail struct {
	LicenseID             string   `json:"licenseId"`
	Name                  string   `json:"name"`
	LicenseText           string   `json:"licenseText"`
	StandardLicenseHeader string   `json:"standardLicenseHeader,omitempty"`
	LicenseComments       string   `json:"licenseComments,omitempty"`
	Deprecated            bool     `json:"isDeprecatedLicenseId"`
	OSIApproved           bool     `json:"isOsiApproved"`
	FSFLibre              bool     `json:"isFsfLibre,omitempty"`
	SeeAlso               []string `json:"seeAlso,omitempty"`
}

// GitHubLicense is one entry of the GitHub /licenses endpoint.
type GitHubLicense struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	SPDXID string `json:"spdx_id"`
	URL    string `json:"url"`
}

// ContentEntry is one item of a GitHub repository contents listing.
type ContentEntry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Type        string `json:"type"`
	Size        int64  `json:"size"`
	DownloadURL string `json:"download_url"`
	HTMLURL     string `json:"html_url"`
}

// IsFile reports whether the entry is a regular file.
func (e ContentEntry) IsFile() bool { return e.Type == "file" }

// IsDir reports whether the entry is a directory.
func (e ContentEntry) IsDir() bool { return e.Type == "dir" }

// Release is a GitHub release.
type Release struct {
	TagName   string    `json:"tag_name"`
	HTMLURL   string    `json:"html_url"`
	Published time.Time `json:"published_at"`
}

// LicenseMeta is the YAML front matter of a choosealicense.com license file.
type LicenseMeta struct {
	Title       string   `yaml:"title"`
	SPDXID      string   `yaml:"spdx-id"`
	Nickname    string   `yaml:"nickname"`
	Description string   `yaml:"description"`
	How         string   `yaml:"how"`
	Note        string   `yaml:"note"`
	Featured    bool     `yaml:"featured"`
	Hidden      bool     `yaml:"hidden"`
	Permissions []string `yaml:"permissions"`
	Conditions  []string `yaml:"conditions"`
	Limitations []string `yaml:"limitations"`
}
