package sources

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// Schema names one of the embedded response schemas.
type Schema string

const (
	SchemaSPDXList       Schema = "spdx-license-list"
	SchemaSPDXDetail     Schema = "spdx-license-detail"
	SchemaGitHubLicenses Schema = "github-licenses"
	SchemaGitHubContents Schema = "github-contents"
	SchemaGitHubRelease  Schema = "github-release"
)

var allSchemas = []Schema{
	SchemaSPDXList,
	SchemaSPDXDetail,
	SchemaGitHubLicenses,
	SchemaGitHubContents,
	SchemaGitHubRelease,
}

// ErrInvalidResponse is returned when a remote document does not match the
// shape the tool relies on.
var ErrInvalidResponse = errors.New("unexpected response format")

var (
	compiled    map[Schema]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/licenses/3/licenseId")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

func (s Schema) resource() string {
	return string(s) + ".schema.json"
}

// getSchema compiles every embedded schema once and returns the named one.
func getSchema(name Schema) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, s := range allSchemas {
			raw, err := schemaFS.ReadFile("schema/" + s.resource())
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", s, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", s, err)
				return
			}
			if err := c.AddResource(s.resource(), doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", s, err)
				return
			}
		}

		compiled = make(map[Schema]*jsonschema.Schema, len(allSchemas))
		for _, s := range allSchemas {
			sch, err := c.Compile(s.resource())
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", s, err)
				return
			}
			compiled[s] = sch
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	sch, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return sch, nil
}

// Validate checks a JSON document against the named schema. The error
// return is for malformed JSON or schema problems; validation failures are
// reported in the result.
func Validate(name Schema, data []byte) (*ValidationResult, error) {
	sch, err := getSchema(name)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidResponse, name, err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{Valid: false, Issues: extractIssues(ve)}, nil
}

// check validates data and turns validation issues into ErrInvalidResponse.
func check(name Schema, data []byte) error {
	res, err := Validate(name, data)
	if err != nil {
		return err
	}
	if res.Valid {
		return nil
	}

	parts := make([]string, 0, len(res.Issues))
	for _, issue := range res.Issues {
		if issue.Path != "" {
			parts = append(parts, issue.Path+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}
	// Listing responses can fail on every element; the first few are enough.
	if len(parts) > 3 {
		parts = append(parts[:3], printer.Sprintf("and %d more", len(parts)-3))
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidResponse, name, strings.Join(parts, "; "))
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			if kwPath := ve.ErrorKind.KeywordPath(); len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container keywords only wrap the informative leaves.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
