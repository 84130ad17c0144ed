// Package manifest navigates a remote template tree described by a
// manifest.yml file. The manifest is read with a small line scanner rather
// than a full YAML decoder: it understands top-level `key: value` pairs, a
// `templates:` section holding file keys, `dir/` references and named
// subsections with `- item` lists.
package manifest
