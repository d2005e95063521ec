// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package deposit

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	DefaultUploadType = "dataset"

	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Well-known keys of Deposition.Links
const (
	LinkBucket          = "bucket"
	LinkLatestDraftHTML = "latest_draft_html"
	LinkHTML            = "html"
	LinkRecordHTML      = "record_html"
	LinkSelf            = "self"
)

type Creator struct {
	Name        string `json:"name"                  yaml:"name"`
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
	ORCID       string `json:"orcid,omitempty"       yaml:"orcid,omitempty"`
}

// Metadata is the subset of the Zenodo metadata document this tool writes.
type Metadata struct {
	Title       string    `json:"title"               yaml:"title"`
	UploadType  string    `json:"upload_type"         yaml:"upload_type"`
	Description string    `json:"description"         yaml:"description"`
	Creators    []Creator `json:"creators"            yaml:"creators"`
	Version     string    `json:"version,omitempty"   yaml:"version,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"  yaml:"keywords,omitempty"`
}

// NewMetadata builds a document with a single creator. Empty affiliation is omitted.
func NewMetadata(title, author, affiliation, description string) Metadata {
	md := Metadata{Title: title, Description: description}
	if author != "" {
		md.Creators = []Creator{{Name: author, Affiliation: affiliation}}
	}
	return md
}

// Fields returns only the fields that are set, keyed by their JSON name.
// It is the patch form of the document: nothing is defaulted.
func (m Metadata) Fields() map[string]interface{} {
	out := map[string]interface{}{}
	if m.Title != "" {
		out["title"] = m.Title
	}
	if m.UploadType != "" {
		out["upload_type"] = m.UploadType
	}
	if m.Description != "" {
		out["description"] = m.Description
	}
	if len(m.Creators) > 0 {
		creators := make([]interface{}, 0, len(m.Creators))
		for _, c := range m.Creators {
			creators = append(creators, c.toMap())
		}
		out["creators"] = creators
	}
	if m.Version != "" {
		out["version"] = m.Version
	}
	if len(m.Keywords) > 0 {
		kw := make([]interface{}, 0, len(m.Keywords))
		for _, k := range m.Keywords {
			kw = append(kw, k)
		}
		out["keywords"] = kw
	}
	return out
}

func (c Creator) toMap() map[string]interface{} {
	m := map[string]interface{}{"name": c.Name}
	if c.Affiliation != "" {
		m["affiliation"] = c.Affiliation
	}
	if c.ORCID != "" {
		m["orcid"] = c.ORCID
	}
	return m
}

type File struct {
	ID       string `json:"id"       yaml:"id"`
	Filename string `json:"filename" yaml:"filename"`
	Filesize int64  `json:"filesize" yaml:"filesize"`
	Checksum string `json:"checksum" yaml:"checksum"`
}

// BucketObject is the response of a bucket PUT.
type BucketObject struct {
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
	MimeType string `json:"mimetype"`
}

type Deposition struct {
	ID        int64             `json:"id"                  yaml:"id"`
	RecordID  int64             `json:"record_id,omitempty" yaml:"record_id,omitempty"`
	Title     string            `json:"title"               yaml:"title"`
	State     string            `json:"state,omitempty"     yaml:"state,omitempty"`
	Submitted bool              `json:"submitted"           yaml:"submitted"`
	Created   string            `json:"created,omitempty"   yaml:"created,omitempty"`
	Modified  string            `json:"modified,omitempty"  yaml:"modified,omitempty"`
	DOI       string            `json:"doi,omitempty"       yaml:"doi,omitempty"`
	DOIURL    string            `json:"doi_url,omitempty"   yaml:"doi_url,omitempty"`
	Links     map[string]string `json:"links"               yaml:"links"`
	Metadata  json.RawMessage   `json:"metadata,omitempty"  yaml:"metadata,omitempty"`
	Files     []File            `json:"files,omitempty"     yaml:"files,omitempty"`
}

// Status is derived from the submitted flag only.
func (d *Deposition) Status() string {
	if d.Submitted {
		return StatusPublished
	}
	return StatusDraft
}

func (d *Deposition) BucketURL() string {
	return d.Links[LinkBucket]
}

func (d *Deposition) DraftURL() string {
	if u := d.Links[LinkLatestDraftHTML]; u != "" {
		return u
	}
	return d.Links[LinkHTML]
}

func (d *Deposition) RecordURL() string {
	if u := d.Links[LinkRecordHTML]; u != "" {
		return u
	}
	return d.Links[LinkHTML]
}

// URL is the page a user should open for this deposition in its current state.
func (d *Deposition) URL() string {
	if d.Submitted {
		return d.RecordURL()
	}
	return d.DraftURL()
}

// DisplayTitle prefers the top-level title and falls back to metadata.title.
func (d *Deposition) DisplayTitle() string {
	if strings.TrimSpace(d.Title) != "" {
		return d.Title
	}
	if md, err := d.DecodeMetadata(); err == nil {
		return md.Title
	}
	return ""
}

// MetadataMap decodes the raw metadata document, keeping every field the server sent.
func (d *Deposition) MetadataMap() (map[string]interface{}, error) {
	m := map[string]interface{}{}
	if len(d.Metadata) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(d.Metadata, &m); err != nil {
		return nil, fmt.Errorf("invalid metadata in deposition %d: %w", d.ID, err)
	}
	return m, nil
}

func (d *Deposition) DecodeMetadata() (*Metadata, error) {
	var md Metadata
	if len(d.Metadata) == 0 {
		return &md, nil
	}
	if err := json.Unmarshal(d.Metadata, &md); err != nil {
		return nil, fmt.Errorf("invalid metadata in deposition %d: %w", d.ID, err)
	}
	return &md, nil
}

type ListRequest struct {
	Query  string // elasticsearch query string
	Status string // "draft" or "published"
	Sort   string // "bestmatch", "mostrecent", with optional "-" prefix
	Page   int
	Size   int
}
