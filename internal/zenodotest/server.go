// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

// Package zenodotest runs an in-memory imitation of the Zenodo deposit API
// for tests. It implements only the endpoints the CLI calls.
package zenodotest

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

const Token = "test-token"

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int64
	deps     map[int64]*record
	buckets  map[string]int64
	requests []string
}

type record struct {
	id        int64
	bucket    string
	submitted bool
	metadata  map[string]interface{}
	files     []file
}

type file struct {
	name     string
	size     int64
	checksum string
	data     []byte
}

// NewServer starts a fake API; its base URL is s.URL + "/api". It is closed with the test.
func NewServer(t testing.TB) *Server {
	s := &Server{
		nextID:  1000,
		deps:    map[int64]*record{},
		buckets: map[string]int64{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/deposit/depositions", s.create)
	mux.HandleFunc("GET /api/deposit/depositions", s.list)
	mux.HandleFunc("GET /api/deposit/depositions/{id}", s.get)
	mux.HandleFunc("PUT /api/deposit/depositions/{id}", s.putMetadata)
	mux.HandleFunc("POST /api/deposit/depositions/{id}/actions/publish", s.publish)
	mux.HandleFunc("PUT /api/files/{bucket}/{name}", s.putFile)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeError(w, http.StatusUnauthorized, "The server could not verify that you are authorized to access the URL requested.")
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Requests returns "METHOD /path" for every request received so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// AddDeposition stores a deposition as if it had been created earlier.
func (s *Server) AddDeposition(metadata map[string]interface{}, submitted bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.newRecord()
	rec.metadata = metadata
	rec.submitted = submitted
	return rec.id
}

// FileNames returns the names of the files stored in a deposition.
func (s *Server) FileNames(id int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.deps[id]
	if !ok {
		return nil
	}
	var names []string
	for _, f := range rec.files {
		names = append(names, f.name)
	}
	return names
}

// FileData returns the bytes stored for a file.
func (s *Server) FileData(id int64, name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.deps[id]; ok {
		for _, f := range rec.files {
			if f.name == name {
				return f.data
			}
		}
	}
	return nil
}

func (s *Server) newRecord() *record {
	s.nextID++
	rec := &record{
		id:       s.nextID,
		bucket:   fmt.Sprintf("bucket-%d", s.nextID),
		metadata: map[string]interface{}{},
	}
	s.deps[rec.id] = rec
	s.buckets[rec.bucket] = rec.id
	return rec
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.newRecord()
	writeJSON(w, http.StatusCreated, s.render(rec))
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.deps))
	for id := range s.deps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	status := r.URL.Query().Get("status")
	out := []map[string]interface{}{}
	for _, id := range ids {
		rec := s.deps[id]
		if status == "draft" && rec.submitted || status == "published" && !rec.submitted {
			continue
		}
		out = append(out, s.render(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.render(rec))
}

func (s *Server) putMetadata(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if rec.submitted {
		writeError(w, http.StatusBadRequest, "Deposition is not editable.")
		return
	}
	var body struct {
		Metadata map[string]interface{} `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Metadata == nil {
		writeError(w, http.StatusBadRequest, "Validation error.")
		return
	}
	rec.metadata = body.Metadata
	writeJSON(w, http.StatusOK, s.render(rec))
}

func (s *Server) publish(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if rec.submitted {
		writeError(w, http.StatusBadRequest, "Deposition has already been published.")
		return
	}
	if len(rec.files) == 0 {
		writeError(w, http.StatusBadRequest, "Minimum one file must be provided.")
		return
	}
	rec.submitted = true
	writeJSON(w, http.StatusAccepted, s.render(rec))
}

func (s *Server) putFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.buckets[r.PathValue("bucket")]
	if !ok {
		writeError(w, http.StatusNotFound, "Bucket does not exist.")
		return
	}
	rec := s.deps[id]
	if rec.submitted {
		writeError(w, http.StatusForbidden, "Bucket is locked.")
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sum := md5.Sum(data)
	f := file{
		name:     r.PathValue("name"),
		size:     int64(len(data)),
		checksum: "md5:" + hex.EncodeToString(sum[:]),
		data:     data,
	}
	replaced := false
	for i := range rec.files {
		if rec.files[i].name == f.name {
			rec.files[i] = f
			replaced = true
		}
	}
	if !replaced {
		rec.files = append(rec.files, f)
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"key":      f.name,
		"size":     f.size,
		"checksum": f.checksum,
		"mimetype": "application/octet-stream",
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*record, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "PID does not exist.")
		return nil, false
	}
	rec, ok := s.deps[id]
	if !ok {
		writeError(w, http.StatusNotFound, "PID does not exist.")
		return nil, false
	}
	return rec, true
}

func (s *Server) render(rec *record) map[string]interface{} {
	title, _ := rec.metadata["title"].(string)
	state := "unsubmitted"
	links := map[string]interface{}{
		"self":              fmt.Sprintf("%s/api/deposit/depositions/%d", s.URL, rec.id),
		"bucket":            fmt.Sprintf("%s/api/files/%s", s.URL, rec.bucket),
		"html":              fmt.Sprintf("%s/deposit/%d", s.URL, rec.id),
		"latest_draft_html": fmt.Sprintf("%s/deposit/%d", s.URL, rec.id),
	}
	out := map[string]interface{}{
		"id":        rec.id,
		"record_id": rec.id,
		"title":     title,
		"submitted": rec.submitted,
		"created":   "2026-10-17T10:00:00.000000+00:00",
		"modified":  "2026-10-17T10:00:00.000000+00:00",
		"metadata":  rec.metadata,
		"links":     links,
	}
	if rec.submitted {
		state = "done"
		doi := fmt.Sprintf("10.5072/zenodo.%d", rec.id)
		out["doi"] = doi
		out["doi_url"] = "https://doi.org/" + doi
		links["record_html"] = fmt.Sprintf("%s/records/%d", s.URL, rec.id)
		links["html"] = links["record_html"]
	}
	out["state"] = state

	files := []map[string]interface{}{}
	for i, f := range rec.files {
		files = append(files, map[string]interface{}{
			"id":       fmt.Sprintf("%d-%d", rec.id, i),
			"filename": f.name,
			"filesize": f.size,
			"checksum": strings.TrimPrefix(f.checksum, "md5:"),
		})
	}
	out["files"] = files
	return out
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{"status": status, "message": msg})
}
