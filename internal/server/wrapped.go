package server

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wrapview/wrapview/internal/pipeline"
)

// maxUploadBytes caps export uploads. Multi-year ChatGPT
// exports run to a few hundred MB of conversations.json.
const maxUploadBytes = 512 << 20

// buildRequest is an upload plus the per-request pipeline knobs
// parsed from the query string.
type buildRequest struct {
	raw    []byte
	source string
	opts   pipeline.Options
}

// parseBuildRequest reads the export payload from either a
// multipart "file" field or a raw request body, and resolves
// the year/alias overrides. Returns a user-displayable message
// on rejection.
func (s *Server) parseBuildRequest(r *http.Request) (*buildRequest, string) {
	opts := pipeline.Options{
		Year:    s.cfg.Year,
		Aliases: s.cfg.Aliases,
		Now:     time.Now(),
	}
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, "year must be an integer"
		}
		opts.Year = year
	}
	if v := r.URL.Query().Get("aliases"); v != "" {
		opts.Aliases = nil
		for _, a := range strings.Split(v, ",") {
			if a = strings.TrimSpace(a); a != "" {
				opts.Aliases = append(opts.Aliases, a)
			}
		}
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	var (
		raw    []byte
		source string
		err    error
	)
	if strings.HasPrefix(
		r.Header.Get("Content-Type"), "multipart/form-data",
	) {
		file, header, formErr := r.FormFile("file")
		if formErr != nil {
			return nil, "file field required"
		}
		defer file.Close()
		source = header.Filename
		raw, err = io.ReadAll(file)
	} else {
		source = "request body"
		raw, err = io.ReadAll(r.Body)
	}
	if err != nil {
		return nil, "reading upload: " + err.Error()
	}
	if len(raw) == 0 {
		return nil, "empty upload"
	}

	if msg := sniffRejection(raw); msg != "" {
		return nil, msg
	}

	return &buildRequest{raw: raw, source: source, opts: opts}, ""
}

// sniffRejection catches the two common wrong-file uploads
// before JSON parsing: the whole export ZIP, and a saved HTML
// page. Both get a pointed message instead of a generic JSON
// error.
func sniffRejection(raw []byte) string {
	if bytes.HasPrefix(raw, []byte("PK\x03\x04")) {
		return "this is a ZIP archive; extract it and upload conversations.json"
	}
	head := bytes.ToLower(bytes.TrimSpace(raw))
	if len(head) > 256 {
		head = head[:256]
	}
	if bytes.HasPrefix(head, []byte("<!doctype")) ||
		bytes.HasPrefix(head, []byte("<html")) {
		return "this looks like an HTML page, not a JSON export"
	}
	return ""
}

func (s *Server) handleBuildWrapped(
	w http.ResponseWriter, r *http.Request,
) {
	req, errMsg := s.parseBuildRequest(r)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}

	result, err := pipeline.Run(req.raw, req.opts)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidJSON) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Error building wrapped: %v", err)
		writeError(w, http.StatusInternalServerError,
			"failed to build wrapped")
		return
	}

	build := Build{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Source:    req.source,
		Result:    result,
	}
	s.SetLatest(build)

	writeJSON(w, http.StatusOK, build)
}
