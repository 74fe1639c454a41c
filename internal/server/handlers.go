package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zzaoclub/imgx/pkg/errors"
	"github.com/zzaoclub/imgx/pkg/imagegen"
)

// reservedParams are query/body keys that control the request itself rather
// than the rendered style.
var reservedParams = map[string]bool{
	"format":   true,
	"scale":    true,
	"download": true,
}

// handleRenderPath serves GET /{presetCode}/{text...}. Path segments map
// onto the preset's content keys; query parameters become style overrides.
// GET /{presetCode} and GET /{presetCode}/default render the preset's
// defaults.
func (s *Server) handleRenderPath(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "presetCode")
	segments := pathSegments(chi.URLParam(r, "*"))

	q := r.URL.Query()
	req := imagegen.Request{
		PresetCode: code,
		Segments:   segments,
		StyleProps: styleFromQuery(q),
		Format:     q.Get("format"),
		Scale:      q.Get("scale"),
	}

	res, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeImage(w, r, code, res, isDownload(q.Get("download")))
}

// handleRenderBody serves POST /{presetCode}. Body keys listed in the
// preset's content keys become content overrides; everything else is a
// style property. format and download ride along in the body.
func (s *Server) handleRenderBody(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "presetCode")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	req := imagegen.Request{
		PresetCode: code,
		Format:     stringValue(body["format"]),
		Scale:      stringValue(body["scale"]),
	}
	download := boolValue(body["download"])

	p, err := s.presets.GetByCode(r.Context(), code)
	switch {
	case errors.Is(err, errors.ErrCodePresetNotFound):
		// Let the generator produce its placeholder image.
	case err != nil:
		s.writeError(w, r, err)
		return
	default:
		req.ContentProps = make(map[string]string)
		req.StyleProps = make(map[string]any)
		for key, value := range body {
			if reservedParams[key] {
				continue
			}
			if contains(p.ContentKeys, key) {
				req.ContentProps[key] = stringValue(value)
			} else {
				req.StyleProps[key] = value
			}
		}
	}

	res, err := s.gen.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeImage(w, r, code, res, download)
}

// handleListPresets serves GET /presets.
func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	all, err := s.presets.LoadAll(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, all)
}

// handleGetPreset serves GET /presets/{code}.
func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	p, err := s.presets.GetByCode(r.Context(), code)
	if errors.Is(err, errors.ErrCodePresetNotFound) {
		s.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   string(errors.ErrCodePresetNotFound),
			"message": fmt.Sprintf("preset %q not found", code),
		})
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// writeImage writes a rendered image with the cache headers the policy
// dictates, answering 304 when the client already holds the bytes.
func (s *Server) writeImage(w http.ResponseWriter, r *http.Request, code string, res *imagegen.Result, download bool) {
	s.policy.Apply(w, res.Validator)
	if s.policy.ShouldReturn304(r, res.Validator) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	if download {
		ext := "png"
		if res.ContentType == "image/svg+xml" {
			ext = "svg"
		}
		name := fmt.Sprintf("imgx-%s-%d.%s", code, time.Now().UnixMilli(), ext)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	_, _ = w.Write(res.Data)
}

// writeError maps an error to a status code and a JSON body. Validation
// failures are the caller's fault; everything else is ours.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.IsValidation(err) {
		status = http.StatusBadRequest
	}

	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "error", err)
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, status, map[string]string{
		"error":   string(code),
		"message": errors.UserMessage(err),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// pathSegments splits the wildcard remainder of a render URL into decoded
// text segments. The literal "default" path renders preset defaults, so it
// yields no segments.
func pathSegments(wild string) []string {
	wild = strings.Trim(wild, "/")
	if wild == "" || wild == "default" {
		return nil
	}
	var segments []string
	for _, part := range strings.Split(wild, "/") {
		if part == "" {
			continue
		}
		if decoded, err := url.PathUnescape(part); err == nil {
			part = decoded
		}
		segments = append(segments, part)
	}
	return segments
}

// styleFromQuery collects style overrides from query parameters. Repeated
// keys collapse to a comma list, matching the list syntax style props use.
func styleFromQuery(q url.Values) map[string]any {
	props := make(map[string]any, len(q))
	for key, values := range q {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		props[key] = strings.Join(values, ",")
	}
	return props
}

func isDownload(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}

func boolValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return isDownload(t)
	}
	return false
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
