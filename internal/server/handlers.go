package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/ntpusu/lawtext/internal/lawtext"
	"github.com/ntpusu/lawtext/internal/library"
	"github.com/ntpusu/lawtext/internal/metrics"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	names, err := s.lib.LoadManifest()
	if err != nil {
		// Serve the directory listing when the file is missing or empty.
		names, err = s.lib.GenerateManifest()
	}
	if err != nil {
		log.Error("manifest unavailable", "err", err)
		http.Error(w, "manifest unavailable", http.StatusInternalServerError)
		return
	}

	data, err := library.EncodeManifest(names)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) handleRegulation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	raw := chi.URLParam(r, "id")

	view := r.URL.Query().Get("view")
	switch view {
	case "", "page", "fragment", "plain":
	default:
		writeErrorPage(w, http.StatusBadRequest, fmt.Sprintf("不支援的顯示模式：%s", view))
		return
	}

	id, err := library.ParseID(raw)
	if err != nil {
		writeErrorPage(w, http.StatusBadRequest, "ID 解析錯誤: "+idProblem(raw))
		return
	}

	entry, text, err := s.source.Load(r.Context(), id)
	if err != nil {
		code, msg := loadProblem(err, id)
		if code == http.StatusNotFound {
			s.recorder.ObserveRender(metrics.RenderNotFound, time.Since(start))
		} else {
			s.recorder.ObserveRender(metrics.RenderFailed, time.Since(start))
			log.Error("load regulation", "id", library.PadID(id), "err", err)
		}
		writeErrorPage(w, code, msg)
		return
	}

	var body string
	outcome := metrics.RenderOK
	switch {
	case view == "plain":
		body = lawtext.PlainHTML(string(text))
		outcome = metrics.RenderPlain
	default:
		body = lawtext.Render(string(text))
		if body == lawtext.EmptyPlaceholder {
			outcome = metrics.RenderEmpty
		}
	}
	s.recorder.ObserveRender(outcome, time.Since(start))

	if view == "fragment" || view == "plain" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
		return
	}

	title := lawtext.Parse(string(text)).Meta.Title()
	if title == "" {
		title = entry.Title()
	}
	writePage(w, http.StatusOK, pageData{Title: title, RawID: raw, Body: body})
}

// idProblem explains why raw is not a usable ID.
func idProblem(raw string) string {
	if raw == "" {
		return "請在網址中提供有效的 ID（例如：/regulations/7）"
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return "網址中的 ID 必須為純數字"
		}
	}
	return fmt.Sprintf("ID 必須在 0-%d 範圍內", library.MaxID)
}

func loadProblem(err error, id int) (int, string) {
	padded := library.PadID(id)
	switch {
	case errors.Is(err, library.ErrNotFound):
		return http.StatusNotFound, fmt.Sprintf("找不到 ID %s 對應的檔案。請確認：\n1. 檔案命名格式為 %s_檔案名稱.txt\n2. 檔案存在於法規目錄中\n3. manifest.json 已正確更新", padded, padded)
	case errors.Is(err, library.ErrEmptyManifest):
		return http.StatusNotFound, "manifest.json 是空的，請確認法規目錄中有 .txt 檔案"
	case errors.Is(err, library.ErrInvalidID):
		return http.StatusBadRequest, "ID 解析錯誤: " + idProblem(strconv.Itoa(id))
	}
	return http.StatusInternalServerError, "載入文本檔案失敗"
}

// regulationInfo is the JSON form of a regulation's metadata.
type regulationInfo struct {
	ID           int            `json:"id"`
	Filename     string         `json:"filename"`
	Title        string         `json:"title"`
	Status       string         `json:"status,omitempty"`
	Abandoned    bool           `json:"abandoned"`
	ModifiedType string         `json:"modifiedType,omitempty"`
	ModifiedDate string         `json:"modifiedDate,omitempty"`
	Articles     int            `json:"articles"`
	Meta         map[string]any `json:"meta,omitempty"`
	Outline      []outlineItem  `json:"outline,omitempty"`
}

type outlineItem struct {
	Kind  string `json:"kind"`
	Level string `json:"level,omitempty"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

func (s *Server) handleRegulationMeta(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := library.ParseID(raw)
	if err != nil {
		s.fail(w, http.StatusBadRequest, idProblem(raw))
		return
	}

	entry, text, err := s.source.Load(r.Context(), id)
	if err != nil {
		code, msg := loadProblem(err, id)
		s.fail(w, code, msg)
		return
	}

	doc := lawtext.Parse(string(text))
	info := regulationInfo{
		ID:           id,
		Filename:     entry.Name,
		Title:        doc.Meta.Title(),
		Status:       doc.Meta.String("status"),
		Abandoned:    doc.Meta.Abandoned(),
		ModifiedType: doc.Meta.String("modifiedType"),
		ModifiedDate: doc.Meta.String("modifiedDate"),
		Articles:     lawtext.CountArticles(doc.Content),
		Meta:         doc.Meta.Map(),
	}
	if info.Title == "" {
		info.Title = entry.Title()
	}
	for _, h := range lawtext.ExtractOutline(string(text)) {
		item := outlineItem{Kind: h.Kind.String(), Text: h.Text, Line: h.Line}
		if h.Level != 0 {
			item.Level = string(h.Level)
		}
		info.Outline = append(info.Outline, item)
	}
	s.success(w, info)
}

func (s *Server) handleListRegulations(w http.ResponseWriter, r *http.Request) {
	regs, err := s.db.ListAll(0)
	if err != nil {
		log.Error("list regulations", "err", err)
		s.fail(w, http.StatusInternalServerError, "catalogue unavailable")
		return
	}

	out := make([]regulationInfo, 0, len(regs))
	for _, reg := range regs {
		out = append(out, regulationInfo{
			ID:           reg.ID,
			Filename:     reg.Filename,
			Title:        reg.Title,
			Status:       reg.Status,
			Abandoned:    reg.Status == lawtext.StatusAbandoned,
			ModifiedType: reg.ModifiedType,
			ModifiedDate: reg.ModifiedDate,
			Articles:     reg.Articles,
		})
	}
	s.success(w, out)
}

type searchHit struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.fail(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			s.fail(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}

	results, err := s.db.Search(q, limit)
	if err != nil {
		log.Error("search", "q", q, "err", err)
		s.fail(w, http.StatusInternalServerError, "search failed")
		return
	}

	hits := make([]searchHit, 0, len(results))
	for _, res := range results {
		hits = append(hits, searchHit{ID: res.ID, Filename: res.Filename, Title: res.Title, Snippet: res.Snippet})
	}
	s.success(w, hits)
}
