// Package googletest поднимает in-process подделку REST API Google Sheets v4 и
// Drive v3 (только вызовы, которые использует сервис)
package googletest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	reDriveName = regexp.MustCompile(`name = '((?:[^'\\]|\\.)*)'`)
	reRowRange  = regexp.MustCompile(`^(\d+):(\d+)$`)
	reCell      = regexp.MustCompile(`^([A-Z]+)(\d+)$`)
)

// Server поддельный Google API. Хранит одну таблицу с одним листом
type Server struct {
	*httptest.Server

	SpreadsheetID   string
	SpreadsheetName string
	SheetID         int64
	Title           string

	mu       sync.Mutex
	rows     [][]interface{}
	requests []string
	failures []int
}

// NewServer запускает сервер с листом title и начальными строками rows
func NewServer(title string, rows [][]interface{}) *Server {
	s := &Server{
		SpreadsheetID:   "spreadsheet-1",
		SpreadsheetName: "hotel_data",
		SheetID:         0,
		Title:           title,
		rows:            copyRows(rows),
	}

	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Endpoint опция клиента, направляющая Sheets и Drive на этот сервер
func (s *Server) Endpoint() option.ClientOption {
	return option.WithEndpoint(s.URL + "/")
}

// Rows текущее содержимое листа
func (s *Server) Rows() [][]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRows(s.rows)
}

// SetRows заменяет содержимое листа, как при ручном редактировании таблицы
func (s *Server) SetRows(rows [][]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = copyRows(rows)
}

// FailNext следующий запрос завершится с указанным HTTP статусом
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, status)
}

// Requests журнал запросов вида "GET /v4/spreadsheets/..."
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	if len(s.failures) > 0 {
		status := s.failures[0]
		s.failures = s.failures[1:]
		s.mu.Unlock()
		writeError(w, status, "injected failure")
		return
	}
	s.mu.Unlock()

	path := r.URL.Path

	if path == "/files" && r.Method == http.MethodGet {
		s.listFiles(w, r)
		return
	}

	if !strings.HasPrefix(path, "/v4/spreadsheets/") {
		writeError(w, http.StatusNotFound, "unknown path "+path)
		return
	}

	rest := strings.TrimPrefix(path, "/v4/spreadsheets/")

	if id, ok := strings.CutSuffix(rest, ":batchUpdate"); ok && r.Method == http.MethodPost {
		if !s.checkID(w, id) {
			return
		}
		s.batchUpdate(w, r)
		return
	}

	id, tail, _ := strings.Cut(rest, "/")
	if !s.checkID(w, id) {
		return
	}

	switch {
	case tail == "" && r.Method == http.MethodGet:
		s.getSpreadsheet(w)

	case tail == "values:batchGet" && r.Method == http.MethodGet:
		s.batchGet(w, r)

	case strings.HasPrefix(tail, "values/"):
		rng := strings.TrimPrefix(tail, "values/")
		if a1, ok := strings.CutSuffix(rng, ":append"); ok && r.Method == http.MethodPost {
			s.appendValues(w, r, a1)
			return
		}
		if r.Method == http.MethodGet {
			s.getValues(w, rng)
			return
		}
		writeError(w, http.StatusMethodNotAllowed, "unsupported method")

	default:
		writeError(w, http.StatusNotFound, "unknown path "+path)
	}
}

func (s *Server) checkID(w http.ResponseWriter, id string) bool {
	if id != s.SpreadsheetID {
		writeError(w, http.StatusNotFound, "Requested entity was not found.")
		return false
	}
	return true
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	type file struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	files := []file{}
	if m := reDriveName.FindStringSubmatch(r.URL.Query().Get("q")); m != nil {
		name := strings.ReplaceAll(m[1], `\'`, "'")
		if name == s.SpreadsheetName {
			files = append(files, file{ID: s.SpreadsheetID, Name: s.SpreadsheetName})
		}
	}

	writeJSON(w, map[string]interface{}{"files": files})
}

func (s *Server) getSpreadsheet(w http.ResponseWriter) {
	writeJSON(w, map[string]interface{}{
		"spreadsheetId": s.SpreadsheetID,
		"properties":    map[string]interface{}{"title": s.SpreadsheetName},
		"sheets": []interface{}{
			map[string]interface{}{
				"properties": map[string]interface{}{
					"sheetId": s.SheetID,
					"title":   s.Title,
				},
			},
		},
	})
}

func (s *Server) getValues(w http.ResponseWriter, rng string) {
	values, err := s.selectRange(rng)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, valueRange(rng, values))
}

func (s *Server) batchGet(w http.ResponseWriter, r *http.Request) {
	ranges := []interface{}{}
	for _, rng := range r.URL.Query()["ranges"] {
		values, err := s.selectRange(rng)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		ranges = append(ranges, valueRange(rng, values))
	}

	writeJSON(w, map[string]interface{}{
		"spreadsheetId": s.SpreadsheetID,
		"valueRanges":   ranges,
	})
}

func (s *Server) appendValues(w http.ResponseWriter, r *http.Request, rng string) {
	if _, err := s.parseRange(rng); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var body sheets.ValueRange
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	s.rows = append(s.rows, copyRows(body.Values)...)
	s.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"spreadsheetId": s.SpreadsheetID,
		"updates":       map[string]interface{}{"updatedRows": len(body.Values)},
	})
}

func (s *Server) batchUpdate(w http.ResponseWriter, r *http.Request) {
	var body sheets.BatchUpdateSpreadsheetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replies := []interface{}{}
	for _, rq := range body.Requests {
		if rq.DeleteDimension == nil || rq.DeleteDimension.Range == nil {
			writeError(w, http.StatusBadRequest, "only deleteDimension is supported")
			return
		}

		dr := rq.DeleteDimension.Range
		if dr.Dimension != "ROWS" || dr.SheetId != s.SheetID {
			writeError(w, http.StatusBadRequest, "invalid dimension range")
			return
		}

		start, end := int(dr.StartIndex), int(dr.EndIndex)
		if start < 0 || end <= start || end > len(s.rows) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid row range %d:%d", start, end))
			return
		}

		s.rows = append(s.rows[:start], s.rows[end:]...)
		replies = append(replies, map[string]interface{}{})
	}

	writeJSON(w, map[string]interface{}{
		"spreadsheetId": s.SpreadsheetID,
		"replies":       replies,
	})
}

// selectRange поддерживает "'Title'", "'Title'!N:M" и "'Title'!C5"
func (s *Server) selectRange(rng string) ([][]interface{}, error) {
	cells, err := s.parseRange(rng)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case cells == "":
		return copyRows(s.rows), nil

	case reRowRange.MatchString(cells):
		m := reRowRange.FindStringSubmatch(cells)
		from, _ := strconv.Atoi(m[1])
		to, _ := strconv.Atoi(m[2])

		var out [][]interface{}
		for i := from; i <= to && i <= len(s.rows); i++ {
			out = append(out, copyRows(s.rows[i-1:i])...)
		}
		return out, nil

	case reCell.MatchString(cells):
		m := reCell.FindStringSubmatch(cells)
		col := columnIndex(m[1])
		row, _ := strconv.Atoi(m[2])

		if row < 1 || row > len(s.rows) || col >= len(s.rows[row-1]) {
			return nil, nil
		}
		return [][]interface{}{{s.rows[row-1][col]}}, nil

	default:
		return nil, fmt.Errorf("Unable to parse range: %s", rng)
	}
}

func (s *Server) parseRange(rng string) (string, error) {
	sheet, cells, _ := strings.Cut(rng, "!")
	if strings.HasPrefix(sheet, "'") && strings.HasSuffix(sheet, "'") && len(sheet) >= 2 {
		sheet = strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}

	if sheet != s.Title {
		return "", fmt.Errorf("Unable to parse range: %s", rng)
	}

	if cells == "A1" {
		cells = ""
	}

	return cells, nil
}

func columnIndex(letters string) int {
	n := 0
	for _, c := range letters {
		n = n*26 + int(c-'A'+1)
	}
	return n - 1
}

func valueRange(rng string, values [][]interface{}) map[string]interface{} {
	vr := map[string]interface{}{
		"range":          rng,
		"majorDimension": "ROWS",
	}
	if len(values) > 0 {
		vr["values"] = values
	}
	return vr
}

func copyRows(rows [][]interface{}) [][]interface{} {
	out := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		out = append(out, append([]interface{}(nil), row...))
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    status,
			"message": message,
			"status":  http.StatusText(status),
		},
	})
}
