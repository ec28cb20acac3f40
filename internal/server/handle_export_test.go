package server

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestExportCumulativeScore(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login()
	id := e.register("Acme", "Ada", "Engineer")

	e.do(http.MethodPost, playerPath(id, "answers"), answerBody(0, true, 5))
	e.do(http.MethodPost, playerPath(id, "answers"), answerBody(1, false, 3))
	e.do(http.MethodPost, playerPath(id, "answers"), answerBody(2, true, 8))

	info := decodeJSON[EventInfoResponse](t, e.do(http.MethodGet, "/api/event", nil))
	eventID := *info.CurrentEventID

	w := e.do(http.MethodGet, fmt.Sprintf("/api/admin/events/%d/export.csv", eventID), nil, cookies...)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if got := w.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("content-type = %q, want text/csv", got)
	}
	wantDisp := fmt.Sprintf(`attachment; filename="event_%d_results.csv"`, eventID)
	if got := w.Header().Get("Content-Disposition"); got != wantDisp {
		t.Errorf("content-disposition = %q, want %q", got, wantDisp)
	}

	lines := strings.Split(w.Body.String(), "\r\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "event_id,event_name,player_id") {
		t.Errorf("unexpected header: %s", lines[0])
	}

	// Cumulative column walks +5, -2, +5.
	wantCumulative := []string{`"5"`, `"3"`, `"8"`}
	wantDelta := []string{`"5"`, `"-2"`, `"5"`}
	for i, line := range lines[1:] {
		fields := strings.Split(line, ",")
		if got := fields[len(fields)-1]; got != wantCumulative[i] {
			t.Errorf("row %d cumulative = %s, want %s", i+1, got, wantCumulative[i])
		}
		if got := fields[len(fields)-2]; got != wantDelta[i] {
			t.Errorf("row %d delta = %s, want %s", i+1, got, wantDelta[i])
		}
		if got := fields[6]; got != fmt.Sprintf(`"%d"`, i+1) {
			t.Errorf("row %d question_no = %s, want %d", i+1, got, i+1)
		}
	}
}

func TestExportPlayerWithoutAnswers(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login()
	e.register("Acme", "Ada", "Engineer")

	info := decodeJSON[EventInfoResponse](t, e.do(http.MethodGet, "/api/event", nil))
	w := e.do(http.MethodGet, fmt.Sprintf("/api/admin/events/%d/export.csv", *info.CurrentEventID), nil, cookies...)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	lines := strings.Split(w.Body.String(), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	fields := strings.Split(lines[1], ",")
	if len(fields) != 12 {
		t.Fatalf("expected 12 fields, got %d: %s", len(fields), lines[1])
	}
	// question_no through score_delta stay empty; the stored score fills
	// the last column.
	for i := 6; i <= 10; i++ {
		if fields[i] != "" {
			t.Errorf("field %d = %q, want empty", i, fields[i])
		}
	}
	if fields[11] != `"0"` {
		t.Errorf("cumulative = %s, want \"0\"", fields[11])
	}
}

func TestExportUnknownEvent(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login()

	w := e.do(http.MethodGet, "/api/admin/events/9999/export.csv", nil, cookies...)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCSVFieldQuoting(t *testing.T) {
	got := csvField(`say "hi"`)
	want := `"say ""hi"""`
	if got != want {
		t.Errorf("csvField = %s, want %s", got, want)
	}
}
