package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"castador-pro/internal/router"
)

func TestHTTP_EndToEnd_BreedingFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"

	// 1) Fundadores sin ancestros
	r1 := createBird(t, ts.URL, ownerID, map[string]any{
		"role": "rooster",
		"code": "G-001",
		"name": "Canelo",
		"line": "sweater",
	})
	h1 := createBird(t, ts.URL, ownerID, map[string]any{
		"role": "hen",
		"code": "H-001",
	})

	// 2) Hermanos completos de r1 x h1
	r2 := createBird(t, ts.URL, ownerID, map[string]any{
		"role":      "rooster",
		"code":      "G-002",
		"father_id": r1,
		"mother_id": h1,
	})
	h2 := createBird(t, ts.URL, ownerID, map[string]any{
		"role":      "hen",
		"code":      "H-002",
		"father_id": r1,
		"mother_id": h1,
	})

	// 3) Consanguinidad entre hermanos: 50% / high
	{
		st, body := doReq(t, ts.URL, "GET", "/consanguinity?father_id="+r2+"&mother_id="+h2, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 consanguinity, got %d body=%s", st, string(body))
		}
		var est struct {
			Percentage float64 `json:"estimated_percentage"`
			Level      string  `json:"level"`
		}
		_ = json.Unmarshal(body, &est)
		if est.Percentage != 50 || est.Level != "high" {
			t.Fatalf("expected 50/high for full siblings, got %v/%s", est.Percentage, est.Level)
		}
	}

	// 4) Pedigrí de r2 resuelve al padre
	{
		st, body := doReq(t, ts.URL, "GET", "/birds/"+r2+"/pedigree", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pedigree, got %d body=%s", st, string(body))
		}
		var tree struct {
			Father *struct {
				ID string `json:"id"`
			} `json:"father"`
		}
		_ = json.Unmarshal(body, &tree)
		if tree.Father == nil || tree.Father.ID != r1 {
			t.Fatalf("expected father %s in pedigree, body=%s", r1, string(body))
		}
	}

	// 5) Cruce fundador (sin parentesco): snapshot 0%
	var pairID string
	{
		st, body := doReq(t, ts.URL, "POST", "/pairs", ownerID, map[string]any{
			"father_id": r1,
			"mother_id": h1,
			"date":      "2025-05-01",
			"goal":      "línea sweater",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create pair, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID                     string  `json:"id"`
			Status                 string  `json:"status"`
			EstimatedConsanguinity float64 `json:"estimated_consanguinity"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.Status != "planned" || resp.EstimatedConsanguinity != 0 {
			t.Fatalf("unexpected pair response: %s", string(body))
		}
		pairID = resp.ID
	}

	// 6) La camada marca el cruce como done
	var litterID string
	{
		st, body := doReq(t, ts.URL, "POST", "/litters", ownerID, map[string]any{
			"pair_id":          pairID,
			"incubation_start": "2025-05-10",
			"egg_count":        8,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create litter, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &resp)
		litterID = resp.ID
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/pairs/"+pairID, ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pair, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "done" {
			t.Fatalf("expected pair done after litter, got %s", resp.Status)
		}
	}

	// 7) Alta masiva de pollos con los padres del cruce
	{
		st, body := doReq(t, ts.URL, "POST", "/litters/"+litterID+"/chicks", ownerID, map[string]any{
			"count": 2,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register chicks, got %d body=%s", st, string(body))
		}
		var resp struct {
			Count  int `json:"count"`
			Chicks []struct {
				FatherID string `json:"father_id"`
			} `json:"chicks"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Count != 2 || len(resp.Chicks) != 2 || resp.Chicks[0].FatherID != r1 {
			t.Fatalf("unexpected chicks response: %s", string(body))
		}
	}

	// 8) Peleas y estadísticas
	createFight(t, ts.URL, ownerID, r1, "2025-05-15", "won", "good")
	createFight(t, ts.URL, ownerID, r1, "2025-05-20", "lost", "regular")
	{
		st, body := doReq(t, ts.URL, "GET", "/fights/stats", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 stats, got %d body=%s", st, string(body))
		}
		var stats struct {
			Total         int     `json:"total"`
			Won           int     `json:"won"`
			WinPercentage float64 `json:"win_percentage"`
			StreakResult  string  `json:"streak_result"`
		}
		_ = json.Unmarshal(body, &stats)
		if stats.Total != 2 || stats.Won != 1 || stats.WinPercentage != 50 {
			t.Fatalf("unexpected stats: %s", string(body))
		}
		if stats.StreakResult != "lost" {
			t.Fatalf("expected last result streak, got %s", stats.StreakResult)
		}
	}

	// 9) Registro de salud con próxima aplicación dentro de la ventana
	{
		next := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
		st, body := doReq(t, ts.URL, "POST", "/health-records", ownerID, map[string]any{
			"bird_id":   r1,
			"type":      "vitamin",
			"product":   "Complejo B",
			"date":      time.Now().Format("2006-01-02"),
			"next_date": next,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create health record, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/health-records/reminders", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reminders, got %d body=%s", st, string(body))
		}
		var items []json.RawMessage
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 {
			t.Fatalf("expected 1 reminder, got %d body=%s", len(items), string(body))
		}
	}

	// 10) Cuido: un ciclo vigente por gallo
	{
		st, body := doReq(t, ts.URL, "POST", "/conditioning", ownerID, map[string]any{
			"bird_id": r1,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create conditioning, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/conditioning", ownerID, map[string]any{
			"bird_id": r1,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 for second ongoing cycle, got %d", st)
		}
	}

	// 11) Dashboard agrega todo lo anterior
	{
		st, body := doReq(t, ts.URL, "GET", "/dashboard", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var sum struct {
			Birds struct {
				TotalActive int `json:"total_active"`
				Roosters    int `json:"roosters"`
				Hens        int `json:"hens"`
			} `json:"birds"`
			PlannedPairs    int `json:"planned_pairs"`
			ActiveLitters   int `json:"active_litters"`
			HealthReminders int `json:"health_reminders"`
			Fights          struct {
				Total int `json:"total"`
			} `json:"fights"`
		}
		_ = json.Unmarshal(body, &sum)
		// 4 aves creadas + 2 pollos; los pollos entran como gallos.
		if sum.Birds.TotalActive != 6 || sum.Birds.Roosters != 4 || sum.Birds.Hens != 2 {
			t.Fatalf("unexpected bird counts: %s", string(body))
		}
		if sum.PlannedPairs != 0 {
			t.Fatalf("pair went done, expected 0 planned, got %d", sum.PlannedPairs)
		}
		if sum.ActiveLitters != 1 {
			t.Fatalf("expected 1 active litter, got %d", sum.ActiveLitters)
		}
		if sum.Fights.Total != 2 || sum.HealthReminders != 1 {
			t.Fatalf("unexpected dashboard aggregates: %s", string(body))
		}
	}
}

func TestHTTP_CreatePair_RejectsHenAsFather(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"

	h1 := createBird(t, ts.URL, ownerID, map[string]any{"role": "hen", "code": "H-001"})
	h2 := createBird(t, ts.URL, ownerID, map[string]any{"role": "hen", "code": "H-002"})

	st, _ := doReq(t, ts.URL, "POST", "/pairs", ownerID, map[string]any{
		"father_id": h1,
		"mother_id": h2,
		"date":      "2025-05-01",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for hen as father, got %d", st)
	}
}

func TestHTTP_OwnerIsolation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	birdID := createBird(t, ts.URL, "owner-1", map[string]any{"role": "rooster", "code": "G-001"})

	st, _ := doReq(t, ts.URL, "GET", "/birds/"+birdID, "owner-2", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for another owner's bird, got %d", st)
	}
}

func TestHTTP_RequiresIdentity(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	// Sin X-Debug-User-ID no hay claims y el handler corta en 401.
	st, _ := doReq(t, ts.URL, "GET", "/birds", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}
}

func createBird(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/birds", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create bird, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create bird: missing id body=%s", string(body))
	}
	return resp.ID
}

func createFight(t *testing.T, baseURL, userID, birdID, date, result, rating string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/fights", userID, map[string]any{
		"bird_id": birdID,
		"date":    date,
		"result":  result,
		"rating":  rating,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create fight, got %d body=%s", st, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
