package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"sortear_api/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:routertest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	database.Migrate(db)
	database.DB = db

	app := fiber.New()
	SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]any
	if len(raw) > 0 {
		json.Unmarshal(raw, &parsed)
	}
	return resp.StatusCode, parsed
}

func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/users", "", map[string]any{
		"name":     "Operador",
		"email":    email,
		"radio":    "Radio Teste FM",
		"password": "senha123",
	})
	if status != http.StatusCreated {
		t.Fatalf("cadastro de %s: status %d", email, status)
	}

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "senha123",
	})
	if status != http.StatusOK {
		t.Fatalf("login de %s: status %d", email, status)
	}
	tokens, ok := body["tokens"].(map[string]any)
	if !ok {
		t.Fatalf("login sem tokens: %v", body)
	}
	token, _ := tokens["accessToken"].(string)
	if token == "" {
		t.Fatal("accessToken vazio")
	}
	return token
}

func dataField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("resposta sem data: %v", body)
	}
	return data
}

func TestPromotionDrawFlow(t *testing.T) {
	app := newTestApp(t)
	token := registerAndLogin(t, app, "op@radio.com")

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/promotions", token, map[string]any{
		"name":      "Promoção de Verão",
		"startDate": "2026-01-01",
		"endDate":   "2026-03-01",
		"status":    "active",
	})
	if status != http.StatusCreated {
		t.Fatalf("criar promoção: status %d, %v", status, body)
	}
	promotionId := uint(dataField(t, body)["id"].(float64))

	for i, p := range []map[string]any{
		{"promotionId": promotionId, "name": "Joana", "phone": "11911110001"},
		{"promotionId": promotionId, "name": "Marcos", "phone": "11911110002"},
	} {
		status, body = doJSON(t, app, http.MethodPost, "/api/v1/participants", token, p)
		if status != http.StatusCreated {
			t.Fatalf("criar participante %d: status %d, %v", i, status, body)
		}
	}

	t.Run("telefone duplicado na promoção é rejeitado", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodPost, "/api/v1/participants", token, map[string]any{
			"promotionId": promotionId, "name": "Joana de Novo", "phone": "11911110001",
		})
		if status != http.StatusBadRequest {
			t.Errorf("esperava 400, veio %d", status)
		}
	})

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/draws", token, map[string]any{
		"promotionId": promotionId,
		"scheduledAt": "2026-02-01T20:00:00Z",
	})
	if status != http.StatusCreated {
		t.Fatalf("criar sorteio: status %d, %v", status, body)
	}
	drawId := uint(dataField(t, body)["id"].(float64))

	t.Run("execução sorteia um ganhador", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/draws/%d/execute", drawId), token, map[string]any{
			"quantity": 1,
		})
		if status != http.StatusOK {
			t.Fatalf("executar: status %d, %v", status, body)
		}
		winners, ok := body["data"].([]any)
		if !ok || len(winners) != 1 {
			t.Fatalf("esperava 1 ganhador, veio %v", body["data"])
		}
	})

	t.Run("segunda execução responde conflito", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/draws/%d/execute", drawId), token, nil)
		if status != http.StatusBadRequest {
			t.Errorf("esperava 400, veio %d: %v", status, body)
		}
	})

	t.Run("ganhadores ficam disponíveis na listagem", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/draws/%d/winners", drawId), token, nil)
		if status != http.StatusOK {
			t.Fatalf("listar ganhadores: status %d", status)
		}
		winners, ok := body["data"].([]any)
		if !ok || len(winners) != 1 {
			t.Errorf("esperava 1 ganhador listado, veio %v", body["data"])
		}
	})

	t.Run("outro usuário recebe 404 para a promoção", func(t *testing.T) {
		otherToken := registerAndLogin(t, app, "outra@radio.com")
		status, _ := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/promotions/%d", promotionId), otherToken, nil)
		if status != http.StatusNotFound {
			t.Errorf("esperava 404, veio %d", status)
		}
		status, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/v1/draws/%d/execute", drawId), otherToken, nil)
		if status != http.StatusNotFound {
			t.Errorf("executar sorteio alheio: esperava 404, veio %d", status)
		}
	})

	t.Run("listagem traz contagens por promoção", func(t *testing.T) {
		status, body := doJSON(t, app, http.MethodGet, "/api/v1/promotions", token, nil)
		if status != http.StatusOK {
			t.Fatalf("listar promoções: status %d", status)
		}
		data := dataField(t, body)
		rows, ok := data["rows"].([]any)
		if !ok || len(rows) != 1 {
			t.Fatalf("esperava 1 promoção, veio %v", data["rows"])
		}
		row := rows[0].(map[string]any)
		if row["participantsCount"].(float64) != 2 {
			t.Errorf("participantsCount %v, esperava 2", row["participantsCount"])
		}
		if row["drawsCount"].(float64) != 1 {
			t.Errorf("drawsCount %v, esperava 1", row["drawsCount"])
		}
	})

	t.Run("sem token responde 401", func(t *testing.T) {
		status, _ := doJSON(t, app, http.MethodGet, "/api/v1/promotions", "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("esperava 401, veio %d", status)
		}
	})
}
