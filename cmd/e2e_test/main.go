package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	// 1. Health Check
	call(baseURL, "GET", "/health", nil, 200)

	// 2. Create Asset with its initial buy
	id := createAsset(baseURL)
	fmt.Printf("Created Asset ID: %s\n", id)

	// 3. Buy, then oversized sell (value floors at zero)
	call(baseURL, "POST", "/assets/"+id+"/transactions", map[string]string{"type": "BUY", "amount": "500"}, 200)
	call(baseURL, "POST", "/assets/"+id+"/transactions", map[string]string{"type": "SELL", "amount": "2000"}, 200)

	// 4. Settings and value correction
	call(baseURL, "PUT", "/assets/"+id, map[string]string{"name": "E2E Gold Renamed", "investmentDirection": "Gold", "targetAmount": "3000"}, 200)
	call(baseURL, "PUT", "/assets/"+id+"/value", map[string]string{"value": "750"}, 200)

	// 5. Projections
	for _, p := range []string{"/stats", "/charts/directions", "/charts/sectors", "/charts/deviations", "/charts/profit-leaders", "/dashboard"} {
		call(baseURL, "GET", p, nil, 200)
	}

	// 6. Soft delete keeps history
	call(baseURL, "DELETE", "/assets/"+id, nil, 200)
	body := call(baseURL, "GET", "/assets/"+id+"/transactions", nil, 200)
	var history []map[string]interface{}
	if err := json.Unmarshal(body, &history); err != nil || len(history) != 3 {
		log.Fatalf("expected 3 transactions after delete, got %s", string(body))
	}

	// 7. Advisor always answers
	call(baseURL, "POST", "/advisor/analysis", nil, 200)
	call(baseURL, "POST", "/advisor/category", map[string]string{"name": "Guotai Gold ETF Feeder C"}, 200)

	fmt.Println("ALL TESTS PASSED")
}

func call(baseURL, method, path string, body interface{}, expectedStatus int) []byte {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL+path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
	return respBody
}

func createAsset(baseURL string) string {
	fmt.Println("Creating asset...")
	reqBody := map[string]interface{}{
		"name":                "E2E Gold",
		"code":                "004253",
		"investmentDirection": "Gold",
		"targetAmount":        "2000",
		"transaction": map[string]string{
			"type":   "BUY",
			"amount": "1000",
			"date":   time.Now().Format("2006-01-02"),
		},
	}
	jsonBody, _ := json.Marshal(reqBody)
	resp, err := http.Post(baseURL+"/assets", "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Fatalf("Create asset failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 201 {
		body, _ := io.ReadAll(resp.Body)
		log.Fatalf("Create asset failed with status %d: %s", resp.StatusCode, string(body))
	}

	var res map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&res)
	id, _ := res["id"].(string)
	return id
}
