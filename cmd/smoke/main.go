package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
)

type presignResp struct {
	URL string `json:"url"`
}

type judgeResp struct {
	Judgements []map[string]any `json:"judgements"`
}

type summariesResp struct {
	Summaries []map[string]any `json:"summaries"`
}

const sampleGrouped = "Responses,,\r\nRow,Q1,Q1Summary\r\n1,What is Go?,A compiled language\r\n2,Why chi?,Small router\r\n"

func main() {
	base := envOr("API_BASE_URL", "http://localhost:8000")

	baseFlag := flag.String("base", base, "API base URL (e.g., http://localhost:8000)")
	prefix := flag.String("prefix", envOr("STAGING_PREFIX", "temp2/"), "Staging prefix for evaluation uploads")
	judge := flag.String("judge", "judgeA", "Judge model id")
	model := flag.String("model", "", "Model id for the summarisation check (skipped when empty)")
	final := flag.Bool("final", false, "Mark the evaluation as a final run so the upload is deleted")
	flag.Parse()

	httpc := &http.Client{Timeout: 30 * time.Second}
	key := *prefix + "smoke-" + uuid.NewString() + ".csv"

	// 1) Presign
	var ps presignResp
	if err := getJSON(httpc, *baseFlag+"/modelJudge/presign?name="+url.QueryEscape(key), &ps); err != nil {
		fatalf("presign: %v", err)
	}
	fmt.Println("✅ Presigned upload for", key)

	// 2) Upload straight to S3
	if err := putCSV(httpc, ps.URL, []byte(sampleGrouped)); err != nil {
		fatalf("upload: %v", err)
	}
	fmt.Println("✅ Uploaded sample CSV")

	// 3) Evaluate
	var jr judgeResp
	body := map[string]any{
		"s3_key":          key,
		"metrics":         []string{"coherence", "fluency"},
		"judge_model_ids": []string{*judge},
		"final_run":       *final,
	}
	if err := postJSON(httpc, *baseFlag+"/modelJudge", body, &jr); err != nil {
		fatalf("evaluate: %v", err)
	}
	if len(jr.Judgements) != 2 {
		fatalf("expected 2 judgements, got %d", len(jr.Judgements))
	}
	fmt.Println("✅ Judgements:\n" + compactJSON(jr))

	// 4) Summarise inline content
	if *model == "" {
		fmt.Println("ℹ️  No -model given; skipping summarisation")
		return
	}
	var sr summariesResp
	body = map[string]any{
		"target_columns": []string{"Q1"},
		"model_ids":      []string{*model},
		"csv_content":    "Q1\nExplain object storage in one line\n",
	}
	if err := postJSON(httpc, *baseFlag+"/summerizeData", body, &sr); err != nil {
		fatalf("summarise: %v", err)
	}
	fmt.Println("✅ Summaries:\n" + compactJSON(sr))
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func putCSV(c *http.Client, target string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "text/csv")
	res, err := c.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("PUT -> %d: %s", res.StatusCode, string(b))
	}
	return nil
}

func postJSON(c *http.Client, url string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("POST %s -> %d: %s", url, res.StatusCode, string(b))
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func getJSON(c *http.Client, url string, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	res, err := c.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("GET %s -> %d: %s", url, res.StatusCode, string(b))
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func compactJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func fatalf(format string, args ...any) {
	fmt.Printf("❌ "+format+"\n", args...)
	os.Exit(1)
}
