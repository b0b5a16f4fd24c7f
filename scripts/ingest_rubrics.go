package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"abhinav/interview-coach/internal/config"
	"abhinav/interview-coach/internal/llm"
	"abhinav/interview-coach/internal/services"
)

// Ingests interviewer rubric PDFs into the Qdrant knowledge base. Each PDF
// in the rubrics directory is tagged with the role taken from its filename,
// e.g. backend.pdf -> role "backend". Files named general.pdf apply to every
// role via the unfiltered fallback search.
func main() {
	dir := flag.String("dir", "./rubrics", "directory containing rubric PDFs named <role>.pdf")
	flag.Parse()

	log.Println("🚀 Starting rubric ingestion...")

	cfg := config.Load()

	gateway, err := llm.NewGeminiGateway(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini gateway: %v", err)
	}

	knowledge, err := services.NewKnowledgeService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		gateway,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize knowledge base: %v", err)
	}

	if err := knowledge.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	resumeParser := services.NewResumeParserService()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("❌ Failed to read rubrics directory %s: %v", *dir, err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		role := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		path := filepath.Join(*dir, entry.Name())

		log.Printf("\n📄 Processing: %s (role: %s)", entry.Name(), role)

		text, err := resumeParser.ExtractText(path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d characters", len(text))

		docID := "rubric_" + role
		if err := knowledge.IngestRubric(ctx, docID, role, text); err != nil {
			log.Printf("   ❌ Failed to ingest: %v", err)
			failCount++
			continue
		}

		successCount++
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d rubrics", successCount)
	log.Printf("   ❌ Failed: %d rubrics", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some rubrics failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All rubrics ingested successfully!")
}
