package handlers

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/queue"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/types"
)

// WebImportHandler captures a shared-conversation page and queues its text
type WebImportHandler struct {
	workerPool *queue.WorkerPool
}

// NewWebImportHandler creates a new web import handler
func NewWebImportHandler(workerPool *queue.WorkerPool) *WebImportHandler {
	return &WebImportHandler{
		workerPool: workerPool,
	}
}

// WebImportRequest represents the request body
type WebImportRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Handle processes shared-conversation URL requests
func (h *WebImportHandler) Handle(c *fiber.Ctx) error {
	var req WebImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "ERR_INVALID_BODY",
		})
	}

	if req.URL == "" {
		return c.Status(400).JSON(fiber.Map{
			"error": "URL is required",
			"code":  "ERR_NO_URL",
		})
	}

	parsed, err := url.Parse(req.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return c.Status(400).JSON(fiber.Map{
			"error": "Invalid URL",
			"code":  "ERR_INVALID_URL",
		})
	}

	if req.Name == "" {
		req.Name = "imported_conversation"
	}

	// Generate job ID
	jobID := uuid.New().String()
	tempPath := filepath.Join("temp", fmt.Sprintf("%s.txt", jobID))

	// Capture page text in background (rendering heavy pages can take a while)
	go func() {
		if err := h.capturePageText(req.URL, tempPath); err != nil {
			log.Printf("Failed to capture page text: %v", err)
			return
		}

		// Create and enqueue job after capture completes
		job := &queue.Job{
			ID:          jobID,
			RequestName: req.Name,
			SourceType:  types.SourceWeb,
			FilePath:    tempPath,
		}

		h.workerPool.EnqueueJob(job)
	}()

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"status":  "capturing",
		"message": "Page capture started (shared conversation pages may take a moment to render)",
	})
}

// capturePageText uses headless Chrome to extract the visible text of a
// shared conversation page. Shared chat links (ChatGPT, Claude, etc.) render
// their transcript client-side, so a plain HTTP fetch would come back empty;
// the browser runs the page and we read document.body.innerText afterwards.
func (h *WebImportHandler) capturePageText(pageURL, outputPath string) error {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	// Bound the whole capture
	ctx, cancel = context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	log.Printf("Starting page capture: %s", pageURL)

	var pageText string
	err := chromedp.Run(ctx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second), // Wait for client-side rendering
		chromedp.Evaluate(`document.body.innerText`, &pageText, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithReturnByValue(true)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to capture page: %v", err)
	}

	if strings.TrimSpace(pageText) == "" {
		return fmt.Errorf("page produced no visible text: %s", pageURL)
	}

	if err := os.WriteFile(outputPath, []byte(pageText), 0644); err != nil {
		return fmt.Errorf("failed to save captured text: %v", err)
	}

	log.Printf("Page text captured successfully (%d bytes)", len(pageText))
	return nil
}
