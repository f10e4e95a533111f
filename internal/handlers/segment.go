package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/dialogue"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/queue"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/types"
)

// SegmentHandler serves the synchronous segmentation and diagnostic endpoints
type SegmentHandler struct {
	workerPool *queue.WorkerPool
	maxSizeMB  int
}

// NewSegmentHandler creates a new segment handler
func NewSegmentHandler(workerPool *queue.WorkerPool, maxSizeMB int) *SegmentHandler {
	return &SegmentHandler{
		workerPool: workerPool,
		maxSizeMB:  maxSizeMB,
	}
}

// SegmentRequest represents the request body for /segment and /paste
type SegmentRequest struct {
	Text string `json:"text"`
	Name string `json:"name"`
}

// Segment splits pasted text into attributed turns and returns them directly
func (h *SegmentHandler) Segment(c *fiber.Ctx) error {
	req, ok := h.parseTextRequest(c)
	if !ok {
		return nil
	}

	segmenter := &dialogue.Segmenter{}
	turns := segmenter.Segment(req.Text)

	return c.JSON(fiber.Map{
		"turns":      turns,
		"turn_count": len(turns),
	})
}

// Classify scores a single turn's text and returns the per-feature breakdown
func (h *SegmentHandler) Classify(c *fiber.Ctx) error {
	req, ok := h.parseTextRequest(c)
	if !ok {
		return nil
	}

	result := dialogue.ClassifyTurn(req.Text, dialogue.SpeakerUncertain)
	return c.JSON(result)
}

// Features returns the feature-description catalogue for explanatory UIs
func (h *SegmentHandler) Features(c *fiber.Ctx) error {
	return c.JSON(dialogue.FeatureDescriptions)
}

// Paste accepts pasted text and queues it for full processing and storage
func (h *SegmentHandler) Paste(c *fiber.Ctx) error {
	req, ok := h.parseTextRequest(c)
	if !ok {
		return nil
	}

	if req.Name == "" {
		req.Name = "pasted_conversation"
	}

	jobID := uuid.New().String()
	tempPath := filepath.Join("temp", fmt.Sprintf("%s.txt", jobID))

	if err := os.WriteFile(tempPath, []byte(req.Text), 0644); err != nil {
		log.Printf("Failed to save pasted text: %v", err)
		return c.Status(500).JSON(fiber.Map{
			"error": "Failed to save text",
			"code":  "ERR_SAVE_FAILED",
		})
	}

	job := &queue.Job{
		ID:          jobID,
		RequestName: req.Name,
		SourceType:  types.SourcePaste,
		FilePath:    tempPath,
	}

	h.workerPool.EnqueueJob(job)

	return c.JSON(fiber.Map{
		"job_id":  jobID,
		"status":  "queued",
		"message": "Text received, processing started",
	})
}

// parseTextRequest decodes and validates the shared {text, name} body. On
// failure it writes the error response and returns ok=false.
func (h *SegmentHandler) parseTextRequest(c *fiber.Ctx) (SegmentRequest, bool) {
	var req SegmentRequest
	if err := c.BodyParser(&req); err != nil {
		c.Status(400).JSON(fiber.Map{
			"error": "Invalid request body",
			"code":  "ERR_INVALID_BODY",
		})
		return req, false
	}

	if req.Text == "" {
		c.Status(400).JSON(fiber.Map{
			"error": "Text is required",
			"code":  "ERR_NO_TEXT",
		})
		return req, false
	}

	maxSize := h.maxSizeMB * 1024 * 1024
	if len(req.Text) > maxSize {
		c.Status(400).JSON(fiber.Map{
			"error": fmt.Sprintf("Text too large (max %dMB)", h.maxSizeMB),
			"code":  "ERR_TEXT_TOO_LARGE",
		})
		return req, false
	}

	return req, true
}
