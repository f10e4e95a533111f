package handlers

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/queue"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/types"
)

// StreamHandler handles WebSocket transcript streaming. Clients push text
// chunks as they paste or capture them; an END control message closes the
// turn and queues the accumulated transcript for processing.
type StreamHandler struct {
	workerPool *queue.WorkerPool
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(workerPool *queue.WorkerPool) *StreamHandler {
	return &StreamHandler{
		workerPool: workerPool,
	}
}

// Handle processes WebSocket connections
func (h *StreamHandler) Handle(c *websocket.Conn) {
	defer c.Close()

	var (
		buffer      strings.Builder
		requestName string
		jobID       = uuid.New().String()
	)

	log.Printf("WebSocket connection established: %s", jobID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error: %v", err)
			break
		}

		if messageType != websocket.TextMessage {
			continue
		}

		msgStr := string(message)

		// Control messages
		if msgStr == "END" {
			log.Printf("Received END signal, processing stream...")
			break
		}
		if name, ok := strings.CutPrefix(msgStr, "NAME "); ok {
			if len(name) > 0 && len(name) < 200 {
				requestName = name
				log.Printf("Stream name set to: %s", requestName)
			}
			continue
		}

		// Everything else is transcript content
		buffer.WriteString(msgStr)
	}

	// If no text received, return
	if buffer.Len() == 0 {
		log.Printf("No text received in stream %s", jobID)
		return
	}

	// Default name if not set
	if requestName == "" {
		requestName = "streamed_conversation"
	}

	// Save buffered text to temp file
	tempPath := filepath.Join("temp", fmt.Sprintf("%s.txt", jobID))

	if err := os.WriteFile(tempPath, []byte(buffer.String()), 0644); err != nil {
		log.Printf("Failed to save stream buffer: %v", err)
		return
	}

	log.Printf("Stream saved to %s (%d bytes)", tempPath, buffer.Len())

	// Create and enqueue job
	job := &queue.Job{
		ID:          jobID,
		RequestName: requestName,
		SourceType:  types.SourceStream,
		FilePath:    tempPath,
	}

	h.workerPool.EnqueueJob(job)

	// Send confirmation
	c.WriteMessage(websocket.TextMessage, []byte(fmt.Sprintf(`{"job_id":"%s","status":"queued"}`, jobID)))
}
