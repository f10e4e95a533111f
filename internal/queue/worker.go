package queue

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/codebuildervaibhav/dialogue-segmenter/internal/dialogue"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/output"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/storage"
	"github.com/codebuildervaibhav/dialogue-segmenter/internal/types"
)

// WorkerPool manages a pool of workers processing segmentation jobs
type WorkerPool struct {
	jobQueue     chan *Job
	workerCount  int
	localStorage *storage.LocalStorage
	driveClient  *storage.DriveClient
	db           *storage.MetadataDB
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(
	workerCount int,
	localStorage *storage.LocalStorage,
	driveClient *storage.DriveClient,
	db *storage.MetadataDB,
) *WorkerPool {
	return &WorkerPool{
		jobQueue:     make(chan *Job, 100), // Buffer of 100 jobs
		workerCount:  workerCount,
		localStorage: localStorage,
		driveClient:  driveClient,
		db:           db,
	}
}

// Start initializes all workers
func (wp *WorkerPool) Start() {
	log.Printf("Starting worker pool with %d workers", wp.workerCount)
	for i := 0; i < wp.workerCount; i++ {
		go wp.worker(i)
	}
}

// EnqueueJob adds a job to the queue
func (wp *WorkerPool) EnqueueJob(job *Job) {
	job.Status = types.StatusQueued
	job.CreatedAt = time.Now()
	wp.jobQueue <- job
	log.Printf("Job %s enqueued (source: %s, name: %s)", job.ID, job.SourceType, job.RequestName)
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	log.Printf("Worker %d started", id)

	for job := range wp.jobQueue {
		// Panic recovery
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Worker %d: PANIC processing job %s: %v\n%s",
						id, job.ID, r, string(debug.Stack()))
					job.Status = types.StatusFailed
					job.Error = fmt.Errorf("Worker panic: %v", r)
					wp.cleanupTempFile(job.FilePath)
				}
			}()

			wp.processJob(id, job)
		}()
	}
}

// processJob handles the complete segmentation pipeline
func (wp *WorkerPool) processJob(workerID int, job *Job) {
	log.Printf("Worker %d: Processing job %s", workerID, job.ID)
	job.Status = types.StatusProcessing

	// Step 1: Read the raw transcript text
	raw, err := os.ReadFile(job.FilePath)
	if err != nil {
		log.Printf("Worker %d: Failed to read transcript for job %s: %v", workerID, job.ID, err)
		job.Status = types.StatusFailed
		job.Error = fmt.Errorf("Transcript read failed: %v", err)
		wp.cleanupTempFile(job.FilePath)
		return
	}

	// Step 2: Segment into attributed turns
	segmenter := &dialogue.Segmenter{}
	if wp.db != nil {
		segmenter.Corrections = wp.db.CorrectionRecorder(job.ID)
	}
	turns := segmenter.Segment(string(raw))

	result := &types.SegmentationResult{
		JobID:       job.ID,
		Turns:       turns,
		TurnCount:   len(turns),
		WordCount:   len(strings.Fields(string(raw))),
		ProcessedAt: time.Now(),
	}

	// Step 3: Render and save locally
	markdown := output.RenderMarkdown(job.RequestName, turns, result.ProcessedAt)
	localPath, err := wp.localStorage.SaveConversation(job.RequestName, markdown, result)
	if err != nil {
		log.Printf("Worker %d: Local save failed for job %s: %v", workerID, job.ID, err)
		job.Status = types.StatusFailed
		job.Error = fmt.Errorf("Local save failed: %v", err)
		wp.cleanupTempFile(job.FilePath)
		return
	}
	result.LocalPath = localPath

	// Step 4: Upload to Google Drive (with retry)
	var driveURL string
	if wp.driveClient != nil {
		for attempt := 1; attempt <= 3; attempt++ {
			driveURL, err = wp.driveClient.Upload(job.RequestName, markdown, result)
			if err == nil {
				result.GDriveURL = driveURL
				break
			}
			log.Printf("Worker %d: Google Drive upload attempt %d/3 failed: %v", workerID, attempt, err)
			if attempt < 3 {
				time.Sleep(time.Duration(attempt*attempt) * time.Second) // Exponential backoff
			}
		}
		if err != nil {
			log.Printf("Worker %d: WARNING - Google Drive upload failed after 3 attempts, continuing with local save only", workerID)
		}
	}

	// Step 5: Save metadata and turns to database
	if wp.db != nil {
		err = wp.db.SaveConversation(job.ID, job.RequestName, job.SourceType,
			result.GDriveURL, localPath, result.TurnCount, result.WordCount)
		if err != nil {
			log.Printf("Worker %d: Database save failed: %v", workerID, err)
		}
		if err := wp.db.SaveTurns(job.ID, turns); err != nil {
			log.Printf("Worker %d: Turn save failed: %v", workerID, err)
		}
	}

	// Step 6: Cleanup
	wp.cleanupTempFile(job.FilePath)

	job.Result = result
	job.Status = types.StatusCompleted
	log.Printf("Worker %d: Job %s completed successfully (%d turns, local: %s, gdrive: %s)",
		workerID, job.ID, result.TurnCount, localPath, driveURL)
}

// cleanupTempFile removes a temporary file
func (wp *WorkerPool) cleanupTempFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to cleanup temp file %s: %v", filePath, err)
	}
}
