package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"abhinav/interview-coach/internal/repositories"
)

// Worker runs report finalization jobs in the background. Finalize requests
// are enqueued directly by the handler; a poller also re-enqueues queued rows
// so jobs survive a restart.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(reportID uuid.UUID)
}

type worker struct {
	reportRepo  repositories.ReportRepository
	finalizer   FinalizerService
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	reportRepo repositories.ReportRepository,
	finalizer FinalizerService,
	concurrency int,
) Worker {
	return &worker{
		reportRepo:  reportRepo,
		finalizer:   finalizer,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollQueuedReports(ctx)

	log.Println("✅ Worker started successfully")
}

func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

func (w *worker) EnqueueJob(reportID uuid.UUID) {
	select {
	case w.jobQueue <- reportID:
		log.Printf("📥 Finalize job %s enqueued\n", reportID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", reportID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case reportID := <-w.jobQueue:
			log.Printf("👷 Worker #%d finalizing report %s\n", workerID, reportID)
			if err := w.finalizer.FinalizeReport(ctx, reportID); err != nil {
				log.Printf("❌ Worker #%d failed to finalize %s: %v\n", workerID, reportID, err)
			}
		}
	}
}

func (w *worker) pollQueuedReports(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Queued reports poller stopped")
			return
		case <-ticker.C:
			queued, err := w.reportRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch queued reports: %v\n", err)
				continue
			}

			for _, job := range queued {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
