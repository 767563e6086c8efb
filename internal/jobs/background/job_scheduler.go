package background

import (
	"context"
	"log"
	"sync"
	"time"

	"techmart/internal/caching"
	"techmart/internal/models"
	"techmart/internal/services"

	"github.com/go-co-op/gocron/v2"
)

// JobScheduler manages background jobs for the catalog service
type JobScheduler struct {
	scheduler    gocron.Scheduler
	materializer *services.Materializer
	catalog      services.CatalogService
	cacheSvc     caching.CacheService
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

// NewJobScheduler creates a new job scheduler
func NewJobScheduler(materializer *services.Materializer, catalog services.CatalogService, cacheSvc caching.CacheService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		materializer: materializer,
		catalog:      catalog,
		cacheSvc:     cacheSvc,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

// Start starts the job scheduler
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// registerJobs registers all background jobs
func (js *JobScheduler) registerJobs() {
	// View cache warm job - every 10 minutes, slightly inside the cache TTL
	warmJob, err := js.scheduler.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(js.warmViewCache, context.Background()),
		gocron.WithName("view-cache-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create cache warm job: %v", err)
	} else {
		js.jobs["cache-warm"] = warmJob
	}

	// Featured products warm job - every 30 minutes
	featuredJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.warmFeaturedProducts, context.Background()),
		gocron.WithName("featured-products-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create featured products job: %v", err)
	} else {
		js.jobs["featured-warm"] = featuredJob
	}
}

// warmViewCache rebuilds the active category views so that storefront reads
// hit Redis instead of hierarchy walks.
func (js *JobScheduler) warmViewCache(ctx context.Context) {
	start := time.Now()

	active := true
	views, err := js.materializer.Categories(ctx, &active, 1000, 0)
	if err != nil {
		log.Printf("View cache warm failed: %v", err)
		return
	}

	warmed := 0
	for i := range views {
		if _, err := js.materializer.CategoryBySlug(ctx, views[i].Slug, true); err != nil {
			log.Printf("Failed to warm category view %q: %v", views[i].Slug, err)
			continue
		}
		warmed++
	}

	log.Printf("View cache warm completed: %d categories in %v", warmed, time.Since(start))
}

// warmFeaturedProducts pre-materializes views for featured products.
func (js *JobScheduler) warmFeaturedProducts(ctx context.Context) {
	active := true
	featured := true
	products, err := js.catalog.ListProducts(ctx, &models.ProductFilter{
		IsActive:   &active,
		IsFeatured: &featured,
		Limit:      200,
	})
	if err != nil {
		log.Printf("Featured products warm failed: %v", err)
		return
	}

	for _, p := range products {
		if _, err := js.materializer.ProductBySlug(ctx, p.Slug); err != nil {
			log.Printf("Failed to warm product view %q: %v", p.Slug, err)
		}
	}
	log.Printf("Featured products warm completed: %d products", len(products))
}

// RunJobNow triggers a registered job immediately, outside its schedule.
func (js *JobScheduler) RunJobNow(name string) error {
	js.mu.RLock()
	job, ok := js.jobs[name]
	js.mu.RUnlock()
	if !ok {
		return nil
	}
	return job.RunNow()
}
